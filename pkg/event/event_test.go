package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nais/exchangerator/pkg/azure/result"
	"github.com/nais/exchangerator/pkg/event"
)

func TestNewEvent(t *testing.T) {
	app := result.Application{
		DisplayName: "MigrationWiz",
		ClientId:    "1a714b3c-387e-4291-9a7d-b4b44a8f58f1",
		ObjectId:    "98e44b36-b7ee-4266-b0c6-5a87b5323301",
		Tenant:      "62366534-1ec3-4962-8869-9b5535279d0b",
	}

	e := event.NewEvent("59027e94-6ac1-4c37-9b88-7ba98ce83c45", event.Provisioned, app)

	t.Run("event should identify the application without credentials", func(t *testing.T) {
		assert.Equal(t, "MigrationWiz", e.Application.Name)
		assert.Equal(t, app.ClientId, e.Application.ClientId)
		assert.Equal(t, app.ObjectId, e.Application.ObjectId)
		assert.Equal(t, app.Tenant, e.Application.Tenant)
	})

	t.Run("marshalled payload should contain the event name", func(t *testing.T) {
		payload, err := e.Marshal()
		assert.NoError(t, err)
		assert.Contains(t, string(payload), `"@event_name":"ExchangeApplicationProvisioned"`)
		assert.Contains(t, string(payload), `"@id":"59027e94-6ac1-4c37-9b88-7ba98ce83c45"`)
	})

	t.Run("string representation should contain name and id", func(t *testing.T) {
		assert.Equal(t, "ExchangeApplicationProvisioned (59027e94-6ac1-4c37-9b88-7ba98ce83c45)", e.String())
	})
}
