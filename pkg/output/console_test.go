package output_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nais/exchangerator/pkg/azure/credentials"
	"github.com/nais/exchangerator/pkg/azure/result"
	"github.com/nais/exchangerator/pkg/output"
)

func TestConsole_Publish(t *testing.T) {
	app := result.Application{
		DisplayName:        "MigrationWiz",
		ClientId:           "1a714b3c-387e-4291-9a7d-b4b44a8f58f1",
		ObjectId:           "98e44b36-b7ee-4266-b0c6-5a87b5323301",
		ServicePrincipalId: "8b9c7a90-92f8-4b7d-9b3e-7a4e409c1c2b",
		Tenant:             "62366534-1ec3-4962-8869-9b5535279d0b",
		GrantedScope:       "EWS.AccessAsUser.All",
		AssignedRole:       "full_access_as_app",
		Credentials: credentials.Credentials{
			Password: credentials.Password{
				KeyId:         "647e0b83-9957-4a46-86c7-f1a5d2c08ffc",
				ClientSecret:  "super-secret",
				StartDateTime: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
				EndDateTime:   time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	var buf bytes.Buffer
	sink := output.NewConsole(&buf)

	assert.Equal(t, "console", sink.Name())

	err := sink.Publish(context.Background(), app)
	assert.NoError(t, err)

	out := buf.String()

	t.Run("output should contain the identifiers needed to use the application", func(t *testing.T) {
		assert.Contains(t, out, "MigrationWiz")
		assert.Contains(t, out, app.ClientId)
		assert.Contains(t, out, app.ObjectId)
		assert.Contains(t, out, app.Tenant)
	})

	t.Run("output should contain the granted permissions", func(t *testing.T) {
		assert.Contains(t, out, "EWS.AccessAsUser.All")
		assert.Contains(t, out, "full_access_as_app")
	})

	t.Run("output should contain the client secret and its expiry", func(t *testing.T) {
		assert.Contains(t, out, app.Credentials.Password.KeyId)
		assert.Contains(t, out, "super-secret")
		assert.Contains(t, out, "2025-02-01T12:00:00Z")
	})

	t.Run("output should not mention a certificate when none was issued", func(t *testing.T) {
		assert.NotContains(t, out, "Certificate")
	})
}
