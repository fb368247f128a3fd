package util

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/registration"
	"github.com/nais/exchangerator/pkg/azure/transaction"
)

func TestDisplayName(t *testing.T) {
	t.Run("DisplayName should return string with formatted timestamp", func(t *testing.T) {
		ti := time.Date(2000, 1, 1, 8, 0, 0, 0, time.UTC)
		actual := DisplayName(ti)
		assert.Equal(t, "exchangerator-2000-01-01T08:00:00Z", actual)
	})
}

func TestFilters(t *testing.T) {
	p := "test"
	cases := []struct {
		name     string
		fn       func(string) string
		expected string
	}{
		{
			name:     "Filter by AppId",
			fn:       FilterByAppId,
			expected: fmt.Sprintf("appId eq '%s'", p),
		},
		{
			name:     "Filter by Client ID",
			fn:       FilterByClientId,
			expected: fmt.Sprintf("clientId eq '%s'", p),
		},
		{
			name:     "Filter by DisplayName",
			fn:       FilterByName,
			expected: fmt.Sprintf("displayName eq '%s'", p),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual := c.fn(p)
			assert.Equal(t, c.expected, actual)
		})
	}
}

func TestIdentifierUriClientId(t *testing.T) {
	t.Run("Given a UUID, the Identifier URI should be a formatted string following a template", func(t *testing.T) {
		p := "some-uuid"
		actual := IdentifierUriClientId(p)
		expected := "api://some-uuid"
		assert.Equal(t, expected, actual)
	})
}

func TestIdentifierUris(t *testing.T) {
	t.Run("Transaction without a configured URI should derive one from the client ID", func(t *testing.T) {
		tx := transaction.Transaction{ClientId: "some-uuid"}
		actual := IdentifierUris(tx)
		assert.Equal(t, azure.IdentifierUris{"api://some-uuid"}, actual)
	})

	t.Run("Transaction with a configured URI should use it unchanged", func(t *testing.T) {
		tx := transaction.Transaction{
			ClientId: "some-uuid",
			Registration: registration.Registration{
				IdentifierUri: "api://migrationwiz.example.com",
			},
		}
		actual := IdentifierUris(tx)
		assert.Equal(t, azure.IdentifierUris{"api://migrationwiz.example.com"}, actual)
	})
}

func TestMapFiltersToFilter(t *testing.T) {
	t.Run("Empty slice of filters should return empty string", func(t *testing.T) {
		p := make([]azure.Filter, 0)
		actual := MapFiltersToFilter(p)
		assert.Empty(t, actual)
	})

	t.Run("Multiple filters should return concatenated string of filters", func(t *testing.T) {
		name := FilterByName("some-name")
		appid := FilterByAppId("some-appid")

		p := []azure.Filter{name, appid}
		actual := MapFiltersToFilter(p)
		assert.Equal(t, fmt.Sprintf("%s %s", name, appid), actual)
	})
}
