package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/transaction"
)

func MapFiltersToFilter(filters []azure.Filter) azure.Filter {
	if len(filters) > 0 {
		return strings.Join(filters[:], " ")
	} else {
		return ""
	}
}

func FilterByName(name azure.DisplayName) azure.Filter {
	return fmt.Sprintf("displayName eq '%s'", name)
}

func FilterByAppId(clientId azure.ClientId) azure.Filter {
	return fmt.Sprintf("appId eq '%s'", clientId)
}

func FilterByClientId(clientId azure.ClientId) azure.Filter {
	return fmt.Sprintf("clientId eq '%s'", clientId)
}

// DisplayName returns a timestamped name for credentials added to the application.
func DisplayName(t time.Time) azure.DisplayName {
	return fmt.Sprintf("%s-%s", azure.ExchangeratorPrefix, t.UTC().Format(time.RFC3339))
}

func IdentifierUriClientId(id azure.ClientId) string {
	return fmt.Sprintf("api://%s", id)
}

// IdentifierUris returns the identifier URIs to set on the application, using the
// configured URI when present and deriving api://<client-id> otherwise.
func IdentifierUris(tx transaction.Transaction) azure.IdentifierUris {
	if len(tx.Registration.IdentifierUri) > 0 {
		return azure.IdentifierUris{tx.Registration.IdentifierUri}
	}

	return azure.IdentifierUris{IdentifierUriClientId(tx.ClientId)}
}
