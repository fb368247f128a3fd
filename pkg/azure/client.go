package azure

import (
	"context"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure/credentials"
	"github.com/nais/exchangerator/pkg/azure/transaction"
)

// Client wraps the subset of the Graph API needed to provision an application registration
// with delegated and application permissions for a given resource.
type Client interface {
	ApplicationExists(ctx context.Context, name DisplayName) (*msgraph.Application, bool, error)
	RegisterApplication(tx transaction.Transaction) (*msgraph.Application, error)
	SetApplicationIdentifierUri(tx transaction.Transaction) error

	GetServicePrincipalByAppId(ctx context.Context, appId ClientId) (msgraph.ServicePrincipal, error)
	GetServicePrincipalByName(ctx context.Context, name DisplayName) (msgraph.ServicePrincipal, error)
	EnsureServicePrincipal(tx transaction.Transaction) (msgraph.ServicePrincipal, error)

	GrantDelegatedPermissions(tx transaction.Transaction) error
	AssignAppRole(tx transaction.Transaction) error

	AddPasswordCredential(tx transaction.Transaction) (msgraph.PasswordCredential, error)
	AddKeyCredential(tx transaction.Transaction) (*credentials.AddedKeyCredential, error)

	Close()
}
