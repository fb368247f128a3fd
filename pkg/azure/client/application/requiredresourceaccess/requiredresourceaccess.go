package requiredresourceaccess

import (
	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure/transaction"
)

const (
	ResourceAccessTypeScope = "Scope"
	ResourceAccessTypeRole  = "Role"
)

type RequiredResourceAccess interface {
	Describe(tx transaction.Transaction) msgraph.RequiredResourceAccess
}

type requiredResourceAccess struct{}

func NewRequiredResourceAccess() RequiredResourceAccess {
	return requiredResourceAccess{}
}

// Describe returns the access the application requires from the resource API,
// containing exactly two entries: the resolved delegated scope and the resolved
// application role.
func (r requiredResourceAccess) Describe(tx transaction.Transaction) msgraph.RequiredResourceAccess {
	scopeId := tx.Permissions.DelegatedScope.ID
	roleId := tx.Permissions.ApplicationRole.ID

	return msgraph.RequiredResourceAccess{
		ResourceAppID: ptr.String(tx.Registration.Resource.AppId),
		ResourceAccess: []msgraph.ResourceAccess{
			{
				ID:   &scopeId,
				Type: ptr.String(ResourceAccessTypeScope),
			},
			{
				ID:   &roleId,
				Type: ptr.String(ResourceAccessTypeRole),
			},
		},
	}
}
