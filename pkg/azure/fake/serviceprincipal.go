package fake

import (
	"github.com/google/uuid"
	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/config"
)

var (
	ExchangeOnlineScopeId = msgraph.UUID("ab7a8bb5-7b36-4f22-a5cb-4a2a64ce6d08")
	ExchangeOnlineRoleId  = msgraph.UUID("dc890d15-9560-4a4c-9b7f-a736ec74ec40")
)

func ServicePrincipal(tx transaction.Transaction) msgraph.ServicePrincipal {
	return msgraph.ServicePrincipal{
		DirectoryObject: msgraph.DirectoryObject{
			Entity: msgraph.Entity{ID: ptr.String(uuid.New().String())},
		},
		AppID:       ptr.String(tx.ClientId),
		DisplayName: ptr.String(tx.Registration.DisplayName),
	}
}

// ExchangeOnlineServicePrincipal mirrors the tenant-wide service principal for
// Exchange Online with the delegated scope and app role used for mailbox
// access.
func ExchangeOnlineServicePrincipal() msgraph.ServicePrincipal {
	sp := msgraph.ServicePrincipal{
		DirectoryObject: msgraph.DirectoryObject{
			Entity: msgraph.Entity{ID: ptr.String(uuid.New().String())},
		},
		AppID:       ptr.String(config.DefaultExchangeResourceAppId),
		DisplayName: ptr.String(config.DefaultExchangeServicePrincipalName),
	}

	sp.OAuth2PermissionScopes = []msgraph.PermissionScope{
		{
			ID:    &ExchangeOnlineScopeId,
			Value: ptr.String(config.DefaultExchangeDelegatedScope),
		},
	}
	sp.AppRoles = []msgraph.AppRole{
		{
			ID:    &ExchangeOnlineRoleId,
			Value: ptr.String(config.DefaultExchangeAppRole),
		},
	}

	return sp
}

func PermissionGrant(tx transaction.Transaction) msgraph.OAuth2PermissionGrant {
	return msgraph.OAuth2PermissionGrant{
		ClientID:    ptr.String(tx.ServicePrincipalId),
		ConsentType: ptr.String("AllPrincipals"),
		ResourceID:  ptr.String(tx.ResourceServicePrincipalId),
		Scope:       ptr.String(tx.Registration.Resource.DelegatedScope),
	}
}

func AppRoleAssignment(tx transaction.Transaction) msgraph.AppRoleAssignment {
	roleId := tx.Permissions.ApplicationRole.ID

	return msgraph.AppRoleAssignment{
		AppRoleID:     &roleId,
		PrincipalID:   (*msgraph.UUID)(&tx.ServicePrincipalId),
		ResourceID:    (*msgraph.UUID)(&tx.ResourceServicePrincipalId),
		PrincipalType: ptr.String(azure.PrincipalTypeServicePrincipal),
	}
}
