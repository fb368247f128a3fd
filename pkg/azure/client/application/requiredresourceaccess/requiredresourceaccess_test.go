package requiredresourceaccess_test

import (
	"testing"

	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"
	"github.com/stretchr/testify/assert"

	"github.com/nais/exchangerator/pkg/azure/client/application/requiredresourceaccess"
	"github.com/nais/exchangerator/pkg/azure/permissions"
	"github.com/nais/exchangerator/pkg/azure/registration"
	"github.com/nais/exchangerator/pkg/azure/transaction"
)

func TestDescribe(t *testing.T) {
	scopeId := msgraph.UUID("37f7f235-527c-4136-accd-4a02d197296e")
	roleId := msgraph.UUID("dc890d15-9560-4a4c-9b7f-a736ec74ec40")

	tx := transaction.Transaction{
		Registration: registration.Registration{
			Resource: registration.Resource{
				AppId: "00000002-0000-0ff1-ce00-000000000000",
			},
		},
		Permissions: permissions.Permissions{
			DelegatedScope:  permissions.Permission{Name: "EWS.AccessAsUser.All", ID: scopeId},
			ApplicationRole: permissions.Permission{Name: "full_access_as_app", ID: roleId},
		},
	}

	access := requiredresourceaccess.NewRequiredResourceAccess().Describe(tx)

	t.Run("resource app ID should match the configured resource", func(t *testing.T) {
		assert.Equal(t, "00000002-0000-0ff1-ce00-000000000000", *access.ResourceAppID)
	})

	t.Run("access list should contain exactly the scope and the role", func(t *testing.T) {
		assert.Len(t, access.ResourceAccess, 2)
		assert.Contains(t, access.ResourceAccess, msgraph.ResourceAccess{
			ID:   &scopeId,
			Type: ptr.String(requiredresourceaccess.ResourceAccessTypeScope),
		})
		assert.Contains(t, access.ResourceAccess, msgraph.ResourceAccess{
			ID:   &roleId,
			Type: ptr.String(requiredresourceaccess.ResourceAccessTypeRole),
		})
	})
}
