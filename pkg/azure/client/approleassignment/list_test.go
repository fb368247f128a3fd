package approleassignment_test

import (
	"testing"

	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"
	"github.com/stretchr/testify/assert"

	"github.com/nais/exchangerator/pkg/azure/client/approleassignment"
)

var (
	roleId      = msgraph.UUID("647e0b83-9957-4a46-86c7-f1a5d2c08ffc")
	otherRoleId = msgraph.UUID("d4f2bba5-c713-44d9-9fca-5e5eacc22885")

	principalId = msgraph.UUID("3f0b3157-b9b7-4bc1-a4b6-dd17a01a9a1b")
	resourceId  = msgraph.UUID("19bbbf44-d2a9-43ff-b10c-fbb0a6e5bdc7")
)

func TestList_Has(t *testing.T) {
	existing := approleassignment.List{
		{
			AppRoleID:     &roleId,
			PrincipalID:   &principalId,
			ResourceID:    &resourceId,
			PrincipalType: ptr.String("ServicePrincipal"),
		},
	}

	t.Run("assignment with equal role, principal and resource should exist in list", func(t *testing.T) {
		assignment := msgraph.AppRoleAssignment{
			AppRoleID:   &roleId,
			PrincipalID: &principalId,
			ResourceID:  &resourceId,
		}
		assert.True(t, existing.Has(assignment))
	})

	t.Run("assignment with another role should not exist in list", func(t *testing.T) {
		assignment := msgraph.AppRoleAssignment{
			AppRoleID:   &otherRoleId,
			PrincipalID: &principalId,
			ResourceID:  &resourceId,
		}
		assert.False(t, existing.Has(assignment))
	})

	t.Run("assignment for another principal should not exist in list", func(t *testing.T) {
		otherPrincipal := msgraph.UUID("ba63ef3f-c139-4b42-87bc-75a372bbf43d")
		assignment := msgraph.AppRoleAssignment{
			AppRoleID:   &roleId,
			PrincipalID: &otherPrincipal,
			ResourceID:  &resourceId,
		}
		assert.False(t, existing.Has(assignment))
	})

	t.Run("assignment with missing fields should not exist in list", func(t *testing.T) {
		assignment := msgraph.AppRoleAssignment{
			AppRoleID: &roleId,
		}
		assert.False(t, existing.Has(assignment))
	})

	t.Run("empty list should not contain any assignments", func(t *testing.T) {
		assignment := msgraph.AppRoleAssignment{
			AppRoleID:   &roleId,
			PrincipalID: &principalId,
			ResourceID:  &resourceId,
		}
		assert.False(t, approleassignment.List{}.Has(assignment))
	})
}
