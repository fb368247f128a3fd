package approleassignment

import (
	"context"
	"fmt"

	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/transaction"
)

// AppRoleAssignments is scoped to the assignments on a single target service
// principal, i.e. the resource that owns the app roles.
type AppRoleAssignments interface {
	GetAll(ctx context.Context) (List, error)
	ProcessForServicePrincipal(tx transaction.Transaction) error
}

type appRoleAssignments struct {
	azure.RuntimeClient
	targetId azure.ServicePrincipalId
}

func NewAppRoleAssignments(client azure.RuntimeClient, targetId azure.ServicePrincipalId) AppRoleAssignments {
	return appRoleAssignments{
		RuntimeClient: client,
		targetId:      targetId,
	}
}

func (a appRoleAssignments) GetAll(ctx context.Context) (List, error) {
	assignments, err := a.request().GetN(ctx, a.MaxNumberOfPagesToFetch())
	if err != nil {
		return nil, fmt.Errorf("looking up AppRole assignments for service principal '%s': %w", a.targetId, err)
	}

	return assignments, nil
}

// ProcessForServicePrincipal assigns the app role from the transaction to the
// service principal in the transaction. An equal existing assignment is left
// untouched.
func (a appRoleAssignments) ProcessForServicePrincipal(tx transaction.Transaction) error {
	assignment := a.toAssignment(tx)

	existing, err := a.GetAll(tx.Ctx)
	if err != nil {
		return err
	}

	if existing.Has(*assignment) {
		tx.Log.Debugf("app role '%s' already assigned to service principal '%s', skipping assignment", tx.Registration.Resource.AppRole, tx.ServicePrincipalId)
		return nil
	}

	_, err = a.request().Add(tx.Ctx, assignment)
	if err != nil {
		return fmt.Errorf("assigning AppRole '%s' to service principal '%s': %w", tx.Registration.Resource.AppRole, tx.ServicePrincipalId, err)
	}

	tx.Log.Infof("successfully assigned app role '%s' to service principal '%s'", tx.Registration.Resource.AppRole, tx.ServicePrincipalId)
	return nil
}

func (a appRoleAssignments) request() *msgraph.ServicePrincipalAppRoleAssignedToCollectionRequest {
	return a.GraphClient().ServicePrincipals().ID(a.targetId).AppRoleAssignedTo().Request()
}

func (a appRoleAssignments) toAssignment(tx transaction.Transaction) *msgraph.AppRoleAssignment {
	roleId := tx.Permissions.ApplicationRole.ID

	return &msgraph.AppRoleAssignment{
		AppRoleID:     &roleId,                                         // The ID of the AppRole belonging to the target resource to be assigned
		PrincipalID:   (*msgraph.UUID)(&tx.ServicePrincipalId),         // Service Principal ID for the assignee, i.e. the principal that should be assigned to the app role
		ResourceID:    (*msgraph.UUID)(ptr.String(a.targetId)),         // Service Principal ID for the target resource, i.e. the service principal that owns the app role
		PrincipalType: ptr.String(azure.PrincipalTypeServicePrincipal), // The Principal type of the assignee
	}
}
