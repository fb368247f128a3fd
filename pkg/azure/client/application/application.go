package application

import (
	"context"
	"fmt"

	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/client/application/requiredresourceaccess"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/azure/util"
)

// Application tags
const (
	IntegratedAppTag string = "WindowsAzureActiveDirectoryIntegratedApp"
	IaCAppTag        string = "exchangerator_appreg"
)

type Application interface {
	RequiredResourceAccess() requiredresourceaccess.RequiredResourceAccess

	ExistsByFilter(ctx context.Context, filter azure.Filter) (*msgraph.Application, bool, error)
	Patch(ctx context.Context, id azure.ObjectId, application any) error
	Register(tx transaction.Transaction) (*msgraph.Application, error)
	SetIdentifierUri(tx transaction.Transaction) error
}

type application struct {
	azure.RuntimeClient
}

func NewApplication(runtimeClient azure.RuntimeClient) Application {
	return application{RuntimeClient: runtimeClient}
}

func (a application) RequiredResourceAccess() requiredresourceaccess.RequiredResourceAccess {
	return requiredresourceaccess.NewRequiredResourceAccess()
}

// ExistsByFilter returns the first application matching the filter. Display
// names are not unique in the directory, so more than one match still counts
// as existing.
func (a application) ExistsByFilter(ctx context.Context, filter azure.Filter) (*msgraph.Application, bool, error) {
	applications, err := a.getAll(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	if len(applications) == 0 {
		return nil, false, nil
	}
	return &applications[0], true, nil
}

func (a application) Register(tx transaction.Transaction) (*msgraph.Application, error) {
	access := []msgraph.RequiredResourceAccess{
		a.RequiredResourceAccess().Describe(tx),
	}

	req := util.Application(a.defaultTemplate(tx)).
		ResourceAccess(access).
		Build()

	app, err := a.GraphClient().Applications().Request().Add(tx.Ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registering application: %w", err)
	}

	return app, nil
}

func (a application) SetIdentifierUri(tx transaction.Transaction) error {
	identifierUris := util.IdentifierUris(tx)
	app := util.EmptyApplication().
		IdentifierUriList(identifierUris).
		Build()

	if err := a.Patch(tx.Ctx, tx.ObjectId, app); err != nil {
		return fmt.Errorf("failed to add application identifier URI: %w", err)
	}

	return nil
}

func (a application) Patch(ctx context.Context, id azure.ObjectId, application any) error {
	req := a.GraphClient().Applications().ID(id).Request()
	if err := req.JSONRequest(ctx, "PATCH", "", application, nil); err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	return nil
}

func (a application) getAll(ctx context.Context, filters ...azure.Filter) ([]msgraph.Application, error) {
	r := a.GraphClient().Applications().Request()
	r.Filter(util.MapFiltersToFilter(filters))
	applications, err := r.GetN(ctx, a.RuntimeClient.MaxNumberOfPagesToFetch())
	if err != nil {
		return nil, fmt.Errorf("failed to get list applications: %w", err)
	}

	return applications, nil
}

func (a application) defaultTemplate(tx transaction.Transaction) *msgraph.Application {
	return &msgraph.Application{
		DisplayName:    ptr.String(tx.Registration.DisplayName),
		SignInAudience: ptr.String("AzureADMyOrg"),
		Tags: []string{
			IaCAppTag,
			IntegratedAppTag,
		},
		API: &msgraph.APIApplication{
			RequestedAccessTokenVersion: ptr.Int(2),
		},
	}
}
