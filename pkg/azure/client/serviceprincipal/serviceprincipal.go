package serviceprincipal

import (
	"context"
	"fmt"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/azure/util"
)

const (
	TagHideApp = "HideApp"
)

// servicePrincipalIdCache maps application IDs to service principal object IDs,
// letting repeated lookups skip the filtered list request.
var servicePrincipalIdCache = cache.New[azure.ClientId, azure.ServicePrincipalId]()

type ServicePrincipal interface {
	Exists(ctx context.Context, id azure.ClientId) (bool, msgraph.ServicePrincipal, error)
	GetByAppId(ctx context.Context, id azure.ClientId) (msgraph.ServicePrincipal, error)
	GetByDisplayName(ctx context.Context, name azure.DisplayName) (msgraph.ServicePrincipal, error)
	Register(tx transaction.Transaction) (msgraph.ServicePrincipal, error)
	Ensure(tx transaction.Transaction) (msgraph.ServicePrincipal, error)
}

type servicePrincipal struct {
	azure.RuntimeClient
}

func NewServicePrincipal(runtimeClient azure.RuntimeClient) ServicePrincipal {
	return servicePrincipal{RuntimeClient: runtimeClient}
}

// Ensure returns the existing service principal for the application in the
// transaction, registering one only if none exists.
func (s servicePrincipal) Ensure(tx transaction.Transaction) (msgraph.ServicePrincipal, error) {
	exists, sp, err := s.Exists(tx.Ctx, tx.ClientId)
	if err != nil {
		return msgraph.ServicePrincipal{}, err
	}

	if exists {
		tx.Log.Debug("service principal already exists, skipping registration")
		return sp, nil
	}

	return s.Register(tx)
}

func (s servicePrincipal) Exists(ctx context.Context, id azure.ClientId) (bool, msgraph.ServicePrincipal, error) {
	sps, err := s.getAll(ctx, util.FilterByAppId(id))
	if err != nil {
		return false, msgraph.ServicePrincipal{}, err
	}
	if len(sps) == 0 {
		return false, msgraph.ServicePrincipal{}, nil
	}

	sp := sps[0]
	seedCache(sp)

	return true, sp, nil
}

// GetByAppId returns the single service principal for the given application ID.
func (s servicePrincipal) GetByAppId(ctx context.Context, id azure.ClientId) (msgraph.ServicePrincipal, error) {
	if servicePrincipalId, found := servicePrincipalIdCache.Get(id); found {
		sp, err := s.GraphClient().ServicePrincipals().ID(servicePrincipalId).Request().Get(ctx)
		if err != nil {
			return msgraph.ServicePrincipal{}, fmt.Errorf("fetching service principal with id '%s': %w", servicePrincipalId, err)
		}
		return *sp, nil
	}

	sps, err := s.getAll(ctx, util.FilterByAppId(id))
	if err != nil {
		return msgraph.ServicePrincipal{}, err
	}

	switch {
	case len(sps) == 0:
		return msgraph.ServicePrincipal{}, fmt.Errorf("no service principal found for application ID '%s'", id)
	case len(sps) > 1:
		return msgraph.ServicePrincipal{}, fmt.Errorf("found more than one service principal for application ID '%s'", id)
	default:
		sp := sps[0]
		seedCache(sp)
		return sp, nil
	}
}

// GetByDisplayName returns the single service principal with the given display name.
func (s servicePrincipal) GetByDisplayName(ctx context.Context, name azure.DisplayName) (msgraph.ServicePrincipal, error) {
	sps, err := s.getAll(ctx, util.FilterByName(name))
	if err != nil {
		return msgraph.ServicePrincipal{}, err
	}

	switch {
	case len(sps) == 0:
		return msgraph.ServicePrincipal{}, fmt.Errorf("no service principal found with display name '%s'", name)
	case len(sps) > 1:
		return msgraph.ServicePrincipal{}, fmt.Errorf("found more than one service principal with display name '%s'", name)
	default:
		sp := sps[0]
		seedCache(sp)
		return sp, nil
	}
}

func (s servicePrincipal) Register(tx transaction.Transaction) (msgraph.ServicePrincipal, error) {
	clientId := tx.ClientId
	request := &msgraph.ServicePrincipal{
		AppID:                     &clientId,
		AppRoleAssignmentRequired: ptr.Bool(false),
		Tags:                      []string{TagHideApp},
	}

	servicePrincipal, err := s.GraphClient().ServicePrincipals().Request().Add(tx.Ctx, request)
	if err != nil {
		return msgraph.ServicePrincipal{}, fmt.Errorf("failed to register service principal: %w", err)
	}

	seedCache(*servicePrincipal)

	return *servicePrincipal, nil
}

func (s servicePrincipal) getAll(ctx context.Context, filters ...azure.Filter) ([]msgraph.ServicePrincipal, error) {
	r := s.GraphClient().ServicePrincipals().Request()
	r.Filter(util.MapFiltersToFilter(filters))
	sps, err := r.GetN(ctx, s.MaxNumberOfPagesToFetch())
	if err != nil {
		return nil, fmt.Errorf("failed to lookup service principals: %w", err)
	}
	return sps, nil
}

func seedCache(sp msgraph.ServicePrincipal) {
	if sp.AppID != nil && sp.ID != nil {
		servicePrincipalIdCache.Set(*sp.AppID, *sp.ID)
	}
}
