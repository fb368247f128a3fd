package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	msgraph "github.com/nais/msgraph.go/v1.0"
	"golang.org/x/oauth2"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/client/application"
	"github.com/nais/exchangerator/pkg/azure/client/approleassignment"
	"github.com/nais/exchangerator/pkg/azure/client/keycredential"
	"github.com/nais/exchangerator/pkg/azure/client/oauth2permissiongrant"
	"github.com/nais/exchangerator/pkg/azure/client/passwordcredential"
	"github.com/nais/exchangerator/pkg/azure/client/serviceprincipal"
	"github.com/nais/exchangerator/pkg/azure/credentials"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/azure/util"
	"github.com/nais/exchangerator/pkg/config"
	"github.com/nais/exchangerator/pkg/retry"
)

type client struct {
	config      *config.Config
	httpClient  *http.Client
	graphClient *msgraph.GraphServiceRequestBuilder
}

func New(ctx context.Context, cfg *config.Config) (azure.Client, error) {
	ts, err := tokenSource(ctx, cfg)
	if err != nil {
		return nil, AuthError{Err: err}
	}

	// Acquire a token eagerly so that broken credentials surface here rather
	// than on the first Graph request.
	if _, err := ts.Token(); err != nil {
		return nil, AuthError{Err: err}
	}

	httpClient := oauth2.NewClient(ctx, ts)
	graphClient := msgraph.NewClient(httpClient)

	return client{
		config:      cfg,
		httpClient:  httpClient,
		graphClient: graphClient,
	}, nil
}

func tokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	switch cfg.Azure.Auth.Flow {
	case config.FlowDeviceCode:
		return NewDeviceCodeTokenSource(ctx, cfg)
	case config.FlowClientCredentials:
		return NewClientCredentialsTokenSource(ctx, cfg)
	case config.FlowAzureCli:
		return NewAzureCliTokenSource(ctx, cfg)
	case config.FlowGoogle:
		return NewGoogleFederatedCredentialsTokenSource(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported authentication flow '%s'", cfg.Azure.Auth.Flow)
	}
}

func (c client) Config() *config.Config {
	return c.config
}

func (c client) GraphClient() *msgraph.GraphServiceRequestBuilder {
	return c.graphClient
}

func (c client) HttpClient() *http.Client {
	return c.httpClient
}

func (c client) DelayIntervalBetweenModifications() time.Duration {
	return c.config.Azure.DelayBetweenModifications
}

func (c client) MaxNumberOfPagesToFetch() int {
	return c.config.Azure.Pagination.MaxPages
}

func (c client) Application() application.Application {
	return application.NewApplication(c)
}

func (c client) AppRoleAssignments(targetId azure.ServicePrincipalId) approleassignment.AppRoleAssignments {
	return approleassignment.NewAppRoleAssignments(c, targetId)
}

func (c client) KeyCredential() keycredential.KeyCredential {
	return keycredential.NewKeyCredential(c)
}

func (c client) OAuth2PermissionGrant() oauth2permissiongrant.OAuth2PermissionGrant {
	return oauth2permissiongrant.NewOAuth2PermissionGrant(c)
}

func (c client) PasswordCredential() passwordcredential.PasswordCredential {
	return passwordcredential.NewPasswordCredential(c)
}

func (c client) ServicePrincipal() serviceprincipal.ServicePrincipal {
	return serviceprincipal.NewServicePrincipal(c)
}

func (c client) ApplicationExists(ctx context.Context, name azure.DisplayName) (*msgraph.Application, bool, error) {
	var app *msgraph.Application
	exists := false

	err := c.retryable(ctx, func(ctx context.Context) error {
		var err error
		app, exists, err = c.Application().ExistsByFilter(ctx, util.FilterByName(name))
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return app, exists, nil
}

func (c client) RegisterApplication(tx transaction.Transaction) (*msgraph.Application, error) {
	return c.Application().Register(tx)
}

func (c client) SetApplicationIdentifierUri(tx transaction.Transaction) error {
	// sleep to prevent concurrent modification error from Microsoft
	time.Sleep(c.DelayIntervalBetweenModifications())

	return c.Application().SetIdentifierUri(tx)
}

func (c client) GetServicePrincipalByAppId(ctx context.Context, appId azure.ClientId) (msgraph.ServicePrincipal, error) {
	var sp msgraph.ServicePrincipal

	err := c.retryable(ctx, func(ctx context.Context) error {
		var err error
		sp, err = c.ServicePrincipal().GetByAppId(ctx, appId)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return msgraph.ServicePrincipal{}, err
	}

	return sp, nil
}

func (c client) GetServicePrincipalByName(ctx context.Context, name azure.DisplayName) (msgraph.ServicePrincipal, error) {
	var sp msgraph.ServicePrincipal

	err := c.retryable(ctx, func(ctx context.Context) error {
		var err error
		sp, err = c.ServicePrincipal().GetByDisplayName(ctx, name)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return msgraph.ServicePrincipal{}, err
	}

	return sp, nil
}

func (c client) EnsureServicePrincipal(tx transaction.Transaction) (msgraph.ServicePrincipal, error) {
	return c.ServicePrincipal().Ensure(tx)
}

func (c client) GrantDelegatedPermissions(tx transaction.Transaction) error {
	return c.OAuth2PermissionGrant().Process(tx)
}

func (c client) AssignAppRole(tx transaction.Transaction) error {
	return c.AppRoleAssignments(tx.ResourceServicePrincipalId).ProcessForServicePrincipal(tx)
}

func (c client) AddPasswordCredential(tx transaction.Transaction) (msgraph.PasswordCredential, error) {
	// sleep to prevent concurrent modification error from Microsoft
	time.Sleep(c.DelayIntervalBetweenModifications())

	return c.PasswordCredential().Add(tx)
}

func (c client) AddKeyCredential(tx transaction.Transaction) (*credentials.AddedKeyCredential, error) {
	// sleep to prevent concurrent modification error from Microsoft
	time.Sleep(c.DelayIntervalBetweenModifications())

	return c.KeyCredential().Add(tx)
}

// Close releases idle connections held by the underlying HTTP client. Objects
// created in Azure AD during the run are left untouched.
func (c client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c client) retryable(ctx context.Context, f func(ctx context.Context) error) error {
	return retry.Fibonacci(1 * time.Second).
		WithMaxDuration(c.config.Azure.Retry.MaxDuration).
		Do(ctx, f)
}
