package client

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/nais/msgraph.go/msauth"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/impersonate"

	"github.com/nais/exchangerator/pkg/config"
)

var (
	// DelegatedScopes are requested on user-interactive flows. Registering the
	// application, granting consent and assigning app roles each require their
	// own permission.
	DelegatedScopes = []string{
		"https://graph.microsoft.com/Application.ReadWrite.All",
		"https://graph.microsoft.com/AppRoleAssignment.ReadWrite.All",
		"https://graph.microsoft.com/DelegatedPermissionGrant.ReadWrite.All",
		"https://graph.microsoft.com/Directory.ReadWrite.All",
	}

	scopes = []string{msauth.DefaultMSGraphScope}
)

// NewDeviceCodeTokenSource starts a device authorization grant. The user is
// prompted through the log to visit the verification URI and enter the code.
func NewDeviceCodeTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	m := msauth.NewManager()
	delegated := append([]string{"offline_access"}, DelegatedScopes...)

	ts, err := m.DeviceAuthorizationGrant(ctx, cfg.Azure.Tenant.Id, cfg.Azure.Auth.ClientId, delegated, func(auth *msauth.DeviceAuthorizationAuth) error {
		log.Info(auth.Message)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("performing device authorization grant: %w", err)
	}

	return ts, nil
}

func NewClientCredentialsTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	m := msauth.NewManager()

	ts, err := m.ClientCredentialsGrant(ctx, cfg.Azure.Tenant.Id, cfg.Azure.Auth.ClientId, cfg.Azure.Auth.ClientSecret, scopes)
	if err != nil {
		return nil, fmt.Errorf("performing client credentials grant: %w", err)
	}

	return ts, nil
}

// AzureCredentialTokenSource adapts an Azure SDK credential to an
// oauth2.TokenSource.
type AzureCredentialTokenSource struct {
	cred azcore.TokenCredential
	ctx  context.Context
	opts policy.TokenRequestOptions
}

func (in *AzureCredentialTokenSource) Token() (*oauth2.Token, error) {
	tok, err := in.cred.GetToken(in.ctx, in.opts)
	if err != nil {
		return nil, fmt.Errorf("fetching azure token: %w", err)
	}

	return &oauth2.Token{
		AccessToken: tok.Token,
		TokenType:   "bearer",
		Expiry:      tok.ExpiresOn,
	}, nil
}

// NewAzureCliTokenSource reuses the login session of a locally installed Azure
// CLI.
func NewAzureCliTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: cfg.Azure.Tenant.Id,
	})
	if err != nil {
		return nil, fmt.Errorf("creating azure cli credential: %w", err)
	}

	ts := &AzureCredentialTokenSource{
		cred: cred,
		ctx:  ctx,
		opts: policy.TokenRequestOptions{
			Scopes: scopes,
		},
	}

	return oauth2.ReuseTokenSource(nil, ts), nil
}

// NewGoogleFederatedCredentialsTokenSource exchanges a Google service account
// identity token for an Azure AD token through workload identity federation.
func NewGoogleFederatedCredentialsTokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	googleTokenSource, err := impersonate.IDTokenSource(ctx, impersonate.IDTokenConfig{
		Audience:        "api://AzureADTokenExchange",
		TargetPrincipal: fmt.Sprintf("exchangerator@%s.iam.gserviceaccount.com", cfg.Azure.Auth.Google.ProjectId),
		IncludeEmail:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating google token source: %w", err)
	}

	googleAssertion := func(ctx context.Context) (string, error) {
		t, err := googleTokenSource.Token()
		if err != nil {
			return "", fmt.Errorf("fetching google token: %w", err)
		}

		return t.AccessToken, nil
	}

	cred, err := azidentity.NewClientAssertionCredential(cfg.Azure.Tenant.Id, cfg.Azure.Auth.ClientId, googleAssertion, nil)
	if err != nil {
		return nil, fmt.Errorf("creating azure assertion credential: %w", err)
	}

	ts := &AzureCredentialTokenSource{
		cred: cred,
		ctx:  ctx,
		opts: policy.TokenRequestOptions{
			Scopes: scopes,
		},
	}

	return oauth2.ReuseTokenSource(nil, ts), nil
}
