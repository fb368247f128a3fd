package fake

import (
	"context"
	"fmt"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/credentials"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/azure/util"
)

// Client implements azure.Client against in-memory state. Every mutation is
// recorded on the exported fields so tests can assert exactly what a run
// changed in the directory.
type Client struct {
	Applications      []msgraph.Application
	ServicePrincipals []msgraph.ServicePrincipal

	RegisteredApplications      []msgraph.Application
	RegisteredServicePrincipals []msgraph.ServicePrincipal
	IdentifierUris              azure.IdentifierUris
	PermissionGrants            []msgraph.OAuth2PermissionGrant
	AppRoleAssignments          []msgraph.AppRoleAssignment
	PasswordCredentials         []msgraph.PasswordCredential
	KeyCredentials              []msgraph.KeyCredential
	Closed                      bool

	RegisterApplicationError error
	ServicePrincipalError    error
	GrantError               error
	AssignError              error
	CredentialError          error
}

// NewClient returns a fake with the Exchange Online service principal already
// present in the directory.
func NewClient() *Client {
	return &Client{
		ServicePrincipals: []msgraph.ServicePrincipal{
			ExchangeOnlineServicePrincipal(),
		},
	}
}

func (c *Client) ApplicationExists(_ context.Context, name azure.DisplayName) (*msgraph.Application, bool, error) {
	for i, app := range c.Applications {
		if app.DisplayName != nil && *app.DisplayName == name {
			return &c.Applications[i], true, nil
		}
	}

	return nil, false, nil
}

func (c *Client) RegisterApplication(tx transaction.Transaction) (*msgraph.Application, error) {
	if c.RegisterApplicationError != nil {
		return nil, c.RegisterApplicationError
	}

	app := Application(tx)
	c.Applications = append(c.Applications, app)
	c.RegisteredApplications = append(c.RegisteredApplications, app)

	return &app, nil
}

func (c *Client) SetApplicationIdentifierUri(tx transaction.Transaction) error {
	c.IdentifierUris = util.IdentifierUris(tx)
	return nil
}

func (c *Client) GetServicePrincipalByAppId(_ context.Context, appId azure.ClientId) (msgraph.ServicePrincipal, error) {
	for _, sp := range c.ServicePrincipals {
		if sp.AppID != nil && *sp.AppID == appId {
			return sp, nil
		}
	}

	return msgraph.ServicePrincipal{}, fmt.Errorf("no service principal found for application ID '%s'", appId)
}

func (c *Client) GetServicePrincipalByName(_ context.Context, name azure.DisplayName) (msgraph.ServicePrincipal, error) {
	for _, sp := range c.ServicePrincipals {
		if sp.DisplayName != nil && *sp.DisplayName == name {
			return sp, nil
		}
	}

	return msgraph.ServicePrincipal{}, fmt.Errorf("no service principal found with display name '%s'", name)
}

func (c *Client) EnsureServicePrincipal(tx transaction.Transaction) (msgraph.ServicePrincipal, error) {
	if c.ServicePrincipalError != nil {
		return msgraph.ServicePrincipal{}, c.ServicePrincipalError
	}

	for _, sp := range c.ServicePrincipals {
		if sp.AppID != nil && *sp.AppID == tx.ClientId {
			return sp, nil
		}
	}

	sp := ServicePrincipal(tx)
	c.ServicePrincipals = append(c.ServicePrincipals, sp)
	c.RegisteredServicePrincipals = append(c.RegisteredServicePrincipals, sp)

	return sp, nil
}

func (c *Client) GrantDelegatedPermissions(tx transaction.Transaction) error {
	if c.GrantError != nil {
		return c.GrantError
	}

	c.PermissionGrants = append(c.PermissionGrants, PermissionGrant(tx))
	return nil
}

func (c *Client) AssignAppRole(tx transaction.Transaction) error {
	if c.AssignError != nil {
		return c.AssignError
	}

	c.AppRoleAssignments = append(c.AppRoleAssignments, AppRoleAssignment(tx))
	return nil
}

func (c *Client) AddPasswordCredential(_ transaction.Transaction) (msgraph.PasswordCredential, error) {
	if c.CredentialError != nil {
		return msgraph.PasswordCredential{}, c.CredentialError
	}

	cred := PasswordCredential()
	c.PasswordCredentials = append(c.PasswordCredentials, cred)

	return cred, nil
}

func (c *Client) AddKeyCredential(tx transaction.Transaction) (*credentials.AddedKeyCredential, error) {
	if c.CredentialError != nil {
		return nil, c.CredentialError
	}

	added, err := KeyCredential(tx.Registration.DisplayName)
	if err != nil {
		return nil, err
	}

	c.KeyCredentials = append(c.KeyCredentials, added.KeyCredential)

	return added, nil
}

func (c *Client) Close() {
	c.Closed = true
}
