package provisioner_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"
	"github.com/stretchr/testify/assert"

	"github.com/nais/exchangerator/pkg/azure/fake"
	"github.com/nais/exchangerator/pkg/azure/permissions"
	"github.com/nais/exchangerator/pkg/azure/result"
	"github.com/nais/exchangerator/pkg/config"
	"github.com/nais/exchangerator/pkg/event"
	"github.com/nais/exchangerator/pkg/kafka"
	"github.com/nais/exchangerator/pkg/provisioner"
)

const tenantId = "62366534-1ec3-4962-8869-9b5535279d0b"

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Azure.Tenant.Id = tenantId
	return cfg
}

type sinkRecorder struct {
	name      string
	published []result.Application
	err       error
}

func (s *sinkRecorder) Name() string {
	return s.name
}

func (s *sinkRecorder) Publish(_ context.Context, app result.Application) error {
	if s.err != nil {
		return s.err
	}

	s.published = append(s.published, app)
	return nil
}

type producerRecorder struct {
	events []event.Event
}

func (p *producerRecorder) Produce(_ kafka.Message) (int64, error) {
	return 0, nil
}

func (p *producerRecorder) ProduceEvent(e event.Event) (int64, error) {
	p.events = append(p.events, e)
	return int64(len(p.events)), nil
}

func (p *producerRecorder) Close() error {
	return nil
}

func assertNoMutations(t *testing.T, azureClient *fake.Client) {
	assert.Empty(t, azureClient.RegisteredApplications)
	assert.Empty(t, azureClient.RegisteredServicePrincipals)
	assert.Empty(t, azureClient.IdentifierUris)
	assert.Empty(t, azureClient.PermissionGrants)
	assert.Empty(t, azureClient.AppRoleAssignments)
	assert.Empty(t, azureClient.PasswordCredentials)
	assert.Empty(t, azureClient.KeyCredentials)
}

func TestProvision(t *testing.T) {
	cfg := testConfig()
	azureClient := fake.NewClient()
	sink := &sinkRecorder{name: "recorder"}

	resourceServicePrincipalId := *azureClient.ServicePrincipals[0].ID

	app, err := provisioner.New(azureClient, cfg, nil, sink).Provision(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, app)

	t.Run("application should be registered with the delegated scope and the app role", func(t *testing.T) {
		assert.Len(t, azureClient.RegisteredApplications, 1)
		registered := azureClient.RegisteredApplications[0]
		assert.Equal(t, "MigrationWiz", *registered.DisplayName)

		assert.Len(t, registered.RequiredResourceAccess, 1)
		access := registered.RequiredResourceAccess[0]
		assert.Equal(t, config.DefaultExchangeResourceAppId, *access.ResourceAppID)

		assert.Len(t, access.ResourceAccess, 2)
		assert.Contains(t, access.ResourceAccess, msgraph.ResourceAccess{
			ID:   &fake.ExchangeOnlineScopeId,
			Type: ptr.String("Scope"),
		})
		assert.Contains(t, access.ResourceAccess, msgraph.ResourceAccess{
			ID:   &fake.ExchangeOnlineRoleId,
			Type: ptr.String("Role"),
		})
	})

	t.Run("service principal should be created for the application", func(t *testing.T) {
		assert.Len(t, azureClient.RegisteredServicePrincipals, 1)
		sp := azureClient.RegisteredServicePrincipals[0]
		assert.Equal(t, app.ClientId, *sp.AppID)
		assert.Equal(t, app.ServicePrincipalId, *sp.ID)
	})

	t.Run("identifier URI should be derived from the client ID", func(t *testing.T) {
		assert.Equal(t, []string{fmt.Sprintf("api://%s", app.ClientId)}, []string(azureClient.IdentifierUris))
	})

	t.Run("delegated permissions should be granted for all principals", func(t *testing.T) {
		assert.Len(t, azureClient.PermissionGrants, 1)
		grant := azureClient.PermissionGrants[0]
		assert.Equal(t, "AllPrincipals", *grant.ConsentType)
		assert.Equal(t, app.ServicePrincipalId, *grant.ClientID)
		assert.Equal(t, resourceServicePrincipalId, *grant.ResourceID)
		assert.Equal(t, "EWS.AccessAsUser.All", *grant.Scope)
	})

	t.Run("app role should be assigned to the service principal", func(t *testing.T) {
		assert.Len(t, azureClient.AppRoleAssignments, 1)
		assignment := azureClient.AppRoleAssignments[0]
		assert.Equal(t, fake.ExchangeOnlineRoleId, *assignment.AppRoleID)
		assert.Equal(t, msgraph.UUID(app.ServicePrincipalId), *assignment.PrincipalID)
		assert.Equal(t, msgraph.UUID(resourceServicePrincipalId), *assignment.ResourceID)
		assert.Equal(t, "ServicePrincipal", *assignment.PrincipalType)
	})

	t.Run("password credential should be valid for one year starting now", func(t *testing.T) {
		assert.Len(t, azureClient.PasswordCredentials, 1)

		password := app.Credentials.Password
		assert.NotEmpty(t, password.KeyId)
		assert.NotEmpty(t, password.ClientSecret)
		assert.WithinDuration(t, time.Now(), password.StartDateTime, time.Minute)
		assert.Equal(t, password.StartDateTime.AddDate(1, 0, 0), password.EndDateTime)
	})

	t.Run("result should describe the provisioned application", func(t *testing.T) {
		assert.Equal(t, "MigrationWiz", app.DisplayName)
		assert.NotEmpty(t, app.ClientId)
		assert.NotEmpty(t, app.ObjectId)
		assert.NotEmpty(t, app.ServicePrincipalId)
		assert.Equal(t, tenantId, app.Tenant)
		assert.Equal(t, "EWS.AccessAsUser.All", app.GrantedScope)
		assert.Equal(t, "full_access_as_app", app.AssignedRole)
	})

	t.Run("result should be published to the sinks", func(t *testing.T) {
		assert.Len(t, sink.published, 1)
		assert.Equal(t, *app, sink.published[0])
	})

	t.Run("no certificate should be issued by default", func(t *testing.T) {
		assert.Nil(t, app.Credentials.Certificate)
		assert.Empty(t, azureClient.KeyCredentials)
	})

	t.Run("second run against the same directory should abort as a duplicate", func(t *testing.T) {
		second, err := provisioner.New(azureClient, cfg, nil, sink).Provision(context.Background())
		assert.Nil(t, second)

		var duplicate provisioner.DuplicateApplicationError
		assert.ErrorAs(t, err, &duplicate)
		assert.Equal(t, "MigrationWiz", duplicate.DisplayName)

		assert.Len(t, azureClient.RegisteredApplications, 1)
		assert.Len(t, sink.published, 1)
	})
}

func TestProvision_DuplicateApplication(t *testing.T) {
	cfg := testConfig()
	azureClient := fake.NewClient()
	azureClient.Applications = append(azureClient.Applications, msgraph.Application{
		AppID:       ptr.String("df1c8d93-7d4e-47a7-ad9c-a2bd3e3e586a"),
		DisplayName: ptr.String("MigrationWiz"),
	})

	app, err := provisioner.New(azureClient, cfg, nil).Provision(context.Background())
	assert.Nil(t, app)

	var duplicate provisioner.DuplicateApplicationError
	assert.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "MigrationWiz", duplicate.DisplayName)
	assert.Equal(t, "df1c8d93-7d4e-47a7-ad9c-a2bd3e3e586a", duplicate.ClientId)

	t.Run("duplicate should stop the run before any mutation", func(t *testing.T) {
		assertNoMutations(t, azureClient)
	})
}

func TestProvision_PermissionNotFound(t *testing.T) {
	t.Run("missing delegated scope should stop the run before any mutation", func(t *testing.T) {
		cfg := testConfig()
		azureClient := fake.NewClient()
		azureClient.ServicePrincipals[0].OAuth2PermissionScopes = nil

		app, err := provisioner.New(azureClient, cfg, nil).Provision(context.Background())
		assert.Nil(t, app)

		var notFound *permissions.NotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, "EWS.AccessAsUser.All", notFound.Permission)

		assertNoMutations(t, azureClient)
	})

	t.Run("missing app role should stop the run before any mutation", func(t *testing.T) {
		cfg := testConfig()
		azureClient := fake.NewClient()
		azureClient.ServicePrincipals[0].AppRoles = nil

		app, err := provisioner.New(azureClient, cfg, nil).Provision(context.Background())
		assert.Nil(t, app)

		var notFound *permissions.NotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, "full_access_as_app", notFound.Permission)

		assertNoMutations(t, azureClient)
	})
}

func TestProvision_GrantFailure(t *testing.T) {
	cfg := testConfig()
	azureClient := fake.NewClient()
	azureClient.GrantError = errors.New("insufficient privileges")

	app, err := provisioner.New(azureClient, cfg, nil).Provision(context.Background())
	assert.Nil(t, app)
	assert.ErrorContains(t, err, "granting delegated permissions")
	assert.ErrorContains(t, err, "insufficient privileges")

	t.Run("application should still have been registered before the failure", func(t *testing.T) {
		assert.Len(t, azureClient.RegisteredApplications, 1)
		assert.Empty(t, azureClient.PasswordCredentials)
	})
}

func TestProvision_WithCertificate(t *testing.T) {
	cfg := testConfig()
	cfg.Application.Certificate = true
	azureClient := fake.NewClient()

	app, err := provisioner.New(azureClient, cfg, nil).Provision(context.Background())
	assert.NoError(t, err)

	assert.Len(t, azureClient.KeyCredentials, 1)
	assert.NotNil(t, app.Credentials.Certificate)
	assert.NotEmpty(t, app.Credentials.Certificate.KeyId)
	assert.NotEmpty(t, app.Credentials.Certificate.Jwk.PublicPem)
}

func TestProvision_SinkFailure(t *testing.T) {
	cfg := testConfig()
	azureClient := fake.NewClient()
	failing := &sinkRecorder{name: "failing", err: errors.New("no clipboard command found on PATH")}
	working := &sinkRecorder{name: "working"}

	app, err := provisioner.New(azureClient, cfg, nil, failing, working).Provision(context.Background())

	t.Run("a failing sink should not fail the run", func(t *testing.T) {
		assert.NoError(t, err)
		assert.NotNil(t, app)
	})

	t.Run("remaining sinks should still receive the result", func(t *testing.T) {
		assert.Empty(t, failing.published)
		assert.Len(t, working.published, 1)
	})
}

func TestProvision_ProducesEvent(t *testing.T) {
	cfg := testConfig()
	cfg.Kafka.Enabled = true
	azureClient := fake.NewClient()
	producer := &producerRecorder{}

	app, err := provisioner.New(azureClient, cfg, producer).Provision(context.Background())
	assert.NoError(t, err)

	assert.Len(t, producer.events, 1)
	e := producer.events[0]
	assert.Equal(t, event.Provisioned, e.EventName)
	assert.Equal(t, app.ClientId, e.Application.ClientId)
	assert.Equal(t, app.Tenant, e.Application.Tenant)

	t.Run("event payload should not contain the client secret", func(t *testing.T) {
		payload, err := e.Marshal()
		assert.NoError(t, err)
		assert.NotContains(t, string(payload), app.Credentials.Password.ClientSecret)
	})
}
