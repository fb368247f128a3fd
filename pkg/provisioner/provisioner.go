package provisioner

import (
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	msgraph "github.com/nais/msgraph.go/v1.0"
	log "github.com/sirupsen/logrus"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/credentials"
	"github.com/nais/exchangerator/pkg/azure/permissions"
	"github.com/nais/exchangerator/pkg/azure/registration"
	"github.com/nais/exchangerator/pkg/azure/result"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/config"
	"github.com/nais/exchangerator/pkg/event"
	"github.com/nais/exchangerator/pkg/kafka"
	"github.com/nais/exchangerator/pkg/output"
)

type Provisioner struct {
	azureClient azure.Client
	config      *config.Config
	producer    kafka.Producer
	sinks       []output.Sink
}

func New(azureClient azure.Client, cfg *config.Config, producer kafka.Producer, sinks ...output.Sink) Provisioner {
	return Provisioner{
		azureClient: azureClient,
		config:      cfg,
		producer:    producer,
		sinks:       sinks,
	}
}

// Provision performs a single run against the tenant: it registers the
// application with the configured Exchange Online permissions, grants consent,
// assigns the app role and issues credentials. Nothing is written to the
// directory until the duplicate check and both permission lookups have passed.
func (p Provisioner) Provision(ctx context.Context) (*result.Application, error) {
	tx := p.newTransaction(ctx)

	existing, exists, err := p.azureClient.ApplicationExists(ctx, tx.Registration.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("looking up existing application: %w", err)
	}
	if exists {
		duplicate := DuplicateApplicationError{DisplayName: tx.Registration.DisplayName}
		if existing.AppID != nil {
			duplicate.ClientId = *existing.AppID
		}
		return nil, duplicate
	}

	tx, err = p.resolvePermissions(tx)
	if err != nil {
		return nil, fmt.Errorf("resolving permissions: %w", err)
	}

	tenantId, err := p.tenantId(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving tenant ID: %w", err)
	}

	tx.Log.Info("registering application...")

	app, err := p.azureClient.RegisterApplication(tx)
	if err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}
	tx = tx.UpdateWithApplicationIDs(*app)

	servicePrincipal, err := p.azureClient.EnsureServicePrincipal(tx)
	if err != nil {
		return nil, fmt.Errorf("ensuring service principal: %w", err)
	}
	tx = tx.UpdateWithServicePrincipalID(servicePrincipal)

	if err := p.azureClient.SetApplicationIdentifierUri(tx); err != nil {
		return nil, fmt.Errorf("setting identifier URI: %w", err)
	}

	if err := p.azureClient.GrantDelegatedPermissions(tx); err != nil {
		return nil, fmt.Errorf("granting delegated permissions: %w", err)
	}

	if err := p.azureClient.AssignAppRole(tx); err != nil {
		return nil, fmt.Errorf("assigning app role: %w", err)
	}

	password, err := p.azureClient.AddPasswordCredential(tx)
	if err != nil {
		return nil, fmt.Errorf("adding password credential: %w", err)
	}

	creds := credentials.Credentials{
		Password: toPassword(password),
	}

	if p.config.Application.Certificate {
		added, err := p.azureClient.AddKeyCredential(tx)
		if err != nil {
			return nil, fmt.Errorf("adding key credential: %w", err)
		}

		certificate := &credentials.Certificate{Jwk: added.Jwk}
		if added.KeyCredential.KeyID != nil {
			certificate.KeyId = string(*added.KeyCredential.KeyID)
		}
		creds.Certificate = certificate
	}

	applicationResult := &result.Application{
		DisplayName:        tx.Registration.DisplayName,
		ClientId:           tx.ClientId,
		ObjectId:           tx.ObjectId,
		ServicePrincipalId: tx.ServicePrincipalId,
		Tenant:             tenantId,
		GrantedScope:       tx.Registration.Resource.DelegatedScope,
		AssignedRole:       tx.Registration.Resource.AppRole,
		Credentials:        creds,
	}

	if err := p.produceEvent(tx, applicationResult); err != nil {
		tx.Log.Errorf("producing kafka event: %+v", err)
	}

	p.publish(tx, applicationResult)

	tx.Log.Info("successfully provisioned application")

	return applicationResult, nil
}

func (p Provisioner) newTransaction(ctx context.Context) transaction.Transaction {
	id := uuid.New().String()
	logger := log.WithFields(log.Fields{
		"correlation_id": id,
		"application":    p.config.Application.DisplayName,
	})

	return transaction.Transaction{
		Ctx:          ctx,
		ID:           id,
		Log:          *logger,
		Registration: registration.FromConfig(*p.config),
	}
}

// resolvePermissions looks up the resource service principal and resolves the
// configured delegated scope and app role to their IDs. The scope is resolved
// through the service principal matching the resource application ID, the role
// through the one matching the display name.
func (p Provisioner) resolvePermissions(tx transaction.Transaction) (transaction.Transaction, error) {
	res := tx.Registration.Resource

	scopeOwner, err := p.azureClient.GetServicePrincipalByAppId(tx.Ctx, res.AppId)
	if err != nil {
		return tx, fmt.Errorf("looking up service principal for resource '%s': %w", res.AppId, err)
	}

	delegatedScope, err := permissions.DelegatedScope(scopeOwner, res.DelegatedScope)
	if err != nil {
		return tx, err
	}

	roleOwner, err := p.azureClient.GetServicePrincipalByName(tx.Ctx, res.DisplayName)
	if err != nil {
		return tx, fmt.Errorf("looking up service principal named '%s': %w", res.DisplayName, err)
	}

	applicationRole, err := permissions.ApplicationRole(roleOwner, res.AppRole)
	if err != nil {
		return tx, err
	}

	tx = tx.UpdateWithPermissions(permissions.Permissions{
		DelegatedScope:  delegatedScope,
		ApplicationRole: applicationRole,
	})
	tx = tx.UpdateWithResourceServicePrincipalID(scopeOwner)

	return tx, nil
}

// tenantId returns the configured tenant as a GUID. A tenant configured by
// domain name is resolved through the OpenID well-known endpoint.
func (p Provisioner) tenantId(ctx context.Context) (string, error) {
	tenant := p.config.Azure.Tenant

	if govalidator.IsUUID(tenant.Id) {
		return tenant.Id, nil
	}

	openIdConfig, err := config.NewAzureOpenIdConfig(ctx, tenant)
	if err != nil {
		return "", err
	}

	return openIdConfig.TenantId()
}

func (p Provisioner) produceEvent(tx transaction.Transaction, app *result.Application) error {
	if !p.config.Kafka.Enabled || p.producer == nil {
		return nil
	}

	e := event.NewEvent(tx.ID, event.Provisioned, *app)

	offset, err := p.producer.ProduceEvent(e)
	if err != nil {
		return err
	}

	tx.Log.Debugf("published event %s to kafka (offset %d)", e, offset)
	return nil
}

func (p Provisioner) publish(tx transaction.Transaction, app *result.Application) {
	for _, sink := range p.sinks {
		if err := sink.Publish(tx.Ctx, *app); err != nil {
			tx.Log.Warnf("publishing result to %s: %+v", sink.Name(), err)
			continue
		}

		tx.Log.Debugf("published result to %s", sink.Name())
	}
}

func toPassword(cred msgraph.PasswordCredential) credentials.Password {
	password := credentials.Password{}

	if cred.KeyID != nil {
		password.KeyId = string(*cred.KeyID)
	}
	if cred.SecretText != nil {
		password.ClientSecret = *cred.SecretText
	}
	if cred.StartDateTime != nil {
		password.StartDateTime = *cred.StartDateTime
	}
	if cred.EndDateTime != nil {
		password.EndDateTime = *cred.EndDateTime
	}

	return password
}
