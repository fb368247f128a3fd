package transaction

import (
	"context"

	msgraph "github.com/nais/msgraph.go/v1.0"
	log "github.com/sirupsen/logrus"

	"github.com/nais/exchangerator/pkg/azure/permissions"
	"github.com/nais/exchangerator/pkg/azure/registration"
)

// Transaction carries the accumulated state for a single provisioning run.
// The UpdateWith* methods copy the transaction, leaving the receiver untouched.
type Transaction struct {
	Ctx          context.Context
	ID           string
	Log          log.Entry
	Registration registration.Registration
	Permissions  permissions.Permissions

	ClientId                   string
	ObjectId                   string
	ServicePrincipalId         string
	ResourceServicePrincipalId string
}

func (t Transaction) UpdateWithApplicationIDs(application msgraph.Application) Transaction {
	t.ClientId = *application.AppID
	t.ObjectId = *application.ID
	return t
}

func (t Transaction) UpdateWithServicePrincipalID(servicePrincipal msgraph.ServicePrincipal) Transaction {
	t.ServicePrincipalId = *servicePrincipal.ID
	return t
}

func (t Transaction) UpdateWithResourceServicePrincipalID(servicePrincipal msgraph.ServicePrincipal) Transaction {
	t.ResourceServicePrincipalId = *servicePrincipal.ID
	return t
}

func (t Transaction) UpdateWithPermissions(permissions permissions.Permissions) Transaction {
	t.Permissions = permissions
	return t
}
