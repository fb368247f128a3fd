package registration

import (
	"github.com/nais/exchangerator/pkg/config"
)

// Registration is the desired state for the application to be provisioned.
type Registration struct {
	DisplayName   string
	IdentifierUri string
	Certificate   bool
	Resource      Resource
}

// Resource describes the API that the provisioned application is granted access to.
type Resource struct {
	AppId          string
	DisplayName    string
	DelegatedScope string
	AppRole        string
}

func FromConfig(cfg config.Config) Registration {
	return Registration{
		DisplayName:   cfg.Application.DisplayName,
		IdentifierUri: cfg.Application.IdentifierUri,
		Certificate:   cfg.Application.Certificate,
		Resource: Resource{
			AppId:          cfg.Exchange.ResourceAppId,
			DisplayName:    cfg.Exchange.ServicePrincipalName,
			DelegatedScope: cfg.Exchange.DelegatedScope,
			AppRole:        cfg.Exchange.AppRole,
		},
	}
}
