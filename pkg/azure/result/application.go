package result

import (
	"github.com/nais/exchangerator/pkg/azure/credentials"
)

// Application describes a successfully provisioned application registration.
type Application struct {
	DisplayName        string                  `json:"displayName"`
	ClientId           string                  `json:"clientId"`
	ObjectId           string                  `json:"objectId"`
	ServicePrincipalId string                  `json:"servicePrincipalId"`
	Tenant             string                  `json:"tenant"`
	GrantedScope       string                  `json:"grantedScope"`
	AssignedRole       string                  `json:"assignedRole"`
	Credentials        credentials.Credentials `json:"credentials"`
}
