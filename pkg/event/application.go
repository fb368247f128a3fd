package event

import (
	"fmt"
)

// Application identifies the provisioned application registration. Credentials
// are never part of the payload.
type Application struct {
	Name     string `json:"name"`
	ClientId string `json:"clientId"`
	ObjectId string `json:"objectId"`
	Tenant   string `json:"tenant"`
}

func (a Application) String() string {
	return fmt.Sprintf("%s:%s", a.Tenant, a.Name)
}
