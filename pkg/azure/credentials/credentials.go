package credentials

import (
	"time"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/util/crypto"
)

// Credentials holds the secrets issued for the provisioned application.
// The password is always present; the certificate only when configured.
type Credentials struct {
	Password    Password     `json:"password"`
	Certificate *Certificate `json:"certificate,omitempty"`
}

type Password struct {
	KeyId         string    `json:"keyId"`
	ClientSecret  string    `json:"clientSecret"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
}

type Certificate struct {
	KeyId string     `json:"keyId"`
	Jwk   crypto.Jwk `json:"jwk"`
}

// AddedKeyCredential pairs the key credential written to the application with
// the JWK containing the private key. The private key never leaves the process
// except through the configured output sinks.
type AddedKeyCredential struct {
	KeyCredential msgraph.KeyCredential
	Jwk           crypto.Jwk
}
