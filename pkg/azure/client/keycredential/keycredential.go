package keycredential

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/client/application"
	"github.com/nais/exchangerator/pkg/azure/credentials"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/azure/util"
	"github.com/nais/exchangerator/pkg/util/crypto"
)

type KeyCredential interface {
	Add(tx transaction.Transaction) (*credentials.AddedKeyCredential, error)
}

type Client interface {
	azure.RuntimeClient
	Application() application.Application
}

type keyCredential struct {
	Client
}

func NewKeyCredential(client Client) KeyCredential {
	return keyCredential{Client: client}
}

// Add generates a certificate key credential for the application and patches
// the application's key list with it. The JWK containing the private key is
// returned alongside the credential written to Azure AD.
func (k keyCredential) Add(tx transaction.Transaction) (*credentials.AddedKeyCredential, error) {
	jwk, err := crypto.GenerateJwk(tx.Registration.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("generating JWK for application: %w", err)
	}

	newKeyCredential := toKeyCredential(jwk)

	app := util.EmptyApplication().
		Keys([]msgraph.KeyCredential{newKeyCredential}).
		Build()

	if err := k.Application().Patch(tx.Ctx, tx.ObjectId, app); err != nil {
		return nil, fmt.Errorf("updating application with key credential: %w", err)
	}

	return &credentials.AddedKeyCredential{
		KeyCredential: newKeyCredential,
		Jwk:           jwk,
	}, nil
}

func toKeyCredential(jwk crypto.Jwk) msgraph.KeyCredential {
	keyId := msgraph.UUID(uuid.New().String())
	keyBase64 := msgraph.Binary(jwk.PublicPem)

	return msgraph.KeyCredential{
		KeyID:       &keyId,
		DisplayName: ptr.String(azure.ExchangeratorPrefix),
		Type:        ptr.String("AsymmetricX509Cert"),
		Usage:       ptr.String("Verify"),
		Key:         &keyBase64,
	}
}
