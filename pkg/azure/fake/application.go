package fake

import (
	"time"

	"github.com/google/uuid"
	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/client/application/requiredresourceaccess"
	"github.com/nais/exchangerator/pkg/azure/credentials"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/azure/util"
	"github.com/nais/exchangerator/pkg/util/crypto"
)

func Application(tx transaction.Transaction) msgraph.Application {
	access := requiredresourceaccess.NewRequiredResourceAccess().Describe(tx)

	return msgraph.Application{
		DirectoryObject: msgraph.DirectoryObject{
			Entity: msgraph.Entity{ID: ptr.String(uuid.New().String())},
		},
		AppID:                  ptr.String(uuid.New().String()),
		DisplayName:            ptr.String(tx.Registration.DisplayName),
		SignInAudience:         ptr.String("AzureADMyOrg"),
		RequiredResourceAccess: []msgraph.RequiredResourceAccess{access},
	}
}

func PasswordCredential() msgraph.PasswordCredential {
	keyId := msgraph.UUID(uuid.New().String())
	startDateTime := time.Now()
	endDateTime := startDateTime.AddDate(1, 0, 0)

	return msgraph.PasswordCredential{
		KeyID:         &keyId,
		SecretText:    ptr.String(uuid.New().String()),
		DisplayName:   ptr.String(util.DisplayName(startDateTime)),
		StartDateTime: &startDateTime,
		EndDateTime:   &endDateTime,
	}
}

func KeyCredential(displayName string) (*credentials.AddedKeyCredential, error) {
	jwk, err := crypto.GenerateJwk(displayName)
	if err != nil {
		return nil, err
	}

	keyId := msgraph.UUID(uuid.New().String())
	keyBase64 := msgraph.Binary(jwk.PublicPem)

	return &credentials.AddedKeyCredential{
		KeyCredential: msgraph.KeyCredential{
			KeyID:       &keyId,
			DisplayName: ptr.String(azure.ExchangeratorPrefix),
			Type:        ptr.String("AsymmetricX509Cert"),
			Usage:       ptr.String("Verify"),
			Key:         &keyBase64,
		},
		Jwk: jwk,
	}, nil
}
