package passwordcredential

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nais/msgraph.go/ptr"
	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/azure"
	"github.com/nais/exchangerator/pkg/azure/transaction"
	"github.com/nais/exchangerator/pkg/azure/util"
)

type PasswordCredential interface {
	Add(tx transaction.Transaction) (msgraph.PasswordCredential, error)
}

type passwordCredential struct {
	azure.RuntimeClient
}

func NewPasswordCredential(client azure.RuntimeClient) PasswordCredential {
	return passwordCredential{RuntimeClient: client}
}

// Add registers a new password credential for the application, valid for one
// year from the time of the request.
func (p passwordCredential) Add(tx transaction.Transaction) (msgraph.PasswordCredential, error) {
	requestParameter := p.toAddRequest()

	request := p.GraphClient().Applications().ID(tx.ObjectId).AddPassword(requestParameter).Request()

	response, err := request.Post(tx.Ctx)
	if err != nil {
		return msgraph.PasswordCredential{}, fmt.Errorf("adding password credentials for application: %w", err)
	}

	return *response, nil
}

func (p passwordCredential) toAddRequest() *msgraph.ApplicationAddPasswordRequestParameter {
	startDateTime := time.Now()
	endDateTime := startDateTime.AddDate(1, 0, 0)
	keyId := msgraph.UUID(uuid.New().String())

	return &msgraph.ApplicationAddPasswordRequestParameter{
		PasswordCredential: &msgraph.PasswordCredential{
			StartDateTime: &startDateTime,
			EndDateTime:   &endDateTime,
			KeyID:         &keyId,
			DisplayName:   ptr.String(util.DisplayName(startDateTime)),
		},
	}
}
