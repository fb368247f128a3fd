package azure

import (
	"net/http"
	"time"

	msgraph "github.com/nais/msgraph.go/v1.0"

	"github.com/nais/exchangerator/pkg/config"
)

// RuntimeClient exposes the shared dependencies needed by the Graph API sub-clients.
type RuntimeClient interface {
	Config() *config.Config
	GraphClient() *msgraph.GraphServiceRequestBuilder
	HttpClient() *http.Client

	// DelayIntervalBetweenModifications returns the wait time between successive write
	// operations to the same Graph API resource. Writing to a recently modified resource
	// tends to return HTTP 500 errors, so we space the modifications out.
	DelayIntervalBetweenModifications() time.Duration
	MaxNumberOfPagesToFetch() int
}
