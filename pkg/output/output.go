package output

import (
	"context"

	"github.com/nais/exchangerator/pkg/azure/result"
)

// Sink receives the result of a completed run. Sinks are best-effort: a
// failing sink is reported but never rolls back the provisioned application.
type Sink interface {
	Name() string
	Publish(ctx context.Context, application result.Application) error
}
