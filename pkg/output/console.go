package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nais/exchangerator/pkg/azure/result"
)

type console struct {
	w io.Writer
}

func NewConsole(w io.Writer) Sink {
	return console{w: w}
}

func (c console) Name() string {
	return "console"
}

func (c console) Publish(_ context.Context, app result.Application) error {
	lines := []string{
		fmt.Sprintf("Display name:       %s", app.DisplayName),
		fmt.Sprintf("Client ID:          %s", app.ClientId),
		fmt.Sprintf("Object ID:          %s", app.ObjectId),
		fmt.Sprintf("Service principal:  %s", app.ServicePrincipalId),
		fmt.Sprintf("Tenant:             %s", app.Tenant),
		fmt.Sprintf("Granted scope:      %s", app.GrantedScope),
		fmt.Sprintf("Assigned app role:  %s", app.AssignedRole),
		fmt.Sprintf("Secret key ID:      %s", app.Credentials.Password.KeyId),
		fmt.Sprintf("Client secret:      %s", app.Credentials.Password.ClientSecret),
		fmt.Sprintf("Secret expires:     %s", app.Credentials.Password.EndDateTime.Format(time.RFC3339)),
	}

	if app.Credentials.Certificate != nil {
		jwk, err := json.Marshal(app.Credentials.Certificate.Jwk.Private)
		if err != nil {
			return fmt.Errorf("marshalling private JWK: %w", err)
		}

		lines = append(lines,
			fmt.Sprintf("Certificate key ID: %s", app.Credentials.Certificate.KeyId),
			fmt.Sprintf("Certificate JWK:    %s", jwk),
		)
	}

	if _, err := fmt.Fprintln(c.w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("writing result to console: %w", err)
	}

	return nil
}
