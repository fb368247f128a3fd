package output

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nais/exchangerator/pkg/azure/result"
)

// clipboardCommands are probed in order. The first one found on PATH receives
// the client secret on stdin.
var clipboardCommands = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"pbcopy"},
	{"clip.exe"},
}

type clipboard struct{}

func NewClipboard() Sink {
	return clipboard{}
}

func (c clipboard) Name() string {
	return "clipboard"
}

// Publish copies the client secret to the system clipboard, ready to be pasted
// into the application that will use the credentials.
func (c clipboard) Publish(ctx context.Context, app result.Application) error {
	name, args, err := lookupCommand()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(app.Credentials.Password.ClientSecret)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", name, err, string(out))
	}

	return nil
}

func lookupCommand() (string, []string, error) {
	for _, candidate := range clipboardCommands {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return candidate[0], candidate[1:], nil
		}
	}

	return "", nil, errors.New("no clipboard command found on PATH")
}
