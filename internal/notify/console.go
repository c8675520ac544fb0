package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"jobscout/internal/domain/digest"
)

// Console prints the plain-text digest. It is the only channel active
// in dry-run mode.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

func (c *Console) Name() string {
	return "console"
}

func (c *Console) Send(_ context.Context, d digest.Digest) error {
	text, err := d.Text()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.out, "%s\n\n%s", d.Subject(), text); err != nil {
		return fmt.Errorf("console: writing digest: %w", err)
	}
	return nil
}

var _ Notifier = (*Console)(nil)
