package notify

import (
	"context"

	"jobscout/internal/domain/digest"
)

// Notifier delivers a rendered digest over one channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, d digest.Digest) error
}
