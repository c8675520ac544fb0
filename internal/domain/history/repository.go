package history

import "context"

// Repository defines the interface for seen-key persistence
type Repository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, keys []string) error
	Clear(ctx context.Context) error
}
