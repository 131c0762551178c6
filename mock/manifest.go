package mock

import (
	"context"

	"github.com/rashidq/nezamdoc"
)

var _ nezamdoc.ManifestStore = (*ManifestStore)(nil)

// ManifestStore is a mock implementation of nezamdoc.ManifestStore.
type ManifestStore struct {
	SaveFn func(ctx context.Context, items []nezamdoc.Item) (string, error)
	LoadFn func(ctx context.Context, path string) ([]nezamdoc.Item, error)
}

func (s *ManifestStore) Save(ctx context.Context, items []nezamdoc.Item) (string, error) {
	return s.SaveFn(ctx, items)
}

func (s *ManifestStore) Load(ctx context.Context, path string) ([]nezamdoc.Item, error) {
	return s.LoadFn(ctx, path)
}
