package infrastructure

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type IndexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes warms the indexes of every repository concurrently and
// returns the first failure. Repositories left cold retry on first use.
func EnsureIndexes(ctx context.Context, repos ...IndexEnsurer) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, repo := range repos {
		repo := repo
		g.Go(func() error {
			return repo.EnsureIndexes(ctx)
		})
	}
	return g.Wait()
}
