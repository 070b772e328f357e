package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
)

// Result is the outcome of parsing one investigation
type Result struct {
	Investigation model.Investigation
	Record        model.Record
	Err           error
}

// ParseAll parses every investigation with at most workers files in flight.
// Results keep the input order and a failing file never stops the others.
// Only cancellation of ctx is returned as an error.
func ParseAll(ctx context.Context, investigations []model.Investigation, workers int, opts parser.Options) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(investigations))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, inv := range investigations {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := parser.ParseFile(inv.Filename, inv.Kind, opts)
			results[i] = Result{Investigation: inv, Record: record, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
