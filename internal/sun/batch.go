package sun

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Query is one (location, day) input of a batch.
type Query struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Date      time.Time `json:"date"`
}

// Batch evaluates fn for every query on up to workers goroutines (GOMAXPROCS
// when workers <= 0). Results keep the order of queries. The only error is
// ctx being canceled before all queries ran.
func Batch(ctx context.Context, fn TimesFunc, queries []Query, workers int) ([]SunTimes, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]SunTimes, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		i, q := i, q
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = fn(q.Latitude, q.Longitude, q.Date)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may have stopped early without any goroutine seeing it
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
