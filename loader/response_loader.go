// Package loader memoizes catalog API responses for the lifetime of a single request.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/graph-gophers/dataloader"
	"golang.org/x/sync/errgroup"
)

// FetchFunc performs the actual upstream GET for a URL
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

type ctxKey string

const responseLoaderKey ctxKey = "responseLoader"

// ResponseLoader dedupes GETs of the same URL. A new one must be created per request.
type ResponseLoader struct {
	Loader *dataloader.Loader
}

// NewResponseLoader creates a loader backed by fetch. The catalog API has no batch
// endpoint, so the batch function issues one GET per distinct key, at most
// concurrency at a time. concurrency <= 0 means no limit.
func NewResponseLoader(fetch FetchFunc, concurrency int) *ResponseLoader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))

		var g errgroup.Group
		if concurrency > 0 {
			g.SetLimit(concurrency)
		}
		for i, key := range keys {
			g.Go(func() error {
				body, err := fetch(ctx, key.String())
				if err != nil {
					results[i] = &dataloader.Result{Error: err}
					return nil
				}
				results[i] = &dataloader.Result{Data: body}
				return nil
			})
		}
		_ = g.Wait()
		return results
	}

	loader := dataloader.NewBatchedLoader(batchFn, dataloader.WithWait(time.Millisecond))

	return &ResponseLoader{Loader: loader}
}

// Load returns the body for url, fetching it at most once per loader
func (l *ResponseLoader) Load(ctx context.Context, url string) ([]byte, error) {
	value, err := l.Loader.Load(ctx, dataloader.StringKey(url))()
	if err != nil {
		return nil, err
	}
	body, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected loader value %T for %s", value, url)
	}
	return body, nil
}

// WithResponseLoader stores l in ctx
func WithResponseLoader(ctx context.Context, l *ResponseLoader) context.Context {
	return context.WithValue(ctx, responseLoaderKey, l)
}

// FromContext retrieves the loader from ctx, or nil when none is attached
func FromContext(ctx context.Context) *ResponseLoader {
	if l, ok := ctx.Value(responseLoaderKey).(*ResponseLoader); ok {
		return l
	}
	return nil
}
