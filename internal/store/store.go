// Package store mirrors remote backend state into in-memory slices. Each
// store owns a group of slices and exposes actions that perform exactly one
// backend call and translate the outcome into state.
//
// Fetch actions store failures in the slice's error field and also return
// them. Mutation actions return errors and only touch fetch slices through
// local patches after a successful response.
package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/internal/client"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

// Requester is satisfied by *client.Client.
type Requester interface {
	Do(ctx context.Context, req client.Request, out interface{}) error
}

// Observer records responses discarded because a newer request superseded them.
type Observer interface {
	ObserveSuperseded(slice string)
}

// Deps groups the collaborators every store needs.
type Deps struct {
	Client  Requester
	Logger  *zap.Logger
	Metrics Observer
}

type base struct {
	guard
	name    string
	client  Requester
	logger  *zap.Logger
	metrics Observer
}

func newBase(name string, deps Deps) base {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{
		name:    name,
		client:  deps.Client,
		logger:  logger.With(zap.String("store", name)),
		metrics: deps.Metrics,
	}
}

// begin opens a new request generation on s, cancelling the previous one.
func (b *base) begin(ctx context.Context, s slice) (context.Context, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := s.track()
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	reqCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	s.setLoading(true)
	s.setError("")
	return reqCtx, t.gen
}

// settle applies the outcome of generation gen to s. Outcomes of superseded
// generations leave state untouched and return ErrSuperseded. A current
// request that was cancelled only clears the loading flag and keeps the held
// data.
func (b *base) settle(reqCtx context.Context, sliceName string, s slice, gen uint64, err error, apply func()) error {
	b.mu.Lock()
	t := s.track()
	if gen != t.gen {
		b.mu.Unlock()
		if b.metrics != nil {
			b.metrics.ObserveSuperseded(b.name + "." + sliceName)
		}
		b.logger.Debug("discarding superseded response", zap.String("slice", sliceName), zap.Uint64("generation", gen))
		return appErrors.Wrap(err, appErrors.ErrSuperseded.Code, appErrors.ErrSuperseded.Status, appErrors.ErrSuperseded.Message)
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	s.setLoading(false)
	if err != nil && errors.Is(reqCtx.Err(), context.Canceled) {
		b.mu.Unlock()
		b.logger.Debug("fetch cancelled", zap.String("slice", sliceName), zap.Uint64("generation", gen))
		return err
	}
	if err != nil {
		s.reset()
		s.setError(appErrors.Message(err))
	} else {
		apply()
		s.setError("")
	}
	b.mu.Unlock()

	if err != nil {
		b.logger.Warn("fetch failed", zap.String("slice", sliceName), zap.Error(err))
	}
	return err
}

// fetch runs one request for slice s and applies the decoded response on success.
func fetch[R any](ctx context.Context, b *base, sliceName string, s slice, req client.Request, apply func(*R)) error {
	reqCtx, gen := b.begin(ctx, s)
	var resp R
	err := b.client.Do(reqCtx, req, &resp)
	return b.settle(reqCtx, sliceName, s, gen, err, func() { apply(&resp) })
}

// mutate performs a mutation call. apply runs under the store lock on success.
func mutate[R any](ctx context.Context, b *base, req client.Request, apply func(*R)) (*R, error) {
	var resp R
	if err := b.client.Do(ctx, req, &resp); err != nil {
		b.logger.Warn("mutation failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return nil, err
	}
	if apply != nil {
		b.mu.Lock()
		apply(&resp)
		b.mu.Unlock()
	}
	return &resp, nil
}

// clearError resets the error field of s.
func (b *base) clearError(s slice) {
	b.mu.Lock()
	s.setError("")
	b.mu.Unlock()
}

// cancelAll aborts every in-flight fetch of the given slices.
func (b *base) cancelAll(slices ...slice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range slices {
		t := s.track()
		if t.cancel != nil {
			t.cancel()
			t.cancel = nil
		}
	}
}
