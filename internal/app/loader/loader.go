// Package loader runs page data loads so that results fetched under one login
// never surface after the session has changed.
package loader

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrStale is returned when the session changed while a load was in flight.
var ErrStale = errors.New("session changed during load")

// Binder is the part of a session a load needs.
type Binder interface {
	Bind(parent context.Context) (context.Context, context.CancelFunc)
	Generation() uint64
}

// Run calls fn with a context cancelled on login or logout. Its result is
// discarded with ErrStale if the session generation moved before fn returned.
func Run[T any](ctx context.Context, sess Binder, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if sess == nil {
		return fn(ctx)
	}

	gen := sess.Generation()
	bound, cancel := sess.Bind(ctx)
	defer cancel()

	v, err := fn(bound)
	if sess.Generation() != gen {
		return zero, ErrStale
	}
	if err != nil {
		return zero, err
	}
	return v, nil
}

// Group runs several loads for one page concurrently. The first failure
// cancels the rest.
type Group struct {
	sess   Binder
	gen    uint64
	cancel context.CancelFunc
	g      *errgroup.Group
	ctx    context.Context
}

func NewGroup(ctx context.Context, sess Binder) *Group {
	grp := &Group{sess: sess, cancel: func() {}}
	if sess != nil {
		grp.gen = sess.Generation()
		ctx, grp.cancel = sess.Bind(ctx)
	}
	grp.g, grp.ctx = errgroup.WithContext(ctx)
	return grp
}

// Go starts fn. Results must be written by fn to variables owned by the caller
// and read only after Wait returns nil.
func (grp *Group) Go(fn func(context.Context) error) {
	grp.g.Go(func() error {
		return fn(grp.ctx)
	})
}

func (grp *Group) Wait() error {
	defer grp.cancel()
	err := grp.g.Wait()
	if grp.sess != nil && grp.sess.Generation() != grp.gen {
		return ErrStale
	}
	if err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	return nil
}
