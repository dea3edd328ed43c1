package engine

import (
	"context"

	"dsc/core"
)

type guardKey struct{}

// guarded report whether ctx was derived inside a mutating call of e
func (e *Engine) guarded(ctx context.Context) bool {
	owner, _ := ctx.Value(guardKey{}).(*Engine)
	return owner == e
}

// lock acquire the write guard for a mutating call
//
// Collaborators receive the returned ctx. A collaborator calling back into a
// mutating entry point with it fails ErrReentrantCall instead of deadlocking;
// one that drops it and calls back with a fresh context waits for the outer
// call to return, so a synchronous callback of that kind deadlocks.
func (e *Engine) lock(ctx context.Context) (context.Context, func(), error) {
	if e.guarded(ctx) {
		return nil, nil, core.ErrReentrantCall
	}

	e.mux.Lock()
	return context.WithValue(ctx, guardKey{}, e), e.mux.Unlock, nil
}

// rlock acquire the read guard for a query, no-op inside a mutating call
func (e *Engine) rlock(ctx context.Context) func() {
	if e.guarded(ctx) {
		return func() {}
	}

	e.mux.RLock()
	return e.mux.RUnlock
}
