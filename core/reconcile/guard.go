package reconcile

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Guard serialises runs of the same kind. Callers that arrive while a run of
// that kind is in flight wait for it and receive its result instead of starting
// a second run against the same records.
type Guard struct {
	sf singleflight.Group
}

// NewGuard creates a Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Do executes fn unless a run with the same kind is already executing.
// shared is true when the result came from another caller's run.
func (g *Guard) Do(ctx context.Context, kind string, fn func(ctx context.Context) (*RunResult, error)) (res *RunResult, shared bool, err error) {
	ch := g.sf.DoChan(kind, func() (interface{}, error) {
		// The run outlives any single waiting caller.
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case r := <-ch:
		if r.Val != nil {
			res = r.Val.(*RunResult)
		}
		return res, r.Shared, r.Err
	}
}
