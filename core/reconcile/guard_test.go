package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_CollapsesConcurrentRuns(t *testing.T) {
	g := NewGuard()
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})

	fn := func(ctx context.Context) (*RunResult, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return NewRun("products").Finish(nil), nil
	}

	var wg sync.WaitGroup
	results := make([]*RunResult, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _, _ = g.Do(context.Background(), "products", fn)
	}()
	<-started
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _, _ = g.Do(context.Background(), "products", fn)
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.NotNil(t, results[0])
	assert.Same(t, results[0], results[1])
}

func TestGuard_ReturnsError(t *testing.T) {
	g := NewGuard()
	res, shared, err := g.Do(context.Background(), "push", func(ctx context.Context) (*RunResult, error) {
		return nil, errors.New("boom")
	})
	assert.Nil(t, res)
	assert.False(t, shared)
	assert.EqualError(t, err, "boom")
}

func TestGuard_CallerCancelled(t *testing.T) {
	g := NewGuard()
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	done := make(chan error, 1)
	go func() {
		_, _, err := g.Do(ctx, "pull", func(ctx context.Context) (*RunResult, error) {
			<-release
			return NewRun("pull"), nil
		})
		done <- err
	}()
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
