package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingPurger struct {
	calls atomic.Int64
}

func (p *countingPurger) PurgeExpired(context.Context) (int, error) {
	p.calls.Add(1)

	return 1, nil
}

func TestReaper_RunPurgesUntilCancelled(t *testing.T) {
	purger := &countingPurger{}
	reaper := NewReaper(purger, time.Millisecond, discardTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return purger.calls.Load() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancellation")
	}
}
