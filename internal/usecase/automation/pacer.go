package automation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer inserts randomized, human-paced pauses between page interactions.
type Pacer struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPacer() *Pacer {
	return &Pacer{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: sleepContext,
	}
}

// NoopPacer never waits. Used when human delays are disabled and in tests.
func NoopPacer() *Pacer {
	return &Pacer{
		rnd:   rand.New(rand.NewSource(1)),
		sleep: func(ctx context.Context, _ time.Duration) error { return ctx.Err() },
	}
}

// Between returns a duration uniformly drawn from [min, max].
func (p *Pacer) Between(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + time.Duration(p.rnd.Int63n(int64(max-min)+1))
}

// Pause sleeps for a random duration in [min, max] or until ctx is done.
func (p *Pacer) Pause(ctx context.Context, min, max time.Duration) error {
	return p.sleep(ctx, p.Between(min, max))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
