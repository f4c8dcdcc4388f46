package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock for tests. After channels fire when
// Advance moves the clock past their deadline.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []waiter
}

type waiter struct {
	deadline time.Time
	ch       chan time.Time
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan time.Time, 1)
	deadline := f.now.Add(d)

	if d <= 0 {
		ch <- f.now
		return ch
	}

	f.waiters = append(f.waiters, waiter{deadline: deadline, ch: ch})

	return ch
}

// Set moves the clock to t, firing any waiter whose deadline has passed.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = t

	pending := f.waiters[:0]
	for _, w := range f.waiters {
		if !w.deadline.After(t) {
			w.ch <- t
			continue
		}
		pending = append(pending, w)
	}
	f.waiters = pending
}

func (f *Fake) Advance(d time.Duration) {
	f.Set(f.Now().Add(d))
}

// Waiters reports how many After channels are still pending.
func (f *Fake) Waiters() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.waiters)
}
