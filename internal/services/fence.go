package services

import (
	"sync"
	"time"
)

// Fence hands out increasing sequence numbers per browser so that a search
// answered after a newer one can be recognised and dropped
type Fence struct {
	mu      sync.Mutex
	entries map[string]*fenceEntry
	ttl     time.Duration
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type fenceEntry struct {
	seq     uint64
	touched time.Time
}

// NewFence creates a fence. Keys idle for longer than ttl are forgotten by
// a background sweep that runs until Close.
func NewFence(ttl time.Duration) *Fence {
	f := &Fence{
		entries: make(map[string]*fenceEntry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go f.sweepLoop()
	return f
}

// Begin starts a new request for key and returns its sequence number
func (f *Fence) Begin(key string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[key]
	if !ok {
		e = &fenceEntry{}
		f.entries[key] = e
	}
	e.seq++
	e.touched = f.now()
	return e.seq
}

// IsCurrent reports whether seq is still the latest request for key
func (f *Fence) IsCurrent(key string, seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[key]
	return ok && e.seq == seq
}

func (f *Fence) sweep() {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := f.now().Add(-f.ttl)
	for key, e := range f.entries {
		if e.touched.Before(cutoff) {
			delete(f.entries, key)
		}
	}
}

func (f *Fence) sweepLoop() {
	defer close(f.done)
	ticker := time.NewTicker(f.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-f.stop:
			return
		case <-ticker.C:
			f.sweep()
		}
	}
}

// Close stops the sweep loop
func (f *Fence) Close() {
	f.closeOnce.Do(func() {
		close(f.stop)
		<-f.done
	})
}
