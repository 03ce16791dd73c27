package field

import "sync"

// Subscriptions collects unsubscribe functions so they can be released
// together exactly once.
type Subscriptions struct {
	mu     sync.Mutex
	fns    []func()
	closed bool
}

// Add registers unsubscribe. After Close it is called immediately.
func (s *Subscriptions) Add(unsubscribe func()) {
	if unsubscribe == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		unsubscribe()
		return
	}
	s.fns = append(s.fns, unsubscribe)
	s.mu.Unlock()
}

// Len returns the number of held subscriptions.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

// Close calls every registered unsubscribe function, newest first.
// Later calls do nothing.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	fns := s.fns
	s.fns = nil
	s.closed = true
	s.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
