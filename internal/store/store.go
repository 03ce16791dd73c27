package store

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/readingtime/readingtime/pkg/types"
)

// Entry is a stored reading-time value together with the time it was last
// written.
type Entry struct {
	Locale    string       `json:"locale"`
	Result    types.Result `json:"result"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Persister saves entries outside the process. *Bolt implements it.
type Persister interface {
	Save(Entry) error
}

// Store is a thread-safe in-memory result store, keyed by locale.
// Writes go through the optional Persister first; a failed save leaves the
// in-memory value unchanged.
type Store struct {
	mu      sync.RWMutex
	data    map[string]*Entry
	persist Persister
	now     func() time.Time // injectable for deterministic tests

	subMu  sync.Mutex
	subs   map[int]func(Entry)
	nextID int
}

// New creates an empty Store. persist may be nil.
func New(persist Persister) *Store {
	return &Store{
		data:    make(map[string]*Entry),
		persist: persist,
		now:     time.Now,
		subs:    make(map[int]func(Entry)),
	}
}

// Restore loads previously persisted entries without saving them again or
// notifying subscribers.
func (s *Store) Restore(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range entries {
		e := entries[i]
		s.data[e.Locale] = &e
	}
}

// Put stores r for locale and notifies subscribers.
func (s *Store) Put(locale string, r types.Result) error {
	e := Entry{Locale: locale, Result: r, UpdatedAt: s.now()}
	if s.persist != nil {
		if err := s.persist.Save(e); err != nil {
			return fmt.Errorf("store: persist %s: %w", locale, err)
		}
	}

	s.mu.Lock()
	s.data[locale] = &e
	s.mu.Unlock()

	slog.Debug("store: result stored", "locale", locale, "minutes", r.MinutesText(), "overridden", r.Overridden)
	s.notify(e)
	return nil
}

// Get returns the Entry for locale and whether one was found.
func (s *Store) Get(locale string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[locale]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// List returns every entry ordered by locale.
func (s *Store) List() []Entry {
	s.mu.RLock()
	out := make([]Entry, 0, len(s.data))
	for _, e := range s.data {
		out = append(out, *e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Locale < out[j].Locale })
	return out
}

// Count returns the number of stored locales.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Subscribe registers fn to be called after every Put. The returned function
// removes the registration.
func (s *Store) Subscribe(fn func(Entry)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(e Entry) {
	s.subMu.Lock()
	fns := make([]func(Entry), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
