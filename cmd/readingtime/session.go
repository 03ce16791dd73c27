package main

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/readingtime/readingtime/internal/api"
	"github.com/readingtime/readingtime/internal/host"
	"github.com/readingtime/readingtime/internal/store"
	"github.com/readingtime/readingtime/pkg/compute"
	"github.com/readingtime/readingtime/pkg/field"
	"github.com/readingtime/readingtime/pkg/types"
)

// session runs one controller per locale of the body field. Controllers are
// built from a single Config; Restart replaces all of them when the config
// changes and locales added to the entry later get a controller of their own.
type session struct {
	entry    *host.Entry
	store    *store.Store
	bodyID   string
	baseOpts []field.Option
	unwatch  func()

	// lifecycle serializes Restart and Sync.
	lifecycle sync.Mutex

	mu          sync.Mutex
	closed      bool
	cfg         types.Config
	engine      *compute.Engine
	controllers map[string]*field.Controller
}

func newSession(entry *host.Entry, st *store.Store, bodyID string, cfg types.Config, opts ...field.Option) (*session, error) {
	s := &session{entry: entry, store: st, bodyID: bodyID, baseOpts: opts}
	if err := s.Restart(cfg); err != nil {
		return nil, err
	}
	s.unwatch = entry.OnLocalesAdded(func(id string, locales []string) {
		if id != s.bodyID {
			return
		}
		if err := s.Sync(); err != nil {
			slog.Error("session: start controllers for new locales", "locales", locales, "err", err)
		}
	})
	return s, nil
}

// Restart closes the running controllers and starts new ones with cfg.
// Every locale is recomputed from its current content unless it holds an
// override.
func (s *session) Restart(cfg types.Config) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	sf, ok := s.entry.Field(s.bodyID)
	if !ok {
		return &types.ConfigurationError{FieldID: s.bodyID}
	}

	engine := compute.NewEngine(cfg)
	next := make(map[string]*field.Controller)
	for _, locale := range sf.Locales() {
		ctrl, err := s.start(locale, cfg, engine)
		if err != nil {
			closeAll(next)
			return err
		}
		next[locale] = ctrl
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		closeAll(next)
		return field.ErrClosed
	}
	prev := s.controllers
	s.controllers = next
	s.cfg = cfg
	s.engine = engine
	s.mu.Unlock()

	closeAll(prev)
	slog.Info("session: controllers started", "field", s.bodyID, "locales", len(next))
	return nil
}

// Sync starts a controller for every locale of the body field that does not
// have one yet, using the current configuration.
func (s *session) Sync() error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	sf, ok := s.entry.Field(s.bodyID)
	if !ok {
		return &types.ConfigurationError{FieldID: s.bodyID}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return field.ErrClosed
	}
	cfg, engine := s.cfg, s.engine
	var missing []string
	for _, locale := range sf.Locales() {
		if _, ok := s.controllers[locale]; !ok {
			missing = append(missing, locale)
		}
	}
	s.mu.Unlock()

	started := make(map[string]*field.Controller, len(missing))
	for _, locale := range missing {
		ctrl, err := s.start(locale, cfg, engine)
		if err != nil {
			closeAll(started)
			return err
		}
		started[locale] = ctrl
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		closeAll(started)
		return field.ErrClosed
	}
	for locale, ctrl := range started {
		s.controllers[locale] = ctrl
	}
	s.mu.Unlock()

	if len(started) > 0 {
		slog.Info("session: controllers added", "field", s.bodyID, "locales", missing)
	}
	return nil
}

// start creates the controller for locale and stores its initial estimate.
func (s *session) start(locale string, cfg types.Config, engine *compute.Engine) (*field.Controller, error) {
	opts := append(append([]field.Option{}, s.baseOpts...), field.WithEngine(engine))
	ctrl, err := field.New(s.entry, s.bodyID, s.store.Field(locale), cfg, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := ctrl.Recompute(); err != nil {
		ctrl.Close()
		return nil, fmt.Errorf("session: initial estimate %s: %w", locale, err)
	}
	return ctrl, nil
}

// Submit implements api.Overrider.
func (s *session) Submit(locale, value string) (types.Result, error) {
	s.mu.Lock()
	ctrl, ok := s.controllers[locale]
	s.mu.Unlock()
	if !ok {
		return types.Result{}, fmt.Errorf("session: %s: %w", locale, api.ErrUnknownLocale)
	}
	return ctrl.Submit(value)
}

// Config returns the configuration of the running controllers.
func (s *session) Config() types.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Close stops every controller. Later Restart and Sync calls fail with
// field.ErrClosed.
func (s *session) Close() {
	if s.unwatch != nil {
		s.unwatch()
	}
	s.mu.Lock()
	s.closed = true
	prev := s.controllers
	s.controllers = nil
	s.mu.Unlock()
	closeAll(prev)
}

func closeAll(ctrls map[string]*field.Controller) {
	for _, c := range ctrls {
		c.Close()
	}
}
