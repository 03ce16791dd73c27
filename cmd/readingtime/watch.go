package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/readingtime/readingtime/internal/api"
	"github.com/readingtime/readingtime/internal/auth"
	"github.com/readingtime/readingtime/internal/config"
	"github.com/readingtime/readingtime/internal/host"
	"github.com/readingtime/readingtime/internal/metrics"
	"github.com/readingtime/readingtime/internal/store"
	"github.com/readingtime/readingtime/internal/ws"
	"github.com/readingtime/readingtime/pkg/field"
)

// broadcastInterval is how often the hub resends the rows to clients.
const broadcastInterval = 5 * time.Second

func newWatchCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "watch <entry.yaml>",
		Short: "Keep the reading times of an entry file up to date",
		Long: `Watch loads an entry file, computes the reading time of the configured body
field in every locale, and recomputes a locale 500ms (host.debounce) after
its content stops changing. Results are persisted to host.store_path and
served over HTTP:

  GET /api/v1/results           sidebar rows
  PUT /api/v1/results/{locale}  {"minutes":"3.5"} overrides, "" resets
  GET /ws/results               live stream
  GET /metrics                  Prometheus metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.Host.ListenAddr = listen
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return a.watch(ctx, args[0])
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides host.listen_addr)")
	return cmd
}

func (a *app) watch(ctx context.Context, entryPath string) error {
	cfg := a.cfg

	entry, err := host.LoadEntry(entryPath)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(cfg.Host.StorePath)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := metrics.New()
	hub := ws.New(st, broadcastInterval)
	for _, e := range st.List() {
		reg.SetResult(e.Locale, e.Result)
	}
	unsub := st.Subscribe(func(e store.Entry) {
		reg.SetResult(e.Locale, e.Result)
		hub.Notify()
	})
	defer unsub()

	sess, err := newSession(entry, st, cfg.Instance.BodyFieldID, cfg.Installation,
		field.WithQuietPeriod(cfg.Host.Debounce),
		field.WithRecorder(reg),
	)
	if err != nil {
		return err
	}
	defer sess.Close()

	go func() {
		if err := entry.Watch(ctx); err != nil {
			slog.Error("readingtime: entry watcher stopped", "err", err)
		}
	}()
	if a.configPath != "" {
		go func() {
			err := config.Watch(ctx, a.configPath, func(next *config.Config) {
				if err := sess.Restart(next.Installation); err != nil {
					slog.Error("readingtime: restart with reloaded config failed", "err", err)
				}
			})
			if err != nil {
				slog.Error("readingtime: config watcher stopped", "err", err)
			}
		}()
	}
	go hub.Run(ctx)

	mux := http.NewServeMux()
	handler := api.New(st,
		api.WithOverrider(sess),
		api.WithMetrics(reg.Handler()),
		api.WithConfig(sess.Config),
	)
	mux.Handle("/", auth.APIKey(cfg.Host.Auth.Mode, cfg.Host.Auth.Header, cfg.Host.Auth.Key(), handler))
	mux.Handle("/ws/results", hub)

	srv := &http.Server{Addr: cfg.Host.ListenAddr, Handler: mux}
	errc := make(chan error, 1)
	go func() {
		slog.Info("readingtime: HTTP server listening", "addr", cfg.Host.ListenAddr, "entry", entryPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return err
	}

	slog.Info("readingtime: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore returns a Store restored from the bbolt file at path, or an
// in-memory Store when path is empty.
func openStore(path string) (*store.Store, func(), error) {
	if path == "" {
		return store.New(nil), func() {}, nil
	}
	db, err := store.OpenBolt(path)
	if err != nil {
		return nil, nil, err
	}
	entries, err := db.LoadAll()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	st := store.New(db)
	st.Restore(entries)
	slog.Info("readingtime: store opened", "path", path, "locales", len(entries))
	return st, func() {
		if err := db.Close(); err != nil {
			slog.Error("readingtime: close store", "err", err)
		}
	}, nil
}
