package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/macrolog/macrolog/internal/api"
	"github.com/macrolog/macrolog/internal/app/tracker"
	"github.com/macrolog/macrolog/internal/infra/sqlite"
)

// App is an opened tracker: storage plus the loaded store.
type App struct {
	Config Config
	DB     *sqlite.DB
	Store  *tracker.Store
	log    *zap.Logger
}

// Open opens storage and loads the state. Storage that cannot be opened is
// an error; storage that opens but holds nothing usable falls back to the
// default state inside Store.Load.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (*App, error) {
	db, err := sqlite.Open(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := tracker.New(tracker.Config{
		SlotKey: cfg.Storage.Slot,
		Clock:   time.Now,
	}, db, db, log)
	store.Load(ctx)

	log.Debug("storage opened", zap.String("path", db.Path()))
	return &App{Config: cfg, DB: db, Store: store, log: log}, nil
}

// Close releases storage.
func (a *App) Close() error { return a.DB.Close() }

// Handler builds the HTTP handler for this app's configuration.
func (a *App) Handler() http.Handler {
	srv := api.NewServer(a.Store, a.log)
	if a.Config.API.Metrics {
		srv.EnableMetrics()
	}
	srv.SetCORSOrigins(a.Config.API.CORSOrigins)
	return srv.Handler()
}

// Serve runs the HTTP surface until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              a.Config.API.Addr(),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.String("addr", httpSrv.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.log.Info("shutting down")
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
