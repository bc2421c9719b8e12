// Package transfer moves whole tracker documents in and out of a Store:
// exports in any supported format and JSON imports with a pre-swap backup.
package transfer

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/macrolog/macrolog/internal/app/tracker"
	"github.com/macrolog/macrolog/internal/infra/export"
	"github.com/macrolog/macrolog/internal/infra/observability"
)

// Export writes the store's current state to w as format f.
func Export(w io.Writer, store *tracker.Store, f export.Format) error {
	state := store.Snapshot()
	var err error
	if f == export.FormatXLSX {
		err = WriteXLSX(w, state)
	} else {
		err = export.Write(w, f, state)
	}
	if err != nil {
		return err
	}
	observability.Exports.WithLabelValues(string(f)).Inc()
	return nil
}

// Import parses r and, if it is a usable document, swaps it in as the
// whole state. A parse or shape error leaves the store untouched.
func Import(ctx context.Context, store *tracker.Store, r io.Reader, log *zap.Logger) (int, error) {
	state, err := export.ReadImport(r)
	if err == nil {
		err = store.Replace(ctx, state, "import")
	}
	observability.Imports.WithLabelValues(observability.ResultLabel(err)).Inc()
	if err != nil {
		log.Warn("import rejected", zap.Error(err))
		return 0, err
	}
	log.Info("import applied", zap.Int("days", len(state.Days)))
	return len(state.Days), nil
}
