// Package export writes the tracker document as JSON or CSV, names export
// artifacts of every format and reads JSON imports back.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/macrolog/macrolog/internal/domain"
)

// ErrUnsupportedFormat is returned by Write for formats it cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an export artifact kind.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, csv or xlsx)", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// FileName names an export after the date it was taken.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("macrolog-%s.%s", domain.Today(now), f)
}

// Write dispatches to the flat-file writer for f. Workbooks carry the
// weekly view and are assembled by the caller.
func Write(w io.Writer, f Format, state domain.AppState) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, state)
	case FormatCSV:
		return WriteCSV(w, state.Days)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// ─── JSON ───────────────────────────────────────────────────────────────────

// WriteJSON writes the whole state, pretty-printed.
func WriteJSON(w io.Writer, state domain.AppState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}

// ReadImport parses an import file. Targets are merged over the defaults;
// days are taken as they are. Invalid JSON yields domain.ErrImportParse and
// a missing or empty days list yields domain.ErrImportShape. No partial
// state is ever returned.
func ReadImport(r io.Reader) (domain.AppState, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.AppState{}, fmt.Errorf("read import: %w", err)
	}

	var doc struct {
		Targets json.RawMessage    `json:"targets"`
		Days    []domain.DayRecord `json:"days"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.AppState{}, fmt.Errorf("%w: %v", domain.ErrImportParse, err)
	}
	if len(doc.Days) == 0 {
		return domain.AppState{}, domain.ErrImportShape
	}
	return domain.AppState{
		Targets: domain.MergeTargets(doc.Targets),
		Days:    doc.Days,
	}, nil
}
