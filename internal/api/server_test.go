package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/macrolog/macrolog/internal/app/tracker"
	"github.com/macrolog/macrolog/internal/domain"
	"github.com/macrolog/macrolog/internal/infra/observability"
	"github.com/macrolog/macrolog/internal/infra/sqlite"
)

// ─── Helpers ────────────────────────────────────────────────────────────────

func fixedNow() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

func setupServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := tracker.New(tracker.Config{Clock: fixedNow}, db, db, zap.NewNop())
	store.Load(context.Background())

	srv := NewServer(store, zap.NewNop())
	srv.clock = fixedNow
	srv.EnableMetrics()
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, data []byte) stateResponse {
	t.Helper()
	var st stateResponse
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("decode state: %v\n%s", err, data)
	}
	return st
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

// ─── Basics ─────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	_, h := setupServer(t)
	w := do(t, h, http.MethodGet, "/health", "")
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestState_Fresh(t *testing.T) {
	_, h := setupServer(t)
	w := do(t, h, http.MethodGet, "/api/state", "")
	expectStatus(t, w, http.StatusOK)

	st := decodeState(t, w.Body.Bytes())
	if len(st.Days) != 1 || st.Days[0].Date != "2026-10-18" {
		t.Errorf("days = %+v, want one day for today", st.Days)
	}
	if st.Delete.State != "idle" || st.Delete.Day != nil {
		t.Errorf("delete = %+v, want idle", st.Delete)
	}
	if st.Targets.Calories != 2000 {
		t.Errorf("targets = %+v, want defaults", st.Targets)
	}
}

func TestMetrics(t *testing.T) {
	_, h := setupServer(t)
	w := do(t, h, http.MethodGet, "/metrics", "")
	expectStatus(t, w, http.StatusOK)
}

func TestCORSPreflight(t *testing.T) {
	_, h := setupServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/state", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

// ─── Targets ────────────────────────────────────────────────────────────────

func TestSetTargets(t *testing.T) {
	_, h := setupServer(t)
	w := do(t, h, http.MethodPut, "/api/targets", `{"goalWeight": 150, "calories": "1800"}`)
	expectStatus(t, w, http.StatusOK)

	var got struct {
		Calories, Protein, Carbs, Fat float64
	}
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.Calories != 1800 || got.Protein != 150 || got.Carbs != 188 || got.Fat != 50 {
		t.Errorf("targets = %+v, want 1800/150/188/50", got)
	}
}

func TestSetTargets_Missing(t *testing.T) {
	_, h := setupServer(t)
	w := do(t, h, http.MethodPut, "/api/targets", `{"goalWeight": 150, "calories": ""}`)
	expectStatus(t, w, http.StatusUnprocessableEntity)

	st := decodeState(t, do(t, h, http.MethodGet, "/api/state", "").Body.Bytes())
	if st.Targets.Calories != 2000 {
		t.Errorf("targets changed after rejected update: %+v", st.Targets)
	}
}

func TestSetTargets_BadBody(t *testing.T) {
	_, h := setupServer(t)
	w := do(t, h, http.MethodPut, "/api/targets", `{nope`)
	expectStatus(t, w, http.StatusBadRequest)
}

// ─── Days ───────────────────────────────────────────────────────────────────

func TestNewDayAndEdit(t *testing.T) {
	_, h := setupServer(t)

	w := do(t, h, http.MethodPost, "/api/days", "")
	expectStatus(t, w, http.StatusCreated)
	if st := decodeState(t, w.Body.Bytes()); len(st.Days) != 2 || st.Active != 0 {
		t.Fatalf("after new day: %d days, active %d", len(st.Days), st.Active)
	}

	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "calories", "value": 2100}`)
	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "protein", "value": "150"}`)
	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "carbs", "value": "200"}`)
	w = do(t, h, http.MethodPatch, "/api/days/0", `{"field": "fat", "value": "70"}`)
	expectStatus(t, w, http.StatusOK)

	st := decodeState(t, w.Body.Bytes())
	d := st.Days[0]
	if d.Calories.Value() != 2100 {
		t.Errorf("calories = %v, want 2100", d.Calories)
	}
	// 150*4 + 200*4 + 70*9 = 2030
	if d.Delta == nil || d.Delta.Delta != -70 {
		t.Errorf("delta = %+v, want -70", d.Delta)
	}
}

func TestSetDayField_Errors(t *testing.T) {
	_, h := setupServer(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown field", "/api/days/0", `{"field": "mood", "value": "1"}`, http.StatusBadRequest},
		{"missing day", "/api/days/9", `{"field": "fat", "value": "1"}`, http.StatusNotFound},
		{"bad index", "/api/days/x", `{"field": "fat", "value": "1"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPatch, tt.path, tt.body)
			expectStatus(t, w, tt.want)
		})
	}
}

func TestSetActive(t *testing.T) {
	_, h := setupServer(t)
	do(t, h, http.MethodPost, "/api/days", "")

	w := do(t, h, http.MethodPut, "/api/active", `{"day": 1}`)
	expectStatus(t, w, http.StatusOK)
	if st := decodeState(t, w.Body.Bytes()); st.Active != 1 {
		t.Errorf("active = %d, want 1", st.Active)
	}

	w = do(t, h, http.MethodPut, "/api/active", `{"day": 5}`)
	expectStatus(t, w, http.StatusNotFound)
}

// ─── Delete Confirmation ────────────────────────────────────────────────────

func TestDeleteTwoClicks(t *testing.T) {
	_, h := setupServer(t)
	do(t, h, http.MethodPost, "/api/days", "")

	var resp struct {
		Deleted bool          `json:"deleted"`
		State   stateResponse `json:"state"`
	}

	w := do(t, h, http.MethodPost, "/api/days/1/delete", "")
	expectStatus(t, w, http.StatusOK)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Deleted || resp.State.Delete.State != "armed" || resp.State.Delete.Day == nil || *resp.State.Delete.Day != 1 {
		t.Fatalf("first click = %+v, want armed for day 1", resp)
	}

	w = do(t, h, http.MethodPost, "/api/days/1/delete", "")
	resp = struct {
		Deleted bool          `json:"deleted"`
		State   stateResponse `json:"state"`
	}{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Deleted || len(resp.State.Days) != 1 || resp.State.Delete.State != "idle" {
		t.Errorf("second click = %+v, want deleted and idle", resp)
	}
}

func TestRenderState_UsesOneView(t *testing.T) {
	var g tracker.DeleteGuard
	g.Arm(1)
	st := domain.DefaultState("2026-10-18")
	st.Days = append(st.Days, domain.NewDayRecord("2026-10-17"))

	resp := renderState(tracker.View{State: st, Active: 1, Guard: g})
	if len(resp.Days) != 2 || resp.Active != 1 {
		t.Errorf("resp = %d days, active %d; want 2, 1", len(resp.Days), resp.Active)
	}
	if resp.Delete.State != "armed" || resp.Delete.Day == nil || *resp.Delete.Day != 1 {
		t.Errorf("delete = %+v, want armed for day 1", resp.Delete)
	}
}

func TestState_ConsistentUnderConcurrentEdits(t *testing.T) {
	_, h := setupServer(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/days", nil))
			rec = httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/days/0/delete", nil))
			rec = httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/days/0/delete", nil))
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		var st stateResponse
		w := do(t, h, http.MethodGet, "/api/state", "")
		if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
			t.Errorf("decode state: %v", err)
			continue
		}
		if st.Active < 0 || st.Active >= len(st.Days) {
			t.Errorf("active %d outside %d days", st.Active, len(st.Days))
		}
		if st.Delete.Day != nil && *st.Delete.Day >= len(st.Days) {
			t.Errorf("armed day %d outside %d days", *st.Delete.Day, len(st.Days))
		}
	}
}

func TestDeleteCancel(t *testing.T) {
	_, h := setupServer(t)
	do(t, h, http.MethodPost, "/api/days/0/delete", "")

	w := do(t, h, http.MethodPost, "/api/delete/cancel", "")
	expectStatus(t, w, http.StatusOK)
	if st := decodeState(t, w.Body.Bytes()); st.Delete.State != "idle" {
		t.Errorf("delete = %+v, want idle after cancel", st.Delete)
	}

	// A click after cancel only arms again.
	w = do(t, h, http.MethodPost, "/api/days/0/delete", "")
	if !strings.Contains(w.Body.String(), `"deleted":false`) {
		t.Errorf("click after cancel deleted the day: %s", w.Body.String())
	}
}

func TestDeleteLastDaySubstitutesToday(t *testing.T) {
	_, h := setupServer(t)
	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "date", "value": "2026-01-01"}`)
	do(t, h, http.MethodPost, "/api/days/0/delete", "")
	w := do(t, h, http.MethodPost, "/api/days/0/delete", "")

	var resp struct {
		State stateResponse `json:"state"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.State.Days) != 1 || resp.State.Days[0].Date != "2026-10-18" {
		t.Errorf("days = %+v, want a fresh day for today", resp.State.Days)
	}
}

// ─── Exercises ──────────────────────────────────────────────────────────────

func TestExercises_CardioAndExpand(t *testing.T) {
	_, h := setupServer(t)

	w := do(t, h, http.MethodPost, "/api/days/0/exercises", "")
	expectStatus(t, w, http.StatusCreated)
	do(t, h, http.MethodPost, "/api/days/0/exercises", "")

	do(t, h, http.MethodPatch, "/api/days/0/exercises/0", `{"field": "category", "value": "Cardio"}`)
	do(t, h, http.MethodPatch, "/api/days/0/exercises/0", `{"field": "weight", "value": 100}`)
	do(t, h, http.MethodPatch, "/api/days/0/exercises/0", `{"field": "duration", "value": 30}`)

	do(t, h, http.MethodPatch, "/api/days/0/exercises/1", `{"field": "category", "value": "Strength"}`)
	do(t, h, http.MethodPatch, "/api/days/0/exercises/1", `{"field": "type", "value": "Pull"}`)
	do(t, h, http.MethodPatch, "/api/days/0/exercises/1", `{"field": "group", "value": "Bicep"}`)
	w = do(t, h, http.MethodPatch, "/api/days/0/exercises/1", `{"field": "name", "value": "__all__"}`)
	expectStatus(t, w, http.StatusOK)

	ex := decodeState(t, w.Body.Bytes()).Days[0].Exercises
	if len(ex) != 4 {
		t.Fatalf("len(exercises) = %d, want 4", len(ex))
	}
	if ex[0].Group != "-" || ex[0].Weight.IsSet() || ex[0].Duration.Value() != 30 {
		t.Errorf("cardio entry = %+v", ex[0])
	}
	if ex[1].Name != "Barbell Curl" || ex[3].Name != "Preacher Curl" {
		t.Errorf("expanded names = %q..%q", ex[1].Name, ex[3].Name)
	}

	w = do(t, h, http.MethodDelete, "/api/days/0/exercises/0", "")
	expectStatus(t, w, http.StatusOK)
	if n := len(decodeState(t, w.Body.Bytes()).Days[0].Exercises); n != 3 {
		t.Errorf("after remove: %d exercises, want 3", n)
	}

	w = do(t, h, http.MethodDelete, "/api/days/0/exercises/7", "")
	expectStatus(t, w, http.StatusNotFound)
}

// ─── Catalog ────────────────────────────────────────────────────────────────

func TestCatalogLookups(t *testing.T) {
	_, h := setupServer(t)

	tests := []struct {
		path string
		want string
	}{
		{"/api/catalog/types?category=Mobility", `["Stretching","Yoga"]`},
		{"/api/catalog/groups?category=Strength&type=Pull", `["Back","Bicep"]`},
		{"/api/catalog/exercises?category=Cardio&type=LISS&group=-", `["Treadmill","Stair Master","Elliptical"]`},
		{"/api/catalog/exercises?category=Dance", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, "")
			expectStatus(t, w, http.StatusOK)
			if got := strings.TrimSpace(w.Body.String()); got != tt.want {
				t.Errorf("body = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCatalogTree(t *testing.T) {
	_, h := setupServer(t)
	w := do(t, h, http.MethodGet, "/api/catalog", "")
	expectStatus(t, w, http.StatusOK)

	var resp struct {
		Categories []string       `json:"categories"`
		Tree       []categoryView `json:"tree"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Tree) != len(resp.Categories) || resp.Tree[1].Name != "Cardio" {
		t.Errorf("tree = %+v", resp.Tree)
	}
}

// ─── Weekly ─────────────────────────────────────────────────────────────────

func TestWeekly(t *testing.T) {
	_, h := setupServer(t)
	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "calories", "value": "2000"}`)
	do(t, h, http.MethodPost, "/api/days", "")
	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "calories", "value": "1000"}`)

	w := do(t, h, http.MethodGet, "/api/weekly", "")
	expectStatus(t, w, http.StatusOK)

	var wk tracker.Weekly
	json.Unmarshal(w.Body.Bytes(), &wk)
	if wk.Averages.Calories != 1500 || wk.Averages.Count != 2 {
		t.Errorf("averages = %+v, want calories 1500 over 2", wk.Averages)
	}
}

// ─── Export / Import ────────────────────────────────────────────────────────

func TestExport(t *testing.T) {
	_, h := setupServer(t)

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"json", "application/json", "{"},
		{"csv", "text/csv; charset=utf-8", "date,calories,protein,carbs,fat,exercises"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := do(t, h, http.MethodGet, "/api/export/"+tt.format, "")
			expectStatus(t, w, http.StatusOK)
			if got := w.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			want := `attachment; filename="macrolog-2026-10-18.` + tt.format + `"`
			if got := w.Header().Get("Content-Disposition"); got != want {
				t.Errorf("Content-Disposition = %q, want %q", got, want)
			}
			if !bytes.HasPrefix(w.Body.Bytes(), []byte(tt.prefix)) {
				t.Errorf("body does not start with %q", tt.prefix)
			}
		})
	}

	w := do(t, h, http.MethodGet, "/api/export/pdf", "")
	expectStatus(t, w, http.StatusBadRequest)
}

func TestImportAndRestore(t *testing.T) {
	_, h := setupServer(t)
	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "calories", "value": "1234"}`)

	w := do(t, h, http.MethodPost, "/api/import", `{"days":[{"date":"2026-09-01","calories":1500},{"date":"2026-09-02"}]}`)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"imported":2`) {
		t.Errorf("import body = %s", w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/api/backups", "")
	expectStatus(t, w, http.StatusOK)
	var backups []struct {
		ID     string `json:"id"`
		Reason string `json:"reason"`
		Days   int    `json:"days"`
	}
	json.Unmarshal(w.Body.Bytes(), &backups)
	if len(backups) != 1 || backups[0].Reason != "import" || backups[0].Days != 1 {
		t.Fatalf("backups = %+v", backups)
	}

	w = do(t, h, http.MethodPost, "/api/backups/"+backups[0].ID+"/restore", "")
	expectStatus(t, w, http.StatusOK)
	st := decodeState(t, w.Body.Bytes())
	if len(st.Days) != 1 || st.Days[0].Calories.Value() != 1234 {
		t.Errorf("restored days = %+v", st.Days)
	}

	w = do(t, h, http.MethodPost, "/api/backups/nope/restore", "")
	expectStatus(t, w, http.StatusNotFound)
}

func TestImport_Rejected(t *testing.T) {
	_, h := setupServer(t)

	w := do(t, h, http.MethodPost, "/api/import", `not json`)
	expectStatus(t, w, http.StatusBadRequest)

	w = do(t, h, http.MethodPost, "/api/import", `{"days": []}`)
	expectStatus(t, w, http.StatusUnprocessableEntity)

	st := decodeState(t, do(t, h, http.MethodGet, "/api/state", "").Body.Bytes())
	if len(st.Days) != 1 || st.Days[0].Date != "2026-10-18" {
		t.Errorf("rejected import changed state: %+v", st.Days)
	}
}

func TestRequestMetricsUseRoutePattern(t *testing.T) {
	_, h := setupServer(t)
	// Depending on chi's trailing-slash handling the sub-route pattern may
	// or may not end in "/"; either way the raw index must not leak in.
	count := func() float64 {
		return testutil.ToFloat64(observability.HTTPRequests.WithLabelValues("/api/days/{day}", http.MethodPatch, "200")) +
			testutil.ToFloat64(observability.HTTPRequests.WithLabelValues("/api/days/{day}/", http.MethodPatch, "200"))
	}
	before := count()

	do(t, h, http.MethodPatch, "/api/days/0", `{"field": "fat", "value": "60"}`)
	if got := count(); got != before+1 {
		t.Errorf("requests_total for /api/days/{day} = %v, want %v", got, before+1)
	}
}
