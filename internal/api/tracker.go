package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/macrolog/macrolog/internal/app/macros"
	"github.com/macrolog/macrolog/internal/app/tracker"
	"github.com/macrolog/macrolog/internal/domain"
)

// ─── Tracker API ────────────────────────────────────────────────────────────
//
// GET   /api/state                          targets, days, active day, delete guard
// GET   /api/weekly                         last seven entries, averages, series
// PUT   /api/targets                        recompute targets {goalWeight, calories}
// PUT   /api/active                         select the day being edited {day}
// POST  /api/days                           prepend a day for today
// PATCH /api/days/{day}                     edit {field, value}
// POST  /api/days/{day}/delete              first click arms, second deletes
// POST  /api/delete/cancel                  disarm
// POST  /api/days/{day}/exercises           append an empty entry
// PATCH /api/days/{day}/exercises/{ex}      edit {field, value}
// DELETE /api/days/{day}/exercises/{ex}     remove an entry

type dayView struct {
	domain.DayRecord
	Delta *macros.MacroDelta `json:"delta,omitempty"`
}

type guardView struct {
	State string `json:"state"`
	Day   *int   `json:"day,omitempty"`
}

type stateResponse struct {
	Targets domain.MacroTargets `json:"targets"`
	Days    []dayView           `json:"days"`
	Active  int                 `json:"active"`
	Delete  guardView           `json:"delete"`
}

func (s *Server) stateView() stateResponse {
	return renderState(s.store.View())
}

// renderState shapes one consistent store view for the form.
func renderState(v tracker.View) stateResponse {
	resp := stateResponse{
		Targets: v.State.Targets,
		Days:    make([]dayView, 0, len(v.State.Days)),
		Active:  v.Active,
	}
	for _, d := range v.State.Days {
		dv := dayView{DayRecord: d}
		if delta, ok := macros.Delta(d); ok {
			dv.Delta = &delta
		}
		resp.Days = append(resp.Days, dv)
	}

	resp.Delete.State = v.Guard.State().String()
	if i, ok := v.Guard.Armed(); ok {
		resp.Delete.Day = &i
	}
	return resp
}

// fieldEdit is the body of a PATCH. Value may be sent as a string or a
// bare number; either way it reaches the store as text.
type fieldEdit struct {
	Field string     `json:"field"`
	Value fieldValue `json:"value"`
}

type fieldValue string

func (v *fieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = fieldValue(str)
		return nil
	}
	*v = fieldValue(data)
	return nil
}

func pathIndex(r *http.Request, key string) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// handleState returns the whole state plus derived per-day deltas.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stateView())
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Weekly())
}

func (s *Server) handleSetTargets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GoalWeight domain.Amount `json:"goalWeight"`
		Calories   domain.Amount `json:"calories"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t, err := s.store.SetTargets(r.Context(), req.GoalWeight.Value(), req.Calories.Value())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day int `json:"day"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.store.SetActive(req.Day); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateView())
}

func (s *Server) handleNewDay(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.NewDay(r.Context()); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.stateView())
}

func (s *Server) handleSetDayField(w http.ResponseWriter, r *http.Request) {
	day, ok := pathIndex(r, "day")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid day index")
		return
	}
	var req fieldEdit
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.store.SetDayField(r.Context(), day, req.Field, string(req.Value)); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateView())
}

func (s *Server) handleDeleteClick(w http.ResponseWriter, r *http.Request) {
	day, ok := pathIndex(r, "day")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid day index")
		return
	}

	deleted, err := s.store.ClickDelete(r.Context(), day)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
		"state":   s.stateView(),
	})
}

func (s *Server) handleDeleteCancel(w http.ResponseWriter, r *http.Request) {
	s.store.CancelDelete()
	writeJSON(w, http.StatusOK, s.stateView())
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	day, ok := pathIndex(r, "day")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid day index")
		return
	}

	idx, err := s.store.AddExercise(r.Context(), day)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"index": idx,
		"state": s.stateView(),
	})
}

func (s *Server) handleSetExerciseField(w http.ResponseWriter, r *http.Request) {
	day, ok := pathIndex(r, "day")
	ex, ok2 := pathIndex(r, "ex")
	if !ok || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid day or exercise index")
		return
	}
	var req fieldEdit
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.store.SetExerciseField(r.Context(), day, ex, req.Field, string(req.Value)); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateView())
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	day, ok := pathIndex(r, "day")
	ex, ok2 := pathIndex(r, "ex")
	if !ok || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid day or exercise index")
		return
	}

	if err := s.store.RemoveExercise(r.Context(), day, ex); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateView())
}
