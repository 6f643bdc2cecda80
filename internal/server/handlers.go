package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KyleKincer/tableyeah/pkg/cache"
	tyerrors "github.com/KyleKincer/tableyeah/pkg/errors"
	"github.com/KyleKincer/tableyeah/pkg/observability"
	"github.com/KyleKincer/tableyeah/pkg/store"
	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

// layoutResponse is the body returned by the layout endpoints. Dropped
// reservations are reported alongside the layout; they are warnings, not
// failures.
type layoutResponse struct {
	Layout  *timeline.Layout   `json:"layout"`
	Dropped []timeline.Dropped `json:"dropped,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    tyerrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Store access goes through these wrappers so registered hooks see
// every read and write with its timing.

func (s *Server) storeGet(ctx context.Context, date string) (timeline.DaySheet, error) {
	start := time.Now()
	sheet, err := s.store.Get(ctx, date)
	observability.Store().OnStoreRead(ctx, date, time.Since(start), err)
	return sheet, err
}

func (s *Server) storePut(ctx context.Context, sheet timeline.DaySheet) error {
	start := time.Now()
	err := s.store.Put(ctx, sheet)
	observability.Store().OnStoreWrite(ctx, sheet.Date, time.Since(start), err)
	return err
}

func (s *Server) storeDelete(ctx context.Context, date string) error {
	start := time.Now()
	err := s.store.Delete(ctx, date)
	observability.Store().OnStoreWrite(ctx, date, time.Since(start), err)
	return err
}

// handleComputeLayout computes a layout from a posted day sheet.
func (s *Server) handleComputeLayout(w http.ResponseWriter, r *http.Request) {
	var sheet timeline.DaySheet
	if err := json.NewDecoder(r.Body).Decode(&sheet); err != nil {
		s.writeError(w, http.StatusBadRequest,
			tyerrors.Wrap(tyerrors.ErrCodeInvalidDaySheet, err, "decode day sheet"))
		return
	}
	s.respondLayout(w, r, sheet)
}

// handleDaySheetLayout computes the layout for a stored day sheet.
func (s *Server) handleDaySheetLayout(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	sheet, err := s.storeGet(r.Context(), date)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound,
			tyerrors.New(tyerrors.ErrCodeDaySheetNotFound, "no day sheet for %s", date))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			tyerrors.Wrap(tyerrors.ErrCodeStore, err, "load day sheet %s", date))
		return
	}
	s.respondLayout(w, r, sheet)
}

// respondLayout serves a layout from cache when possible, otherwise
// computes and caches it. Cache errors are logged and ignored; the
// layout pass is cheap and pure.
func (s *Server) respondLayout(w http.ResponseWriter, r *http.Request, sheet timeline.DaySheet) {
	ctx := r.Context()
	key := cache.LayoutKey(sheet, s.policy, s.window)

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("layout cache get failed", "err", err)
	} else if ok {
		observability.Cache().OnCacheHit(ctx, "layout")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Layout().OnBuildStart(ctx, sheet.Date, len(sheet.Reservations))
	layout, dropped := timeline.Build(sheet, s.policy, s.window)
	observability.Layout().OnBuildComplete(ctx, sheet.Date, len(layout.Rows), len(dropped), time.Since(start))
	for _, d := range dropped {
		s.logger.Warn("excluded from layout", "reservation", d.ReservationID, "reason", d.Reason)
		observability.Layout().OnReservationDropped(ctx, d.ReservationID, d.Reason)
	}

	resp := layoutResponse{Layout: layout, Dropped: dropped}
	data, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			tyerrors.Wrap(tyerrors.ErrCodeInternal, err, "encode layout"))
		return
	}

	if err := s.cache.Set(ctx, key, data, cache.DefaultLayoutTTL); err != nil {
		s.logger.Warn("layout cache set failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleGetDaySheet(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	sheet, err := s.storeGet(r.Context(), date)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound,
			tyerrors.New(tyerrors.ErrCodeDaySheetNotFound, "no day sheet for %s", date))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			tyerrors.Wrap(tyerrors.ErrCodeStore, err, "load day sheet %s", date))
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) handlePutDaySheet(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var sheet timeline.DaySheet
	if err := json.NewDecoder(r.Body).Decode(&sheet); err != nil {
		s.writeError(w, http.StatusBadRequest,
			tyerrors.Wrap(tyerrors.ErrCodeInvalidDaySheet, err, "decode day sheet"))
		return
	}
	if sheet.Date == "" {
		sheet.Date = date
	}
	if sheet.Date != date {
		s.writeError(w, http.StatusBadRequest,
			tyerrors.New(tyerrors.ErrCodeInvalidDate, "body date %q does not match path date %q", sheet.Date, date))
		return
	}

	if err := s.storePut(r.Context(), sheet); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			tyerrors.Wrap(tyerrors.ErrCodeStore, err, "save day sheet %s", date))
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteDaySheet(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := s.storeDelete(r.Context(), date); err != nil {
		s.writeError(w, http.StatusInternalServerError,
			tyerrors.Wrap(tyerrors.ErrCodeStore, err, "delete day sheet %s", date))
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err *tyerrors.Error) {
	s.logger.Error(err.Message, "code", err.Code, "cause", err.Cause)
	writeJSON(w, status, errorResponse{Code: err.Code, Message: err.Message})
}
