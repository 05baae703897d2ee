// Package api serves the agenda over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"barberpanel/internal/agenda"
	"barberpanel/internal/export"
	"barberpanel/internal/gesture"
	"barberpanel/internal/store"
	"barberpanel/internal/timewindow"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HTTPServer exposes the agenda service.
type HTTPServer struct {
	service *AgendaService
	store   Store
	cache   WindowsCache
	limiter *rate.Limiter
	logger  zerolog.Logger
	router  *mux.Router
}

// NewHTTPServer wires the routes. rps <= 0 disables rate limiting.
func NewHTTPServer(service *AgendaService, st Store, cache WindowsCache, rps float64, burst int, logger zerolog.Logger) *HTTPServer {
	s := &HTTPServer{
		service: service,
		store:   st,
		cache:   cache,
		logger:  logger.With().Str("component", "http").Logger(),
		router:  mux.NewRouter(),
	}
	if rps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	s.routes()
	return s
}

func (s *HTTPServer) routes() {
	r := s.router
	r.Use(s.instrument)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1/tenants/{tenant}").Subrouter()
	api.Use(s.rateLimit)
	api.HandleFunc("/agenda", s.handleAgenda).Methods(http.MethodGet)
	api.HandleFunc("/agenda/export", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/move", s.handleMove).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/resize", s.handleResize).Methods(http.MethodPost)
}

// ServeHTTP implements http.Handler.
func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Server returns an http.Server for addr.
func (s *HTTPServer) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// AgendaResponse is the day view.
type AgendaResponse struct {
	Timeline    agenda.Timeline         `json:"timeline"`
	Diagnostics []timewindow.Diagnostic `json:"diagnostics,omitempty"`
}

// MoveRequest is the body of POST .../bookings/{id}/move.
type MoveRequest struct {
	StaffID string `json:"staff_id,omitempty"`
	Start   string `json:"start"` // HH:mm
}

// ResizeRequest is the body of POST .../bookings/{id}/resize.
type ResizeRequest struct {
	Edge string `json:"edge"` // start or end
	Time string `json:"time"` // HH:mm
}

type rejectedResponse struct {
	Error  string         `json:"error"`
	Result gesture.Result `json:"result"`
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.PingContext(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleAgenda returns the laid out day.
// GET /api/v1/tenants/{tenant}/agenda?date=YYYY-MM-DD
func (s *HTTPServer) handleAgenda(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	tl, diags, err := s.service.Timeline(r.Context(), mux.Vars(r)["tenant"], date)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AgendaResponse{Timeline: tl, Diagnostics: diags})
}

// handleExport returns the day as a workbook.
// GET /api/v1/tenants/{tenant}/agenda/export?date=YYYY-MM-DD
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDate(w, r)
	if !ok {
		return
	}

	tl, _, err := s.service.Timeline(r.Context(), mux.Vars(r)["tenant"], date)
	if err != nil {
		s.fail(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDay(&buf, tl); err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("export agenda")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="agenda_%s.xlsx"`, date))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleMove moves a booking using the drag commit rules.
// POST /api/v1/tenants/{tenant}/bookings/{id}/move
func (s *HTTPServer) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Start == "" {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}

	vars := mux.Vars(r)
	change, err := s.service.Move(r.Context(), vars["tenant"], vars["id"], req.StaffID, req.Start)
	s.writeChange(w, change, err)
}

// handleResize moves one edge of a booking using the resize commit rules.
// POST /api/v1/tenants/{tenant}/bookings/{id}/resize
func (s *HTTPServer) handleResize(w http.ResponseWriter, r *http.Request) {
	var req ResizeRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Time == "" {
		writeError(w, http.StatusBadRequest, "time is required")
		return
	}

	vars := mux.Vars(r)
	change, err := s.service.Resize(r.Context(), vars["tenant"], vars["id"], gesture.Edge(req.Edge), req.Time)
	s.writeChange(w, change, err)
}

func (s *HTTPServer) writeChange(w http.ResponseWriter, change *Change, err error) {
	if errors.Is(err, ErrRejected) && change != nil {
		writeJSON(w, http.StatusConflict, rejectedResponse{Error: err.Error(), Result: change.Result})
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// fail maps domain errors to status codes.
func (s *HTTPServer) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, agenda.ErrUnknownBooking):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gesture.ErrProtectedBooking):
		writeError(w, http.StatusLocked, err.Error())
	case errors.Is(err, store.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, timewindow.ErrInvalidClock),
		errors.Is(err, timewindow.ErrInvalidDate),
		errors.Is(err, timewindow.ErrInvalidTimezone),
		errors.Is(err, ErrInvalidEdge):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func requireDate(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return "", false
	}
	if _, err := time.Parse(timewindow.DateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return "", false
	}
	return date, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
