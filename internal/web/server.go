// Package web serves the dashboard page, its JSON API and the websocket feed.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"TickerLens/internal/analyzer"
	"TickerLens/internal/content"
	"TickerLens/internal/display"
	"TickerLens/internal/hub"
	"TickerLens/internal/model"
	"TickerLens/internal/recorder"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// Toast texts shown after an analysis.
const (
	completeTitle = "Analysis Complete"
	blankTitle    = "Enter a ticker symbol"
	blankDetail   = "Please enter a valid stock ticker to analyze."
)

func completeDetail(ticker string, v model.Verdict) string {
	return fmt.Sprintf("%s analysis ready with %s verdict.", ticker, v)
}

// Options tunes the analysis endpoints.
type Options struct {
	Latency    time.Duration
	RatePerSec float64
	Burst      int
}

// DashboardServer wires the analyzer, the content catalog and the history
// store to HTTP.
type DashboardServer struct {
	catalog  *content.Catalog
	recorder recorder.Recorder
	hub      *hub.Hub
	limiter  *rate.Limiter
	latency  time.Duration
	page     *template.Template
	logger   zerolog.Logger
}

// NewDashboardServer creates a DashboardServer. rec and h may be nil.
func NewDashboardServer(opts Options, catalog *content.Catalog, rec recorder.Recorder, h *hub.Hub) (*DashboardServer, error) {
	page, err := parsePage()
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = content.Default()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &DashboardServer{
		catalog:  catalog,
		recorder: rec,
		hub:      h,
		limiter:  rate.NewLimiter(limit, burst),
		latency:  opts.Latency,
		page:     page,
		logger:   log.With().Str("component", "web").Logger(),
	}, nil
}

// RegisterRoutes registers all routes on the given mux.
func (s *DashboardServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyzeForm)
	mux.HandleFunc("GET /api/analysis/{ticker}", s.handleAnalysis)
	mux.HandleFunc("GET /api/market", s.handleMarket)
	mux.HandleFunc("GET /api/phases", s.handlePhases)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.hub != nil {
		mux.HandleFunc("GET /ws", s.hub.ServeWS(s.newWSSession))
	}
}

// Handler returns an http.Handler with CORS middleware.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *DashboardServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("encoding JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// simulateLatency blocks for the configured latency or until ctx is done.
func (s *DashboardServer) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// analysisEvent tells every dashboard that an analysis was served.
type analysisEvent struct {
	Type  string         `json:"type"`
	Entry recorder.Entry `json:"entry"`
}

// record stores a history entry and announces it on the hub. Recorder
// failures are logged and never surface.
func (s *DashboardServer) record(ticker string, rec model.AnalysisRecord, src recorder.Source) {
	e := recorder.NewEntry(ticker, rec, src)
	if err := s.recorder.RecordAnalysis(e); err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("record analysis failed")
	}
	if s.hub != nil {
		s.hub.Broadcast(analysisEvent{Type: "analysis", Entry: *e})
	}
}

// AnalysisResponse is the JSON form of one analysis.
type AnalysisResponse struct {
	Ticker string               `json:"ticker"`
	Record model.AnalysisRecord `json:"record"`
	Tone   string               `json:"tone"`
	Icon   string               `json:"icon"`
	Panel  []display.Field      `json:"panel"`
}

func newAnalysisResponse(ticker string, rec model.AnalysisRecord) AnalysisResponse {
	return AnalysisResponse{
		Ticker: ticker,
		Record: rec,
		Tone:   display.Tone(rec.Verdict),
		Icon:   display.VerdictIcon(rec.Verdict),
		Panel:  display.MetricsPanel(rec.Metrics),
	}
}

func (s *DashboardServer) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, blankDetail)
		return
	}
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	rec := analyzer.Generate(ticker)
	s.record(ticker, rec, recorder.SourceAPI)
	s.writeJSON(w, newAnalysisResponse(ticker, rec))
}

func (s *DashboardServer) handleMarket(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"rows":      s.catalog.Markets,
		"formatted": display.Markets(s.catalog.Markets),
	})
}

func (s *DashboardServer) handlePhases(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.catalog.Phases)
}

func (s *DashboardServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	entries, err := s.recorder.Recent(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("load history")
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	s.writeJSON(w, entries)
}

func (s *DashboardServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
