package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"TickerLens/internal/analyzer"
	"TickerLens/internal/display"
	"TickerLens/internal/hub"
	"TickerLens/internal/model"
	"TickerLens/internal/recorder"
	"TickerLens/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePage() (*template.Template, error) {
	t, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"tone": display.Tone,
		"icon": display.VerdictIcon,
	}).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return t, nil
}

type pageData struct {
	State   session.State
	Panel   []display.Field
	Toast   *hub.Toast
	Markets []display.MarketView
	Phases  []model.PhaseGuideEntry
}

func (s *DashboardServer) render(w http.ResponseWriter, status int, st session.State, toast *hub.Toast) {
	data := pageData{
		State:   st,
		Toast:   toast,
		Markets: display.Markets(s.catalog.Markets),
		Phases:  s.catalog.Phases,
	}
	if st.Record != nil {
		data.Panel = display.MetricsPanel(st.Record.Metrics)
	}
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error().Err(err).Msg("render dashboard")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *DashboardServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, session.Idle(), nil)
}

func (s *DashboardServer) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	st := session.Idle().Transition(session.Submit{Ticker: r.PostForm.Get("ticker")})
	if st.Status == session.StatusInvalid {
		t := hub.NewToast(hub.LevelDestructive, blankTitle, blankDetail)
		s.render(w, http.StatusOK, st, &t)
		return
	}
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	if err := s.simulateLatency(r.Context()); err != nil {
		s.logger.Debug().Err(err).Str("ticker", st.Ticker).Msg("analysis cancelled")
		return
	}

	rec := analyzer.Generate(st.Ticker)
	st = st.Transition(session.Success{Record: rec})
	s.record(st.Ticker, rec, recorder.SourceWeb)

	t := hub.NewToast(hub.LevelSuccess, completeTitle, completeDetail(st.Ticker, rec.Verdict))
	s.render(w, http.StatusOK, st, &t)
}
