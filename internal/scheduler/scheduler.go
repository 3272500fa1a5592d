// Package scheduler runs the periodic jobs and answers bot commands.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"TickerLens/internal/analyzer"
	"TickerLens/internal/content"
	"TickerLens/internal/hub"
	"TickerLens/internal/model"
	"TickerLens/internal/notifier"
	"TickerLens/internal/recorder"
	"TickerLens/internal/session"
)

const sendRetries = 3

// Sender delivers a chat message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Catalog   *content.Catalog
	Notifier  Sender
	Hub       *hub.Hub
	Recorder  recorder.Recorder
	Retention time.Duration
	Ctx       context.Context

	now    func() time.Time
	logger zerolog.Logger
}

// NewScheduler creates a new Scheduler. sender and h may be nil.
func NewScheduler(ctx context.Context, catalog *content.Catalog, sender Sender, h *hub.Hub, rec recorder.Recorder, retention time.Duration) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Catalog:   catalog,
		Notifier:  sender,
		Hub:       h,
		Recorder:  rec,
		Retention: retention,
		Ctx:       ctx,
		now:       time.Now,
		logger:    log.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterAll registers the digest and retention jobs.
func (s *Scheduler) RegisterAll(digestCron, retentionCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	if _, err := s.Cron.AddFunc(retentionCron, s.retentionTask); err != nil {
		return fmt.Errorf("register retention task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) digestTask() {
	s.logger.Info().Msg("running market digest")
	s.trySend(notifier.FormatMarketOverview(s.Catalog.Markets, s.now()))
	if s.Hub != nil {
		s.Hub.Publish(hub.NewToast(hub.LevelInfo, "Market Digest", digestSummary(s.Catalog.Markets)))
	}
}

// digestSummary counts the market rows per verdict, e.g. "3 Green, 1 Orange".
func digestSummary(rows []model.MarketRow) string {
	counts := make(map[model.Verdict]int)
	for _, r := range rows {
		counts[r.Verdict]++
	}
	var parts []string
	for _, v := range model.Verdicts {
		if n := counts[v]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, v))
		}
	}
	if len(parts) == 0 {
		return "No markets configured"
	}
	return strings.Join(parts, ", ")
}

func (s *Scheduler) retentionTask() {
	if s.Retention <= 0 {
		return
	}
	cutoff := s.now().Add(-s.Retention)
	n, err := s.Recorder.Prune(cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("prune history")
		return
	}
	s.logger.Info().Int64("deleted", n).Time("before", cutoff).Msg("history pruned")
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText()
	}
	// Group chats address commands as /cmd@BotName.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	switch name {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze TICKER"
		}
		ticker := session.NormalizeTicker(fields[1])
		rec := analyzer.Generate(ticker)
		if err := s.Recorder.RecordAnalysis(recorder.NewEntry(ticker, rec, recorder.SourceTelegram)); err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("record analysis failed")
		}
		return notifier.FormatAnalysis(ticker, rec)
	case "/market":
		return notifier.FormatMarketOverview(s.Catalog.Markets, s.now())
	case "/phases":
		return notifier.FormatPhaseGuide(s.Catalog.Phases)
	default:
		return notifier.HelpText()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}
