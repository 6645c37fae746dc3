package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/simmerbot/internal/domain"
	"github.com/alejandrodnm/simmerbot/internal/ports"
)

const (
	noCandidateNote = "No market passed filters. Consider lowering MIN_OPPORTUNITY_SCORE or MIN_VOLUME_24H, or setting EXCLUDE_FAST=false."
	scanNote        = "Signals-only scan. No trades executed."
	pickNote        = "This tool does NOT execute trades. It selects the single best candidate to review and enforces conservative gating."
	autoBlockedNote = "Auto-trade did not trade due to safety gates."
	autoTradedNote  = "Auto-trade executed a $SIM trade (venue: simmer)."
	autoRejectNote  = "Auto-trade submitted one trade; the API did not confirm it."

	guidanceWideSpread = "SKIP: market flagged wide spread. Pick another or wait."
	guidanceGateFailed = "SKIP: market failed spread/warning gates."
	guidanceReview     = "REVIEW: if you choose to trade, keep size <= max_usd and verify resolution criteria + order book in UI."
)

// Config contiene la configuración del pipeline. Es inmutable durante el run.
type Config struct {
	Mode           domain.Mode
	Query          string
	Limit          int
	Filter         FilterConfig
	MaxContexts    int     // modo scan: cuántos candidatos se enriquecen con contexto
	ReportLimit    int     // modo scan: cuántos candidatos se reportan
	ContextWorkers int     // modo scan: requests de contexto en paralelo; 1 = secuencial
	MaxTradeUSD    float64 // tamaño fijo del trade en modo auto
	MaxSpreadPct   float64
	Venue          string
	ScanInterval   time.Duration // solo poll
}

// DefaultConfig devuelve los valores por defecto de cada modo.
func DefaultConfig(mode domain.Mode) Config {
	cfg := Config{
		Mode:           mode,
		Query:          "bitcoin",
		Limit:          25,
		Filter:         DefaultFilterConfig(),
		MaxContexts:    2,
		ReportLimit:    10,
		ContextWorkers: 1,
		MaxSpreadPct:   0.05,
		Venue:          domain.VenueSimmer,
		ScanInterval:   5 * time.Minute,
	}
	switch mode {
	case domain.ModePick:
		cfg.Limit = 100
		cfg.Filter.MinOpportunityScore = 10
		cfg.Filter.MinVolume24h = 500
		cfg.MaxTradeUSD = 2
	case domain.ModeAuto:
		cfg.Limit = 100
		cfg.Filter.MinOpportunityScore = 10
		cfg.Filter.MinVolume24h = 500
		cfg.MaxTradeUSD = 10
	}
	return cfg
}

// SleepFunc espera d o hasta que ctx se cancele.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Scanner es el pipeline común: identidad → mercados → filtro/ranking →
// contexto → reporte o trade. Run lo repite a intervalo fijo (poll driver).
type Scanner struct {
	cfg      Config
	agents   ports.AgentProvider
	markets  ports.MarketProvider
	contexts ports.ContextProvider
	executor ports.TradeExecutor
	notifier ports.Notifier
	filter   *Filter
	gate     Gate

	now   func() time.Time
	sleep SleepFunc
	runID func() string
}

// New crea un Scanner con todas las dependencias inyectadas.
// executor puede ser nil salvo en modo auto; notifier solo lo usa Run.
func New(
	cfg Config,
	agents ports.AgentProvider,
	markets ports.MarketProvider,
	contexts ports.ContextProvider,
	executor ports.TradeExecutor,
	notifier ports.Notifier,
) *Scanner {
	return &Scanner{
		cfg:      cfg,
		agents:   agents,
		markets:  markets,
		contexts: contexts,
		executor: executor,
		notifier: notifier,
		filter:   NewFilter(cfg.Filter),
		gate:     NewGate(cfg.MaxSpreadPct),
		now:      time.Now,
		sleep:    sleepContext,
		runID:    func() string { return uuid.New().String() },
	}
}

// SetClock reemplaza el reloj y la espera (tests).
func (s *Scanner) SetClock(now func() time.Time, sleep SleepFunc) {
	s.now = now
	s.sleep = sleep
}

// SetRunIDGenerator reemplaza el generador de run ids (tests).
func (s *Scanner) SetRunIDGenerator(fn func() string) {
	s.runID = fn
}

// RunOnce ejecuta exactamente un run del pipeline y devuelve su reporte.
func (s *Scanner) RunOnce(ctx context.Context) (domain.Report, error) {
	checkedAt := s.now().UTC()

	agent, err := s.agents.GetIdentity(ctx)
	if err != nil {
		return domain.Report{}, fmt.Errorf("scanner.RunOnce: identity: %w", err)
	}

	markets, err := s.markets.ListMarkets(ctx, ports.MarketQuery{
		Query:  s.cfg.Query,
		Status: domain.StatusActive,
		Limit:  s.cfg.Limit,
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("scanner.RunOnce: list markets: %w", err)
	}

	ranked := Rank(s.filter.Apply(markets))
	slog.Debug("markets filtered",
		"mode", s.cfg.Mode,
		"fetched", len(markets),
		"candidates", len(ranked),
	)

	report := domain.Report{
		RunID:     s.runID(),
		CheckedAt: checkedAt,
		Mode:      s.cfg.Mode,
		Agent:     domain.NewAgentSummary(agent),
		Config:    s.reportConfig(),
	}

	if len(ranked) == 0 {
		report.Decision = domain.DecisionNoCandidate
		report.Note = noCandidateNote
		return report, nil
	}

	switch s.cfg.Mode {
	case domain.ModePick, domain.ModeAuto:
		return s.decide(ctx, report, ranked[0])
	default:
		return s.scan(ctx, report, ranked)
	}
}

// scan enriquece los top-K con contexto y reporta los candidatos. Nunca opera.
func (s *Scanner) scan(ctx context.Context, report domain.Report, ranked []domain.Market) (domain.Report, error) {
	top := ranked[:clamp(s.cfg.MaxContexts, len(ranked))]
	fetched, err := fetchContextsConcurrent(ctx, s.contexts, top, s.cfg.ContextWorkers)
	if err != nil {
		return domain.Report{}, fmt.Errorf("scanner.scan: %w", err)
	}
	contexts := make([]domain.ContextSummary, 0, len(top))
	for i, m := range top {
		contexts = append(contexts, contextSummary(m, fetched[i]))
	}

	limit := clamp(s.cfg.ReportLimit, len(ranked))
	candidates := make([]domain.CandidateSummary, 0, limit)
	for _, m := range ranked[:limit] {
		candidates = append(candidates, domain.NewCandidateSummary(m))
	}

	report.Decision = domain.DecisionScanned
	report.Candidates = candidates
	report.Contexts = contexts
	report.Note = scanNote
	return report, nil
}

// decide evalúa el gate sobre el pick y, en modo auto, opera como mucho una vez.
func (s *Scanner) decide(ctx context.Context, report domain.Report, pick domain.Market) (domain.Report, error) {
	mctx, err := s.contexts.GetContext(ctx, pick.ID)
	if err != nil {
		return domain.Report{}, fmt.Errorf("scanner.decide: context %s: %w", pick.ID, err)
	}

	verdict := s.gate.Evaluate(mctx)
	summary := domain.NewCandidateSummary(pick)
	report.Pick = &summary
	report.Gate = s.gateSummary(mctx, verdict)

	slog.Info("pick evaluated",
		"market_id", pick.ID,
		"rank_score", summary.RankScore,
		"blocked", verdict.Blocked,
		"reason", verdict.Reason,
	)

	if s.cfg.Mode != domain.ModeAuto {
		report.Action = &domain.ActionSummary{MaxUSD: s.cfg.MaxTradeUSD, Guidance: guidanceFor(verdict)}
		report.Decision = domain.DecisionReview
		if verdict.Blocked {
			report.Decision = domain.DecisionBlocked
		}
		report.Note = pickNote
		return report, nil
	}

	if verdict.Blocked {
		report.Action = &domain.ActionSummary{MaxUSD: s.cfg.MaxTradeUSD, Guidance: guidanceGateFailed}
		report.Decision = domain.DecisionBlocked
		report.Note = autoBlockedNote
		return report, nil
	}

	if s.executor == nil {
		return domain.Report{}, errors.New("scanner.decide: auto mode requires a trade executor")
	}

	trade, err := s.executor.PlaceTrade(ctx, domain.TradeRequest{
		MarketID: pick.ID,
		Side:     domain.SideYes,
		Amount:   s.cfg.MaxTradeUSD,
		Venue:    s.cfg.Venue,
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("scanner.decide: place trade %s: %w", pick.ID, err)
	}

	report.Trade = &trade
	if trade.Success {
		report.Decision = domain.DecisionTraded
		report.Note = autoTradedNote
	} else {
		report.Decision = domain.DecisionRejected
		report.Note = autoRejectNote
	}
	return report, nil
}

func (s *Scanner) gateSummary(c domain.MarketContext, verdict GateResult) *domain.GateSummary {
	warnings := c.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	g := &domain.GateSummary{
		SpreadPct:      c.SpreadPct,
		MaxSpreadPct:   s.cfg.MaxSpreadPct,
		Warnings:       warnings,
		WarningSummary: c.WarningSummary(),
	}
	if verdict.Blocked {
		reason := verdict.Reason
		g.BlockReason = &reason
	}
	return g
}

func (s *Scanner) reportConfig() domain.ReportConfig {
	rc := domain.ReportConfig{
		Query:               s.cfg.Query,
		Limit:               s.cfg.Limit,
		MinOpportunityScore: s.cfg.Filter.MinOpportunityScore,
		ExcludeFast:         s.cfg.Filter.ExcludeFast,
		MinVolume24h:        s.cfg.Filter.MinVolume24h,
	}
	switch s.cfg.Mode {
	case domain.ModePick, domain.ModeAuto:
		rc.MaxUSD = s.cfg.MaxTradeUSD
		rc.MaxSpreadPct = s.cfg.MaxSpreadPct
	default:
		rc.MaxContexts = s.cfg.MaxContexts
	}
	return rc
}

func guidanceFor(verdict GateResult) string {
	switch {
	case !verdict.Blocked:
		return guidanceReview
	case verdict.Reason == ReasonWideSpread:
		return guidanceWideSpread
	default:
		return guidanceGateFailed
	}
}

func contextSummary(m domain.Market, c domain.MarketContext) domain.ContextSummary {
	cs := domain.ContextSummary{
		ID:               m.ID,
		Question:         m.Question,
		URL:              m.URL,
		OpportunityScore: m.OpportunityScore,
		Warnings:         c.Warnings,
	}
	if c.TimeToResolution != "" {
		ttr := c.TimeToResolution
		cs.TimeToResolution = &ttr
	}
	if c.Notes != "" {
		notes := c.Notes
		cs.Notes = &notes
	}
	return cs
}

// clamp acota n al rango [0, size].
func clamp(n, size int) int {
	return max(0, min(n, size))
}
