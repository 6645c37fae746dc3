package domain

import "time"

// Report es el único artefacto de salida de un run: se imprime y se descarta.
type Report struct {
	RunID      string             `json:"run_id"`
	CheckedAt  time.Time          `json:"checked_at"`
	Mode       Mode               `json:"mode"`
	Agent      AgentSummary       `json:"agent"`
	Config     ReportConfig       `json:"config"`
	Decision   Decision           `json:"decision"`
	Candidates []CandidateSummary `json:"candidates,omitempty"`
	Contexts   []ContextSummary   `json:"contexts,omitempty"`
	Pick       *CandidateSummary  `json:"pick,omitempty"`
	Gate       *GateSummary       `json:"context_gate,omitempty"`
	Action     *ActionSummary     `json:"action,omitempty"`
	Trade      *TradeResult       `json:"trade,omitempty"`
	Note       string             `json:"note"`
}

// AgentSummary es la parte del agente que se incluye en el reporte.
type AgentSummary struct {
	AgentID     string  `json:"agent_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Balance     float64 `json:"balance"`
	TradesCount int     `json:"trades_count"`
}

// ReportConfig es la configuración efectiva del run, tal como se usó.
type ReportConfig struct {
	Query               string  `json:"query"`
	Limit               int     `json:"limit"`
	MinOpportunityScore float64 `json:"minOpportunityScore"`
	ExcludeFast         bool    `json:"excludeFast"`
	MinVolume24h        float64 `json:"minVolume24h"`
	MaxContexts         int     `json:"maxContexts,omitempty"`
	MaxUSD              float64 `json:"maxUsd,omitempty"`
	MaxSpreadPct        float64 `json:"maxSpreadPct,omitempty"`
}

// CandidateSummary describe un mercado candidato en el reporte.
type CandidateSummary struct {
	ID                 string   `json:"id"`
	Question           string   `json:"question"`
	URL                string   `json:"url"`
	CurrentProbability *float64 `json:"current_probability"`
	OpportunityScore   float64  `json:"opportunity_score"`
	Volume24h          *float64 `json:"volume_24h"`
	RankScore          float64  `json:"rank_score"`
	ResolvesAt         string   `json:"resolves_at"`
	Tags               []string `json:"tags"`
}

// ContextSummary es un candidato enriquecido con su contexto de riesgo (modo scan).
type ContextSummary struct {
	ID               string   `json:"id"`
	Question         string   `json:"question"`
	URL              string   `json:"url"`
	OpportunityScore float64  `json:"opportunity_score"`
	Warnings         []string `json:"warnings"`
	TimeToResolution *string  `json:"time_to_resolution"`
	Notes            *string  `json:"notes"`
}

// GateSummary es el resultado del gate sobre el pick.
type GateSummary struct {
	SpreadPct      *float64 `json:"spread_pct"`
	MaxSpreadPct   float64  `json:"max_spread_pct"`
	Warnings       []string `json:"warnings"`
	WarningSummary string   `json:"warning_summary"`
	BlockReason    *string  `json:"block_reason"`
}

// ActionSummary es la guía para el humano (modos pick y auto bloqueado).
type ActionSummary struct {
	MaxUSD   float64 `json:"max_usd"`
	Guidance string  `json:"guidance"`
}

// NewCandidateSummary construye el resumen de reporte de un mercado.
func NewCandidateSummary(m Market) CandidateSummary {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return CandidateSummary{
		ID:                 m.ID,
		Question:           m.Question,
		URL:                m.URL,
		CurrentProbability: m.CurrentProbability,
		OpportunityScore:   m.OpportunityScore,
		Volume24h:          m.Volume24h,
		RankScore:          RankScore(m),
		ResolvesAt:         m.ResolvesAt,
		Tags:               tags,
	}
}

// NewAgentSummary construye el resumen de reporte del agente.
func NewAgentSummary(a Agent) AgentSummary {
	return AgentSummary{
		AgentID:     a.ID,
		Name:        a.Name,
		Status:      a.Status,
		Balance:     a.Balance,
		TradesCount: a.TradesCount,
	}
}
