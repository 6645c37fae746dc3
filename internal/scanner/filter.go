package scanner

import (
	"sort"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// FilterConfig contiene los umbrales de elegibilidad de un mercado.
type FilterConfig struct {
	// MinOpportunityScore descarta mercados con opportunity score menor.
	MinOpportunityScore float64
	// ExcludeFast si true, descarta mercados con el tag "fast".
	ExcludeFast bool
	// MinVolume24h descarta mercados con menos volumen 24h (volumen ausente = 0).
	MinVolume24h float64
}

// DefaultFilterConfig devuelve los umbrales del modo scan.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinOpportunityScore: 20,
		ExcludeFast:         true,
		MinVolume24h:        0,
	}
}

// Filter aplica los umbrales configurados sobre una lista de mercados.
type Filter struct {
	cfg FilterConfig
}

// NewFilter crea un Filter con la configuración dada.
func NewFilter(cfg FilterConfig) *Filter {
	return &Filter{cfg: cfg}
}

// Apply devuelve los mercados que pasan todos los filtros, en el orden de entrada.
func (f *Filter) Apply(markets []domain.Market) []domain.Market {
	result := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if f.passes(m) {
			result = append(result, m)
		}
	}
	return result
}

// passes devuelve true si el mercado supera todos los criterios.
func (f *Filter) passes(m domain.Market) bool {
	if !m.IsActive() {
		return false
	}
	if m.OpportunityScore < f.cfg.MinOpportunityScore {
		return false
	}
	if f.cfg.ExcludeFast && m.IsFast() {
		return false
	}
	if m.Volume() < f.cfg.MinVolume24h {
		return false
	}
	return true
}

// Rank ordena los mercados por domain.RankScore descendente.
// El orden es estable: los empates conservan el orden de entrada.
func Rank(markets []domain.Market) []domain.Market {
	ranked := make([]domain.Market, len(markets))
	copy(ranked, markets)
	sort.SliceStable(ranked, func(i, j int) bool {
		return domain.RankScore(ranked[i]) > domain.RankScore(ranked[j])
	})
	return ranked
}
