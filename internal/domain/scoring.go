package domain

import "math"

const (
	opportunityWeight = 10
	volumeWeight      = 5
)

// RankScore calcula el score de ranking de un mercado.
//
// Fórmula: S = o × 10 + log10(1 + v) × 5
//   - o: opportunity score devuelto por la API
//   - v: volumen 24h (0 si falta)
//
// El opportunity score domina; el volumen desempata entre mercados parecidos.
func RankScore(m Market) float64 {
	return m.OpportunityScore*opportunityWeight + math.Log10(1+m.Volume())*volumeWeight
}
