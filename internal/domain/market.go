package domain

import "strings"

// StatusActive es el único status de mercado elegible para el scanner.
const StatusActive = "active"

// TagFast marca los mercados que se resuelven muy rápido (mayor riesgo).
const TagFast = "fast"

// Market es un snapshot inmutable de un mercado de Simmer tal como lo devuelve la API.
type Market struct {
	ID                 string
	Question           string
	URL                string
	Status             string   // "active" | otros
	CurrentProbability *float64 // nil si la API no lo devuelve
	OpportunityScore   float64  // heurística de la API; 0 si falta
	Volume24h          *float64 // nil si falta o no es numérico
	ResolvesAt         string
	Tags               []string
}

// IsActive devuelve true si el mercado está abierto a trading.
func (m Market) IsActive() bool {
	return m.Status == StatusActive
}

// Volume devuelve el volumen de 24h, tratando un valor ausente como 0.
func (m Market) Volume() float64 {
	if m.Volume24h == nil {
		return 0
	}
	return *m.Volume24h
}

// HasTag devuelve true si el mercado tiene exactamente ese tag.
func (m Market) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsFast devuelve true si el mercado está marcado como de resolución rápida.
func (m Market) IsFast() bool {
	return m.HasTag(TagFast)
}

// TruncateQuestion devuelve la pregunta truncada a maxLen caracteres.
// Si la pregunta está vacía usa el ID del mercado como fallback.
func TruncateQuestion(question, id string, maxLen int) string {
	q := strings.TrimSpace(question)
	if q == "" {
		q = id
	}
	if maxLen > 3 && len(q) > maxLen {
		q = q[:maxLen-3] + "..."
	}
	return q
}
