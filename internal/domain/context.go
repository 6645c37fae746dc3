package domain

import "strings"

// MarketContext es la anotación de riesgo de un mercado, pedida bajo demanda en cada run.
type MarketContext struct {
	Warnings         []string
	SpreadPct        *float64 // nil si la API no lo devuelve o no es finito
	TimeToResolution string
	Notes            string
}

// WarningSummary devuelve los warnings unidos por " | ", o "none" si no hay ninguno.
func (c MarketContext) WarningSummary() string {
	if len(c.Warnings) == 0 {
		return "none"
	}
	return strings.Join(c.Warnings, " | ")
}
