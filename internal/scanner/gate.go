package scanner

import (
	"strconv"
	"strings"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

const (
	// ReasonWideSpread bloquea cuando la API marca el mercado con spread ancho.
	ReasonWideSpread = "WIDE_SPREAD_WARNING"
	// ReasonSpreadTooHigh es el prefijo del bloqueo por spread numérico; lleva el valor observado.
	ReasonSpreadTooHigh = "SPREAD_TOO_HIGH_"

	wideSpreadMarker = "wide spread"
)

// GateResult es el veredicto del gate: proceed o blocked(reason).
type GateResult struct {
	Blocked bool
	Reason  string
}

// Gate es el chequeo de seguridad previo a operar un mercado.
// Es puro: pick y auto lo evalúan exactamente igual.
type Gate struct {
	maxSpreadPct float64
}

// NewGate crea un Gate con el spread máximo aceptable (fracción, 0.05 = 5%).
func NewGate(maxSpreadPct float64) Gate {
	return Gate{maxSpreadPct: maxSpreadPct}
}

// Evaluate decide si se puede actuar sobre un mercado dado su contexto.
// El warning de spread ancho se evalúa primero y corta la evaluación.
func (g Gate) Evaluate(c domain.MarketContext) GateResult {
	for _, w := range c.Warnings {
		if strings.Contains(strings.ToLower(w), wideSpreadMarker) {
			return GateResult{Blocked: true, Reason: ReasonWideSpread}
		}
	}
	if c.SpreadPct != nil && *c.SpreadPct > g.maxSpreadPct {
		return GateResult{
			Blocked: true,
			Reason:  ReasonSpreadTooHigh + strconv.FormatFloat(*c.SpreadPct, 'f', -1, 64),
		}
	}
	return GateResult{}
}
