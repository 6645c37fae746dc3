package domain

import "fmt"

// Mode selecciona qué hace una invocación con el pipeline común.
type Mode string

const (
	ModeScan     Mode = "scan"     // solo señales, enriquece top-K, nunca opera
	ModePick     Mode = "pick"     // elige un mercado y da guía, nunca opera
	ModeAuto     Mode = "auto"     // elige un mercado y opera una vez si pasa el gate
	ModePoll     Mode = "poll"     // repite scan a intervalo fijo
	ModeBriefing Mode = "briefing" // imprime el briefing del agente
)

// ParseMode valida un modo recibido por flag.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeScan, ModePick, ModeAuto, ModePoll, ModeBriefing:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (scan|pick|auto|poll|briefing)", s)
	}
}

// Trades devuelve true si el modo puede colocar trades.
func (m Mode) Trades() bool {
	return m == ModeAuto
}

// Decision es el resultado final de un run.
type Decision string

const (
	DecisionNoCandidate Decision = "NO_CANDIDATE"
	DecisionScanned     Decision = "SCANNED"
	DecisionReview      Decision = "REVIEW"
	DecisionBlocked     Decision = "BLOCKED"
	DecisionTraded      Decision = "TRADED"
	DecisionRejected    Decision = "TRADE_REJECTED"
)
