package simmer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

func mapAgent(r agentResponse) domain.Agent {
	a := domain.Agent{
		ID:     string(r.AgentID),
		Name:   r.Name,
		Status: r.Status,
	}
	if v, ok := jsonNumber(r.Balance); ok {
		a.Balance = v
	}
	if v, ok := jsonNumber(r.TradesCount); ok {
		a.TradesCount = int(v)
	}
	return a
}

func mapMarkets(raw []marketDTO) []domain.Market {
	markets := make([]domain.Market, 0, len(raw))
	for _, r := range raw {
		markets = append(markets, mapMarket(r))
	}
	return markets
}

func mapMarket(r marketDTO) domain.Market {
	m := domain.Market{
		ID:         string(r.ID),
		Question:   r.Question,
		URL:        r.URL,
		Status:     r.Status,
		ResolvesAt: string(r.ResolvesAt),
	}
	if v, ok := jsonNumber(r.CurrentProbability); ok {
		m.CurrentProbability = &v
	}
	if v, ok := jsonNumber(r.OpportunityScore); ok {
		m.OpportunityScore = v
	}
	// el volumen solo cuenta si la API lo manda como número
	if v, ok := jsonNumber(r.Volume24h); ok {
		m.Volume24h = &v
	}

	tags, err := parseTags(r.Tags)
	if err != nil {
		slog.Warn("simmer: unparseable market tags, treating as empty",
			"market_id", m.ID,
			"tags", string(r.Tags),
			"err", err,
		)
	}
	m.Tags = tags
	return m
}

func mapContext(r contextResponse) domain.MarketContext {
	c := domain.MarketContext{
		Warnings: make([]string, 0, len(r.Warnings)),
	}
	for _, w := range r.Warnings {
		if s, ok := text(w); ok {
			c.Warnings = append(c.Warnings, s)
		}
	}
	if r.Slippage != nil {
		if v, ok := numericValue(r.Slippage.SpreadPct); ok {
			c.SpreadPct = &v
		}
	}
	c.TimeToResolution, _ = text(r.TimeToResolution)
	c.Notes, _ = text(r.Notes)
	return c
}

func mapTrade(r tradeResponse) domain.TradeResult {
	t := domain.TradeResult{
		Success:  r.Success,
		TradeID:  string(r.TradeID),
		MarketID: string(r.MarketID),
		Side:     r.Side,
		Error:    r.Error,
	}
	t.SharesBought, _ = jsonNumber(r.SharesBought)
	t.Cost, _ = jsonNumber(r.Cost)
	if v, ok := jsonNumber(r.NewPrice); ok {
		t.NewPrice = &v
	}
	if v, ok := jsonNumber(r.Balance); ok {
		t.Balance = &v
	}
	return t
}

// parseTags acepta una lista nativa o una lista serializada como string JSON.
// Ante cualquier error devuelve una lista vacía junto con el error.
func parseTags(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}, nil
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return []string{}, fmt.Errorf("parse tags: %w", err)
		}
		if strings.TrimSpace(encoded) == "" {
			return []string{}, nil
		}
		raw = json.RawMessage(encoded)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}, fmt.Errorf("parse tags: %w", err)
	}
	tags := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := text(it); ok {
			tags = append(tags, s)
		}
	}
	return tags, nil
}

// jsonNumber devuelve el valor solo si raw es un literal numérico JSON.
func jsonNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !isNumberStart(raw[0]) {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// numericValue acepta un número JSON o un string numérico. Valores no finitos se descartan.
func numericValue(raw json.RawMessage) (float64, bool) {
	if v, ok := jsonNumber(raw); ok {
		return v, true
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return 0, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// text convierte un valor JSON a texto: strings tal cual, null/ausente como no presente,
// cualquier otro valor como su representación JSON compacta.
func text(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}

func isNumberStart(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9')
}
