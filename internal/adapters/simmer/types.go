package simmer

import (
	"bytes"
	"encoding/json"
)

// Raw DTOs of the Simmer SDK API. Only used inside this package;
// conversion to domain entities lives in mapping.go.
//
// The API is loosely typed: ids come as numbers or strings, tags as a
// JSON-encoded string or a native list, numeric fields may be null. Fields
// that vary are kept as json.RawMessage and normalised during mapping.

// agentResponse is the body of GET /api/sdk/agents/me.
type agentResponse struct {
	AgentID     flexString      `json:"agent_id"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	Balance     json.RawMessage `json:"balance"`
	TradesCount json.RawMessage `json:"trades_count"`
}

// marketsResponse is the body of GET /api/sdk/markets.
type marketsResponse struct {
	Markets []marketDTO `json:"markets"`
}

type marketDTO struct {
	ID                 flexString      `json:"id"`
	Question           string          `json:"question"`
	URL                string          `json:"url"`
	Status             string          `json:"status"`
	CurrentProbability json.RawMessage `json:"current_probability"`
	OpportunityScore   json.RawMessage `json:"opportunity_score"`
	Volume24h          json.RawMessage `json:"volume_24h"`
	ResolvesAt         flexString      `json:"resolves_at"`
	Tags               json.RawMessage `json:"tags"`
}

// contextResponse is the body of GET /api/sdk/context/{id}.
type contextResponse struct {
	Warnings         []json.RawMessage `json:"warnings"`
	Slippage         *slippageDTO      `json:"slippage"`
	TimeToResolution json.RawMessage   `json:"time_to_resolution"`
	Notes            json.RawMessage   `json:"notes"`
}

type slippageDTO struct {
	SpreadPct json.RawMessage `json:"spread_pct"`
}

// tradeResponse is the body returned by POST /api/sdk/trade.
type tradeResponse struct {
	Success      bool            `json:"success"`
	TradeID      flexString      `json:"trade_id"`
	MarketID     flexString      `json:"market_id"`
	Side         string          `json:"side"`
	SharesBought json.RawMessage `json:"shares_bought"`
	Cost         json.RawMessage `json:"cost"`
	NewPrice     json.RawMessage `json:"new_price"`
	Balance      json.RawMessage `json:"balance"`
	Error        string          `json:"error"`
}

// flexString accepts a JSON string, a JSON number or null.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}
