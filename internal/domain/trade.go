package domain

const (
	// SideYes es el único lado que opera el modo auto.
	SideYes = "yes"
	// VenueSimmer es el venue de $SIM (dinero virtual).
	VenueSimmer = "simmer"
)

// TradeRequest es la orden enviada al endpoint de trading.
type TradeRequest struct {
	MarketID string  `json:"market_id"`
	Side     string  `json:"side"`
	Amount   float64 `json:"amount"`
	Venue    string  `json:"venue"`
}

// TradeResult es la confirmación devuelta por la API tras ejecutar un trade.
type TradeResult struct {
	Success      bool     `json:"success"`
	TradeID      string   `json:"trade_id,omitempty"`
	MarketID     string   `json:"market_id,omitempty"`
	Side         string   `json:"side,omitempty"`
	SharesBought float64  `json:"shares_bought"`
	Cost         float64  `json:"cost"`
	NewPrice     *float64 `json:"new_price,omitempty"`
	Balance      *float64 `json:"balance,omitempty"`
	Error        string   `json:"error,omitempty"`
}
