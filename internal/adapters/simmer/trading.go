package simmer

// trading.go: trade placement on the Simmer venue.
//
// Implements ports.TradeExecutor. This is the only mutating endpoint the
// client exposes; callers are responsible for invoking it at most once
// per decision.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// PlaceTrade submits a single market order and returns the API confirmation.
func (c *Client) PlaceTrade(ctx context.Context, req domain.TradeRequest) (domain.TradeResult, error) {
	if req.MarketID == "" {
		return domain.TradeResult{}, fmt.Errorf("simmer.PlaceTrade: market id is required")
	}
	if req.Amount <= 0 {
		return domain.TradeResult{}, fmt.Errorf("simmer.PlaceTrade: amount must be > 0, got %v", req.Amount)
	}

	slog.Info("simmer: placing trade",
		"market_id", req.MarketID,
		"side", req.Side,
		"amount", req.Amount,
		"venue", req.Venue,
	)

	var resp tradeResponse
	if err := c.post(ctx, tradePath, req, &resp); err != nil {
		return domain.TradeResult{}, fmt.Errorf("simmer.PlaceTrade %s: %w", req.MarketID, err)
	}

	result := mapTrade(resp)
	slog.Info("simmer: trade confirmed",
		"market_id", req.MarketID,
		"trade_id", result.TradeID,
		"success", result.Success,
		"shares", result.SharesBought,
		"cost", result.Cost,
	)
	return result, nil
}
