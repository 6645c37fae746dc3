package ports

import (
	"context"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// TradeExecutor places trades. It is the only side-effecting call in the system
// and must be invoked at most once per decision.
type TradeExecutor interface {
	PlaceTrade(ctx context.Context, req domain.TradeRequest) (domain.TradeResult, error)
}
