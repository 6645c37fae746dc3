package ports

import (
	"context"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// MarketQuery son los parámetros de búsqueda de mercados.
type MarketQuery struct {
	Query  string
	Tags   string
	Status string
	Limit  int
}

// AgentProvider obtiene la identidad del agente.
type AgentProvider interface {
	GetIdentity(ctx context.Context) (domain.Agent, error)
}

// MarketProvider lista mercados que coinciden con una búsqueda de texto.
type MarketProvider interface {
	// ListMarkets devuelve los mercados en el orden en que los entrega la API.
	ListMarkets(ctx context.Context, q MarketQuery) ([]domain.Market, error)
}

// ContextProvider obtiene el contexto de riesgo de un mercado.
type ContextProvider interface {
	GetContext(ctx context.Context, marketID string) (domain.MarketContext, error)
}

// BriefingProvider obtiene el briefing del agente.
type BriefingProvider interface {
	GetBriefing(ctx context.Context, since string) (domain.Briefing, error)
}
