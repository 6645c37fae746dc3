package simmer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/alejandrodnm/simmerbot/internal/domain"
	"github.com/alejandrodnm/simmerbot/internal/ports"
)

const (
	agentMePath  = "/api/sdk/agents/me"
	marketsPath  = "/api/sdk/markets"
	contextPath  = "/api/sdk/context/"
	briefingPath = "/api/sdk/briefing"
	tradePath    = "/api/sdk/trade"
)

// GetIdentity devuelve el agente dueño de la credencial.
func (c *Client) GetIdentity(ctx context.Context) (domain.Agent, error) {
	var resp agentResponse
	if err := c.get(ctx, agentMePath, &resp); err != nil {
		return domain.Agent{}, fmt.Errorf("simmer.GetIdentity: %w", err)
	}
	return mapAgent(resp), nil
}

// ListMarkets busca mercados. Los parámetros vacíos no se envían.
func (c *Client) ListMarkets(ctx context.Context, q ports.MarketQuery) ([]domain.Market, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	if q.Tags != "" {
		params.Set("tags", q.Tags)
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var resp marketsResponse
	if err := c.get(ctx, marketsPath+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("simmer.ListMarkets: %w", err)
	}

	markets := mapMarkets(resp.Markets)
	slog.Debug("simmer: markets fetched", "query", q.Query, "count", len(markets))
	return markets, nil
}

// GetContext devuelve el contexto de riesgo de un mercado.
func (c *Client) GetContext(ctx context.Context, marketID string) (domain.MarketContext, error) {
	var resp contextResponse
	if err := c.get(ctx, contextPath+url.PathEscape(marketID), &resp); err != nil {
		return domain.MarketContext{}, fmt.Errorf("simmer.GetContext %s: %w", marketID, err)
	}
	return mapContext(resp), nil
}

// GetBriefing devuelve el briefing del agente desde since (vacío = sin filtro).
func (c *Client) GetBriefing(ctx context.Context, since string) (domain.Briefing, error) {
	params := url.Values{}
	if since != "" {
		params.Set("since", since)
	}

	var resp domain.Briefing
	if err := c.post(ctx, briefingPath+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("simmer.GetBriefing: %w", err)
	}
	if resp == nil {
		resp = domain.Briefing{}
	}
	return resp, nil
}
