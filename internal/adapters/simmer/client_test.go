package simmer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/simmerbot/internal/adapters/simmer"
	"github.com/alejandrodnm/simmerbot/internal/domain"
	"github.com/alejandrodnm/simmerbot/internal/ports"
)

const testKey = "sk_test_123"

func newTestClient(srv *httptest.Server, key string) *simmer.Client {
	return simmer.NewClient(srv.URL, key, simmer.Options{
		Timeout:       5 * time.Second,
		RatePerSecond: 1000,
		Burst:         10,
	})
}

func jsonHandler(t *testing.T, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestClient_MissingKey_NoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(srv, "")
	ctx := context.Background()

	_, err := client.GetIdentity(ctx)
	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, simmer.APIKeyEnv, cfgErr.Key)

	_, err = client.ListMarkets(ctx, ports.MarketQuery{Query: "bitcoin"})
	require.ErrorAs(t, err, &cfgErr)
	_, err = client.GetContext(ctx, "m1")
	require.ErrorAs(t, err, &cfgErr)
	_, err = client.PlaceTrade(ctx, domain.TradeRequest{MarketID: "m1", Side: "yes", Amount: 1, Venue: "simmer"})
	require.ErrorAs(t, err, &cfgErr)
	_, err = client.GetBriefing(ctx, "")
	require.ErrorAs(t, err, &cfgErr)

	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_RemoteError_CarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, testKey).GetIdentity(context.Background())
	require.Error(t, err)

	var remote *domain.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusUnauthorized, remote.StatusCode)
	assert.Contains(t, remote.Body, "invalid key")
	assert.Contains(t, err.Error(), "simmer 401 Unauthorized")
}

func TestGetIdentity_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sdk/agents/me", r.URL.Path)
		jsonHandler(t, `{"agent_id":"ag_1","name":"scout","status":"active","balance":9876.5,"trades_count":12}`)(w, r)
	}))
	defer srv.Close()

	agent, err := newTestClient(srv, testKey).GetIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Agent{ID: "ag_1", Name: "scout", Status: "active", Balance: 9876.5, TradesCount: 12}, agent)
}

func TestListMarkets_QueryParamsAndMapping(t *testing.T) {
	fixture := `{"markets":[
		{"id": 1, "question": "BTC above 100k?", "url": "https://simmer.markets/m/1", "status": "active",
		 "current_probability": 0.42, "opportunity_score": 30, "volume_24h": 1000,
		 "resolves_at": "2026-12-31T00:00:00Z", "tags": "[\"crypto\",\"fast\"]"},
		{"id": "m-2", "question": "ETH flip?", "status": "active",
		 "opportunity_score": null, "volume_24h": "1500", "tags": ["crypto"]},
		{"id": "m-3", "status": "resolved", "tags": "not json"}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sdk/markets", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "bitcoin", q.Get("q"))
		assert.Equal(t, "active", q.Get("status"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.False(t, q.Has("tags"))
		jsonHandler(t, fixture)(w, r)
	}))
	defer srv.Close()

	markets, err := newTestClient(srv, testKey).ListMarkets(context.Background(), ports.MarketQuery{
		Query: "bitcoin", Status: "active", Limit: 25,
	})
	require.NoError(t, err)
	require.Len(t, markets, 3)

	m1 := markets[0]
	assert.Equal(t, "1", m1.ID)
	assert.Equal(t, 30.0, m1.OpportunityScore)
	require.NotNil(t, m1.Volume24h)
	assert.Equal(t, 1000.0, *m1.Volume24h)
	require.NotNil(t, m1.CurrentProbability)
	assert.Equal(t, 0.42, *m1.CurrentProbability)
	assert.Equal(t, []string{"crypto", "fast"}, m1.Tags)
	assert.True(t, m1.IsFast())

	m2 := markets[1]
	assert.Equal(t, "m-2", m2.ID)
	assert.Equal(t, 0.0, m2.OpportunityScore)
	assert.Nil(t, m2.Volume24h, "string volume is not numeric")
	assert.Equal(t, []string{"crypto"}, m2.Tags)

	m3 := markets[2]
	assert.False(t, m3.IsActive())
	assert.Empty(t, m3.Tags, "unparseable tags default to empty")
}

func TestListMarkets_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, ``))
	defer srv.Close()

	markets, err := newTestClient(srv, testKey).ListMarkets(context.Background(), ports.MarketQuery{})
	require.NoError(t, err)
	assert.Empty(t, markets)
}

func TestGetContext_SpreadAndWarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sdk/context/m-1", r.URL.Path)
		jsonHandler(t, `{
			"warnings": ["Wide spread detected", 42],
			"slippage": {"spread_pct": "0.08"},
			"time_to_resolution": "3d 4h",
			"notes": null
		}`)(w, r)
	}))
	defer srv.Close()

	c, err := newTestClient(srv, testKey).GetContext(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wide spread detected", "42"}, c.Warnings)
	require.NotNil(t, c.SpreadPct)
	assert.InDelta(t, 0.08, *c.SpreadPct, 1e-12)
	assert.Equal(t, "3d 4h", c.TimeToResolution)
	assert.Equal(t, "", c.Notes)
}

func TestGetContext_MissingSlippage(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, `{"warnings": []}`))
	defer srv.Close()

	c, err := newTestClient(srv, testKey).GetContext(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Nil(t, c.SpreadPct)
	assert.Empty(t, c.Warnings)
}

func TestGetBriefing_PostsWithSince(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sdk/briefing", r.URL.Path)
		assert.Equal(t, "2026-10-01T00:00:00Z", r.URL.Query().Get("since"))
		jsonHandler(t, `{"portfolio":{"positions":3},"alerts":[]}`)(w, r)
	}))
	defer srv.Close()

	b, err := newTestClient(srv, testKey).GetBriefing(context.Background(), "2026-10-01T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, b, "portfolio")
}

func TestPlaceTrade_SendsBodyAndMapsConfirmation(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sdk/trade", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "m-1", body["market_id"])
		assert.Equal(t, "yes", body["side"])
		assert.Equal(t, 10.0, body["amount"])
		assert.Equal(t, "simmer", body["venue"])

		jsonHandler(t, `{"success":true,"trade_id":"t-9","market_id":"m-1","side":"yes",
			"shares_bought":21.3,"cost":10,"new_price":0.47,"balance":9990}`)(w, r)
	}))
	defer srv.Close()

	res, err := newTestClient(srv, testKey).PlaceTrade(context.Background(), domain.TradeRequest{
		MarketID: "m-1", Side: domain.SideYes, Amount: 10, Venue: domain.VenueSimmer,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "t-9", res.TradeID)
	assert.InDelta(t, 21.3, res.SharesBought, 1e-9)
	require.NotNil(t, res.NewPrice)
	assert.InDelta(t, 0.47, *res.NewPrice, 1e-9)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPlaceTrade_RejectsInvalidRequestLocally(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := newTestClient(srv, testKey)
	_, err := client.PlaceTrade(context.Background(), domain.TradeRequest{MarketID: "m-1", Amount: 0})
	assert.Error(t, err)
	_, err = client.PlaceTrade(context.Background(), domain.TradeRequest{Amount: 5})
	assert.Error(t, err)
	assert.Equal(t, int32(0), calls.Load())
}
