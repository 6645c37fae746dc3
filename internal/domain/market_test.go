package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarket_IsActive(t *testing.T) {
	assert.True(t, Market{Status: "active"}.IsActive())
	assert.False(t, Market{Status: "resolved"}.IsActive())
	assert.False(t, Market{Status: "Active"}.IsActive())
	assert.False(t, Market{}.IsActive())
}

func TestMarket_IsFast(t *testing.T) {
	assert.True(t, Market{Tags: []string{"crypto", "fast"}}.IsFast())
	assert.False(t, Market{Tags: []string{"crypto", "faster"}}.IsFast())
	assert.False(t, Market{}.IsFast())
}

func TestMarket_Volume(t *testing.T) {
	assert.Equal(t, 0.0, Market{}.Volume())
	assert.Equal(t, 42.5, Market{Volume24h: ptr(42.5)}.Volume())
}

func TestTruncateQuestion(t *testing.T) {
	assert.Equal(t, "short", TruncateQuestion("short", "id", 20))
	assert.Equal(t, "m-1", TruncateQuestion("  ", "m-1", 20))

	long := strings.Repeat("A", 50)
	got := TruncateQuestion(long, "id", 20)
	assert.Len(t, got, 20)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestMarketContext_WarningSummary(t *testing.T) {
	assert.Equal(t, "none", MarketContext{}.WarningSummary())
	assert.Equal(t, "a | b", MarketContext{Warnings: []string{"a", "b"}}.WarningSummary())
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"scan", "pick", "auto", "poll", "briefing"} {
		m, err := ParseMode(s)
		assert.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}
	_, err := ParseMode("trade")
	assert.Error(t, err)
	assert.True(t, ModeAuto.Trades())
	assert.False(t, ModePick.Trades())
}

func TestNewCandidateSummary_NilTagsBecomeEmpty(t *testing.T) {
	s := NewCandidateSummary(Market{ID: "m1", OpportunityScore: 10})
	assert.NotNil(t, s.Tags)
	assert.Empty(t, s.Tags)
	assert.Nil(t, s.Volume24h)
	assert.InDelta(t, 100.0, s.RankScore, 1e-9)
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "config: missing SIMMER_API_KEY in environment", (&ConfigError{Key: "SIMMER_API_KEY"}).Error())
	assert.Equal(t, "config: SCAN_LIMIT: not a number", (&ConfigError{Key: "SCAN_LIMIT", Reason: "not a number"}).Error())
	assert.Equal(t, "simmer 401 Unauthorized: nope", (&RemoteError{StatusCode: 401, Status: "401 Unauthorized", Body: "nope"}).Error())
}
