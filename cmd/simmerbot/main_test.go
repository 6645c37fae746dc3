package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alejandrodnm/simmerbot/config"
	"github.com/alejandrodnm/simmerbot/internal/domain"
)

func TestScannerConfig_CopiesLoadedValues(t *testing.T) {
	cfg := &config.Config{
		Mode: domain.ModeAuto,
		Scanner: config.ScannerConfig{
			Query:               "election",
			Limit:               50,
			MinOpportunityScore: 15,
			ExcludeFast:         false,
			MinVolume24h:        250,
			MaxContexts:         3,
			ContextWorkers:      2,
			MaxUSD:              4,
			MaxSpreadPct:        0.03,
			IntervalSeconds:     120,
		},
	}

	sc := scannerConfig(cfg)

	assert.Equal(t, domain.ModeAuto, sc.Mode)
	assert.Equal(t, "election", sc.Query)
	assert.Equal(t, 50, sc.Limit)
	assert.Equal(t, 15.0, sc.Filter.MinOpportunityScore)
	assert.False(t, sc.Filter.ExcludeFast)
	assert.Equal(t, 250.0, sc.Filter.MinVolume24h)
	assert.Equal(t, 3, sc.MaxContexts)
	assert.Equal(t, 2, sc.ContextWorkers)
	assert.Equal(t, 4.0, sc.MaxTradeUSD)
	assert.Equal(t, 0.03, sc.MaxSpreadPct)
	assert.Equal(t, 2*time.Minute, sc.ScanInterval)
	assert.Equal(t, 10, sc.ReportLimit)
	assert.Equal(t, domain.VenueSimmer, sc.Venue)
}
