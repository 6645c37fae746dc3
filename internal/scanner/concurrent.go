package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alejandrodnm/simmerbot/internal/domain"
	"github.com/alejandrodnm/simmerbot/internal/ports"
)

// fetchContextsConcurrent pide el contexto de cada mercado con un worker pool.
// El resultado conserva el orden de markets. Si alguna llamada falla se devuelve
// el error del mercado mejor rankeado y ningún contexto.
//
// El rate limiter del cliente sigue acotando las requests reales.
func fetchContextsConcurrent(
	ctx context.Context,
	provider ports.ContextProvider,
	markets []domain.Market,
	workers int,
) ([]domain.MarketContext, error) {
	if workers <= 0 {
		workers = 1
	}
	workers = min(workers, len(markets))

	type work struct {
		idx    int
		market domain.Market
	}

	workCh := make(chan work, len(markets))
	results := make([]domain.MarketContext, len(markets))
	errs := make([]error, len(markets))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range workCh {
				c, err := provider.GetContext(ctx, w.market.ID)
				if err != nil {
					errs[w.idx] = fmt.Errorf("context %s: %w", w.market.ID, err)
					continue
				}
				results[w.idx] = c
			}
		}()
	}

	for i, m := range markets {
		workCh <- work{idx: i, market: m}
	}
	close(workCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	slog.Debug("contexts fetched", "markets", len(markets), "workers", workers)
	return results, nil
}
