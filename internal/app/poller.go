package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kisanportal/kisan/internal/market"
	"github.com/kisanportal/kisan/internal/state"
)

const (
	defaultPollInterval = 60 * time.Second
	maxBackoff          = 5 * time.Minute
	pollTimeout         = 15 * time.Second
)

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff. It never returns less than base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// Poll refreshes the store until ctx is cancelled, backing off while the
// market API keeps failing.
func Poll(ctx context.Context, store *state.Store, client market.PriceFetcher, interval time.Duration, logger *zap.Logger) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		refresh(ctx, store, client, logger)
		failures := store.Snapshot().ConsecutiveFailures
		timer.Reset(calculateBackoff(failures, interval))
	}
}

// refresh fetches the tracked commodity once and records the outcome.
func refresh(ctx context.Context, store *state.Store, client market.PriceFetcher, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	commodity := store.Commodity()
	if commodity == "" {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	series, err := client.FetchPrices(fetchCtx, market.PriceQuery{Commodity: commodity})
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down.
			return
		}
		logger.Warn("price poll failed", zap.String("commodity", commodity), zap.Error(err))
		store.Update(commodity, nil, err)
		return
	}
	if !store.Update(commodity, &series, nil) {
		logger.Debug("dropping poll result for previous commodity", zap.String("commodity", commodity))
	}
}
