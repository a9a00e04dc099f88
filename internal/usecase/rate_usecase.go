package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/iho/expensetracker/internal/domain"
)

const refreshKey = "refresh"

// RateUseCase holds the last-known-good exchange-rate table.
// Readers never block on a refresh; a new table replaces the old one only after
// it was fetched and validated in full.
type RateUseCase struct {
	source  RateSource
	cache   RateCache
	metrics MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time

	current atomic.Pointer[domain.RateTable]
	group   singleflight.Group
}

// NewRateUseCase creates a new RateUseCase. cache may be nil.
func NewRateUseCase(source RateSource, cache RateCache) *RateUseCase {
	return &RateUseCase{
		source:  source,
		cache:   cache,
		metrics: noopMetrics{},
		logger:  zerolog.Nop(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithMetrics sets the recorder for refresh outcomes.
func (uc *RateUseCase) WithMetrics(m MetricsRecorder) *RateUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithLogger sets the logger.
func (uc *RateUseCase) WithLogger(logger zerolog.Logger) *RateUseCase {
	uc.logger = logger.With().Str("component", "rates").Logger()
	return uc
}

// Refresh fetches a new table from the source. Concurrent callers share one
// upstream request. On failure the previous table stays in place.
// The shared fetch is detached from any single caller, so a caller that gives
// up only abandons its own wait.
func (uc *RateUseCase) Refresh(ctx context.Context) (*domain.RateTable, error) {
	ch := uc.group.DoChan(refreshKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultRefreshTimeout)
		defer cancel()
		return uc.refresh(fetchCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.RateTable), nil
	case <-ctx.Done():
		return nil, &domain.RateFetchError{Reason: "caller gave up", Err: ctx.Err()}
	}
}

func (uc *RateUseCase) refresh(ctx context.Context) (*domain.RateTable, error) {
	start := time.Now()

	table, err := uc.source.FetchRates(ctx)
	if err == nil {
		if table == nil {
			err = &domain.RateFetchError{Reason: "empty response"}
		} else {
			err = table.Validate()
		}
	}
	if err != nil && !errors.Is(err, domain.ErrRateFetch) {
		err = &domain.RateFetchError{Reason: "source", Err: err}
	}

	uc.metrics.RateRefresh(err, time.Since(start))
	if err != nil {
		uc.logger.Warn().Err(err).Msg("rate refresh failed, keeping previous table")
		return nil, err
	}

	if table.FetchedAt.IsZero() {
		table.FetchedAt = uc.now()
	}
	uc.current.Store(table)

	if uc.cache != nil {
		if err := uc.cache.Save(ctx, table); err != nil {
			uc.logger.Warn().Err(err).Msg("failed to cache rate table")
		}
	}

	uc.logger.Info().Int("currencies", table.Len()).Str("base", table.Base).Msg("rate table refreshed")

	return table, nil
}

// Current returns the table in use, or nil when none was ever loaded.
// The returned table must not be modified.
func (uc *RateUseCase) Current() *domain.RateTable {
	return uc.current.Load()
}

// Convert rescales a base-unit amount with the current table.
func (uc *RateUseCase) Convert(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	return domain.Convert(amount, code, uc.current.Load())
}

// Warm loads the last cached table when no table is present yet.
// A missing cache entry is not an error.
func (uc *RateUseCase) Warm(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}

	table, err := uc.cache.Load(ctx)
	if err != nil {
		return err
	}
	if table == nil {
		return nil
	}
	if err := table.Validate(); err != nil {
		return err
	}

	if uc.current.CompareAndSwap(nil, table) {
		uc.logger.Info().Int("currencies", table.Len()).Time("fetched_at", table.FetchedAt).Msg("rate table restored from cache")
	}
	return nil
}

// Run refreshes the table every interval until ctx is cancelled.
// Failures are logged and never clear the current table.
func (uc *RateUseCase) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	uc.logger.Info().Dur("interval", interval).Msg("rate refresher started")

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info().Msg("rate refresher stopped")
			return
		case <-ticker.C:
			// errors already logged by refresh
			_, _ = uc.Refresh(ctx)
		}
	}
}
