package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stockie/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// PagerConfig
// ---------------------------------------------------------------------------

// PagerConfig controls the page loop's retry and pacing behavior
type PagerConfig struct {
	// PageSize is the number of items requested per page
	PageSize int
	// MaxAttempts is the number of tries per page before aborting the fetch
	MaxAttempts int
	// RetryDelay is the backoff before retrying a failed page
	RetryDelay time.Duration
	// CooldownEvery triggers a cooldown after this many fetched pages
	CooldownEvery int
	// Cooldown is the pause inserted between page groups
	Cooldown time.Duration
}

// DefaultPagerConfig returns the pacing the marketplace tolerates
func DefaultPagerConfig() PagerConfig {
	return PagerConfig{
		PageSize:      200,
		MaxAttempts:   3,
		RetryDelay:    10 * time.Second,
		CooldownEvery: 5,
		Cooldown:      5 * time.Second,
	}
}

// ---------------------------------------------------------------------------
// Pager
// ---------------------------------------------------------------------------

// PageFunc fetches and processes one page, returning the number of items
// the page contained. The pager retries the same page on failure, so the
// function must be safe to call again with the same page number.
type PageFunc func(ctx context.Context, page, size int) (int, error)

// PageStats summarizes one completed page loop
type PageStats struct {
	// Pages is the number of successfully fetched pages
	Pages int
	// Items is the total number of items handed to the page function
	Items int
}

// Pager walks a remote paginated collection until exhaustion. Pages start
// at zero and advance only on success; a page shorter than the requested
// size, or an empty page, ends the loop. Failed pages are retried in place
// with a fixed backoff, and exhausting the attempts aborts the whole fetch
// with ErrFetchAborted so callers can tell a failure from natural
// completion. A fixed cooldown after every page group keeps the loop under
// the marketplace's rate limits.
type Pager struct {
	config PagerConfig
	clock  Clock
	logger *zap.Logger
}

// NewPager creates a new Pager
func NewPager(config PagerConfig, clock Clock, logger *zap.Logger) *Pager {
	return &Pager{
		config: config,
		clock:  clock,
		logger: logger,
	}
}

// Run executes the page loop for one resource. Partial results already
// processed by fetch are kept when the loop aborts; nothing is rolled back.
func (p *Pager) Run(ctx context.Context, resource string, fetch PageFunc) (PageStats, error) {
	var stats PageStats

	page := 0
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		count, err := fetch(ctx, page, p.config.PageSize)
		if err != nil {
			if isPermanent(err) {
				p.logger.Error("Page fetch rejected",
					zap.String("resource", resource),
					zap.Int("page", page),
					zap.Error(err),
				)
				return stats, fmt.Errorf("fetching %s page %d: %w", resource, page, err)
			}

			attempts++
			if attempts >= p.config.MaxAttempts {
				p.logger.Error("Page fetch aborted after retries",
					zap.String("resource", resource),
					zap.Int("page", page),
					zap.Int("attempts", attempts),
					zap.Error(err),
				)
				return stats, fmt.Errorf("%w: %s page %d after %d attempts: %v",
					integration.ErrFetchAborted, resource, page, attempts, err)
			}

			p.logger.Warn("Page fetch failed, retrying",
				zap.String("resource", resource),
				zap.Int("page", page),
				zap.Int("attempt", attempts),
				zap.Duration("backoff", p.config.RetryDelay),
				zap.Error(err),
			)
			if err := p.clock.Sleep(ctx, p.config.RetryDelay); err != nil {
				return stats, err
			}
			continue
		}

		attempts = 0

		if count == 0 {
			break
		}

		stats.Pages++
		stats.Items += count

		p.logger.Debug("Fetched page",
			zap.String("resource", resource),
			zap.Int("page", page),
			zap.Int("items", count),
			zap.Int("total", stats.Items),
		)

		if count < p.config.PageSize {
			break
		}

		if p.config.CooldownEvery > 0 && stats.Pages%p.config.CooldownEvery == 0 {
			if err := p.clock.Sleep(ctx, p.config.Cooldown); err != nil {
				return stats, err
			}
		}

		page++
	}

	return stats, nil
}

// Retry runs a single-shot fetch under the same attempt budget and backoff
// as the page loop. Unpaginated endpoints (the category tree, per-category
// attributes) fail just as transiently as paginated ones; exhausting the
// attempts wraps the last error in ErrFetchAborted, and a permanent
// rejection is returned without retrying.
func (p *Pager) Retry(ctx context.Context, resource string, fn func(ctx context.Context) error) error {
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}

		if isPermanent(err) {
			p.logger.Error("Fetch rejected",
				zap.String("resource", resource),
				zap.Error(err),
			)
			return fmt.Errorf("fetching %s: %w", resource, err)
		}

		attempts++
		if attempts >= p.config.MaxAttempts {
			p.logger.Error("Fetch aborted after retries",
				zap.String("resource", resource),
				zap.Int("attempts", attempts),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %s after %d attempts: %v",
				integration.ErrFetchAborted, resource, attempts, err)
		}

		p.logger.Warn("Fetch failed, retrying",
			zap.String("resource", resource),
			zap.Int("attempt", attempts),
			zap.Duration("backoff", p.config.RetryDelay),
			zap.Error(err),
		)
		if err := p.clock.Sleep(ctx, p.config.RetryDelay); err != nil {
			return err
		}
	}
}

// isPermanent reports whether the error is a well-formed rejection that
// retrying cannot fix. Everything else, including local storage failures
// inside the page function, stays eligible for the page retry.
func isPermanent(err error) bool {
	return errors.Is(err, integration.ErrMarketplaceRequestRejected) ||
		errors.Is(err, integration.ErrMarketplaceAuthFailed)
}
