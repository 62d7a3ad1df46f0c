package sync

import (
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// ErrorPolicy
// ---------------------------------------------------------------------------

// ErrorPolicy decides what a reconciliation loop does when one item fails
type ErrorPolicy string

const (
	// SkipItem logs the failure and continues with the next item
	SkipItem ErrorPolicy = "skip"
	// AbortBatch stops the loop and surfaces the failure
	AbortBatch ErrorPolicy = "abort"
)

// IsValid returns true if the policy is valid
func (p ErrorPolicy) IsValid() bool {
	return p == SkipItem || p == AbortBatch
}

// ---------------------------------------------------------------------------
// BatchResult
// ---------------------------------------------------------------------------

// ItemFailure records one item that could not be reconciled
type ItemFailure struct {
	// Key identifies the failed item
	Key string
	// Reason is the failure message
	Reason string
}

// BatchResult summarizes one reconciliation pass
type BatchResult struct {
	// Total is the number of items offered
	Total int
	// Applied is the number of items written
	Applied int
	// Skipped is the number of items dropped under SkipItem
	Skipped int
	// Failures records the skipped items
	Failures []ItemFailure
}

// Merge folds another result into this one
func (r *BatchResult) Merge(other BatchResult) {
	r.Total += other.Total
	r.Applied += other.Applied
	r.Skipped += other.Skipped
	r.Failures = append(r.Failures, other.Failures...)
}

// ---------------------------------------------------------------------------
// ReconcileBatch
// ---------------------------------------------------------------------------

// ReconcileBatch applies one item at a time and handles failures per the
// policy. Replaying the same batch converges because apply is an upsert on
// a stable key; the loop itself adds no state.
//
// Under SkipItem a failed item is logged and counted; under AbortBatch the
// loop stops at the first failure and returns it, keeping the items already
// applied.
func ReconcileBatch[T any](items []T, policy ErrorPolicy, logger *zap.Logger, key func(T) string, apply func(T) error) (BatchResult, error) {
	result := BatchResult{Total: len(items)}

	for _, item := range items {
		if err := apply(item); err != nil {
			if policy == AbortBatch {
				return result, err
			}

			result.Skipped++
			result.Failures = append(result.Failures, ItemFailure{
				Key:    key(item),
				Reason: err.Error(),
			})
			logger.Warn("Skipped item during reconciliation",
				zap.String("key", key(item)),
				zap.Error(err),
			)
			continue
		}
		result.Applied++
	}

	return result, nil
}
