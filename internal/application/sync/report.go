package sync

import (
	"time"

	"github.com/stockie/backend/internal/domain/integration"
)

// Report is the outcome of one sync job invocation, returned to the
// trigger so failures and partial progress stay observable
type Report struct {
	// Job names the job that ran
	Job Job `json:"job"`
	// Platform is the marketplace the job ran against
	Platform integration.PlatformCode `json:"platform"`
	// Pages is the number of remote pages fetched
	Pages int `json:"pages"`
	// Fetched is the number of remote items received
	Fetched int `json:"fetched"`
	// Applied is the number of local records written
	Applied int `json:"applied"`
	// Skipped is the number of items dropped under the skip policy
	Skipped int `json:"skipped"`
	// Failures records the skipped items
	Failures []ItemFailure `json:"failures,omitempty"`
	// StartedAt is when the job started
	StartedAt time.Time `json:"started_at"`
	// Duration is how long the job ran
	Duration time.Duration `json:"duration"`
}

func newReport(job Job, platform integration.PlatformCode, startedAt time.Time) *Report {
	return &Report{
		Job:       job,
		Platform:  platform,
		StartedAt: startedAt,
	}
}

func (r *Report) finish(now time.Time) *Report {
	r.Duration = now.Sub(r.StartedAt)
	return r
}

func (r *Report) addBatch(b BatchResult) {
	r.Applied += b.Applied
	r.Skipped += b.Skipped
	r.Failures = append(r.Failures, b.Failures...)
}
