package service

import (
	"time"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

// QuotaService decides whether a user may perform another metered action.
// It is stateless and side-effect free; both windows are evaluated against
// the caller-supplied clock.
type QuotaService struct{}

func NewQuotaService() *QuotaService {
	return &QuotaService{}
}

// Evaluate checks the snapshot against the tier limits at the given instant.
//
// Monthly is always checked first: a user over both windows sees the
// monthly denial, since it is the more durable constraint. The daily
// counter resets implicitly when the last action happened on an earlier
// calendar date; the stored count is then stale and ignored.
//
// The verdict is advisory under concurrency: two requests can both read the
// same snapshot and both be allowed. The usage recorder re-validates the
// limit when it increments the counters, so callers must treat Evaluate as
// a pre-flight guard, not an exactness guarantee.
func (s *QuotaService) Evaluate(snapshot domain.UsageSnapshot, limits domain.TierLimits, now time.Time) domain.QuotaVerdict {
	if snapshot.MonthlyCount >= limits.MonthlyLimit {
		return domain.QuotaVerdict{
			CanProceed:   false,
			DenialReason: domain.DenialMonthlyLimit,
		}
	}

	if limits.Unbounded() {
		return domain.QuotaVerdict{CanProceed: true}
	}

	if snapshot.LastActionDate == nil || !sameDay(*snapshot.LastActionDate, now) {
		return domain.QuotaVerdict{CanProceed: true}
	}

	if snapshot.DailyCount >= limits.DailyLimit {
		reset := nextMidnight(now)
		return domain.QuotaVerdict{
			CanProceed:   false,
			DenialReason: domain.DenialDailyLimit,
			ResetAt:      &reset,
		}
	}

	return domain.QuotaVerdict{CanProceed: true}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// nextMidnight returns 00:00:00 on the calendar day after now, in now's
// location. Computed from now, never from the last action date.
func nextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
}
