package service

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// urgentThresholdDays marks a reimbursement as urgent when this many days or
// fewer remain.
const urgentThresholdDays = 3

// NewPublicToken mints the short token embedded in the public link: the
// first 8 hex characters of a fresh UUID. Uniqueness is enforced by the
// database index; callers retry on collision.
func NewPublicToken() string {
	return uuid.NewString()[:8]
}

// DaysRemaining computes how many whole days are left to pay. An explicit
// due date overrides the grace window; otherwise the deadline is createdAt
// plus graceDays. Never negative.
func DaysRemaining(createdAt time.Time, graceDays int, dueDate *time.Time, now time.Time) int {
	deadline := createdAt.AddDate(0, 0, graceDays)
	if dueDate != nil {
		deadline = *dueDate
	}
	diff := deadline.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}
