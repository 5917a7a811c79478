package domain

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Tier      Tier      `json:"tier"`
	IsCreator bool      `json:"is_creator"`
	IsAdmin   bool      `json:"is_admin"`
	IsDemo    bool      `json:"is_demo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasQuotaBypass reports whether the user skips quota evaluation entirely.
// Cost metering still runs for bypassed users since it tracks real provider
// spend, not entitlement.
func (u *User) HasQuotaBypass() bool {
	return u.IsCreator || u.IsAdmin || u.IsDemo
}

// UsageSnapshot is a read-only view of one user's metering state at decision
// time. Counters are mutated elsewhere (the usage recorder); the quota
// evaluator never writes them.
type UsageSnapshot struct {
	Tier         Tier `json:"tier"`
	MonthlyCount int  `json:"monthly_count"`
	DailyCount   int  `json:"daily_count"`
	// LastActionDate is the calendar date of the most recent metered action,
	// nil for a user who has never acted.
	LastActionDate *time.Time `json:"last_action_date,omitempty"`
}
