package domain

import "time"

// DenialReason identifies which quota window rejected a metered action.
type DenialReason string

const (
	DenialMonthlyLimit DenialReason = "monthly_limit"
	DenialDailyLimit   DenialReason = "daily_limit"
)

// QuotaVerdict is the typed allow/deny decision produced by the quota
// evaluator. ResetAt is set only for daily denials and is the next local
// midnight after the evaluation instant.
type QuotaVerdict struct {
	CanProceed   bool         `json:"can_proceed"`
	DenialReason DenialReason `json:"denial_reason,omitempty"`
	ResetAt      *time.Time   `json:"reset_at,omitempty"`
}

// TokenUsage is the token triple returned by a single model invocation.
// ThinkingTokens is optional and tier-gated; absent means 0.
type TokenUsage struct {
	InputTokens    int `json:"input_tokens"`
	OutputTokens   int `json:"output_tokens"`
	ThinkingTokens int `json:"thinking_tokens,omitempty"`
}

// CostBreakdown is the USD cost of a single model invocation.
// TotalCost is the rounded sum of the three already-rounded components.
type CostBreakdown struct {
	InputCost    float64 `json:"input_cost"`
	OutputCost   float64 `json:"output_cost"`
	ThinkingCost float64 `json:"thinking_cost"`
	TotalCost    float64 `json:"total_cost"`
}

// UsageRecord is one accounting row persisted per metered action, for
// billing reconciliation and analytics.
type UsageRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	InputTokens    int       `json:"input_tokens"`
	OutputTokens   int       `json:"output_tokens"`
	ThinkingTokens int       `json:"thinking_tokens"`
	TotalCost      float64   `json:"total_cost"`
	CreatedAt      time.Time `json:"created_at"`
}
