package domain

// Tier is a subscription level determining quota ceilings and feature budgets.
type Tier string

const (
	TierFree      Tier = "free"
	TierPro       Tier = "pro"
	TierUnlimited Tier = "unlimited"
)

// TierLimits holds the quota ceilings for a tier. DailyLimit of 0 means
// "unbounded" -- enforcement code must treat 0 as no daily ceiling.
type TierLimits struct {
	MonthlyLimit int
	DailyLimit   int
}

// Unbounded reports whether the tier has no daily ceiling.
func (l TierLimits) Unbounded() bool {
	return l.DailyLimit == 0
}

// tierLimits maps subscription tiers to their quota limits.
// Free tier has no daily limit by design (only a monthly ceiling).
var tierLimits = map[Tier]TierLimits{
	TierFree:      {MonthlyLimit: 3},
	TierPro:       {MonthlyLimit: 30, DailyLimit: 1},
	TierUnlimited: {MonthlyLimit: 300, DailyLimit: 10},
}

// LimitsForTier returns the quota limits for a tier, defaulting to the free
// tier for unknown tiers so unrecognized plans fail safe.
func LimitsForTier(tier Tier) TierLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[TierFree]
}

// ThinkingBudgetForTier returns the extended-thinking token budget granted to
// a tier. 0 means "no access" (feature disabled). This is a capability gate
// consulted before invoking the model, not a pricing input.
func ThinkingBudgetForTier(tier Tier) int {
	if tier == TierUnlimited {
		return 20_000
	}
	return 0
}
