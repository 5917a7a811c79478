package domain

import "testing"

func TestLimitsForTier(t *testing.T) {
	tests := []struct {
		name          string
		tier          Tier
		wantMonthly   int
		wantDaily     int
		wantUnbounded bool
	}{
		{
			name:          "Free tier has monthly ceiling only",
			tier:          TierFree,
			wantMonthly:   3,
			wantDaily:     0,
			wantUnbounded: true,
		},
		{
			name:        "Pro tier",
			tier:        TierPro,
			wantMonthly: 30,
			wantDaily:   1,
		},
		{
			name:        "Unlimited tier still has ceilings",
			tier:        TierUnlimited,
			wantMonthly: 300,
			wantDaily:   10,
		},
		{
			name:          "Unknown tier falls back to free",
			tier:          Tier("enterprise"),
			wantMonthly:   3,
			wantUnbounded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := LimitsForTier(tt.tier)
			if limits.MonthlyLimit != tt.wantMonthly {
				t.Errorf("MonthlyLimit = %d, want %d", limits.MonthlyLimit, tt.wantMonthly)
			}
			if limits.DailyLimit != tt.wantDaily {
				t.Errorf("DailyLimit = %d, want %d", limits.DailyLimit, tt.wantDaily)
			}
			if limits.Unbounded() != tt.wantUnbounded {
				t.Errorf("Unbounded() = %v, want %v", limits.Unbounded(), tt.wantUnbounded)
			}
		})
	}
}

func TestThinkingBudgetForTier(t *testing.T) {
	if got := ThinkingBudgetForTier(TierFree); got != 0 {
		t.Errorf("free budget = %d, want 0", got)
	}
	if got := ThinkingBudgetForTier(TierPro); got != 0 {
		t.Errorf("pro budget = %d, want 0", got)
	}
	if got := ThinkingBudgetForTier(TierUnlimited); got != 20_000 {
		t.Errorf("unlimited budget = %d, want 20000", got)
	}
}

func TestUserHasQuotaBypass(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "Regular user", user: User{Tier: TierPro}, want: false},
		{name: "Creator", user: User{IsCreator: true}, want: true},
		{name: "Admin", user: User{IsAdmin: true}, want: true},
		{name: "Demo", user: User{IsDemo: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.HasQuotaBypass(); got != tt.want {
				t.Errorf("HasQuotaBypass() = %v, want %v", got, tt.want)
			}
		})
	}
}
