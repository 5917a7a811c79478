package service

import (
	"math"
	"testing"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

func TestCostService_CalculateCost(t *testing.T) {
	tests := []struct {
		name  string
		usage domain.TokenUsage
		want  domain.CostBreakdown
	}{
		{
			name:  "All zero yields all zero",
			usage: domain.TokenUsage{},
			want:  domain.CostBreakdown{},
		},
		{
			name:  "1K in 1K out at published rates",
			usage: domain.TokenUsage{InputTokens: 1000, OutputTokens: 1000},
			want: domain.CostBreakdown{
				InputCost:  0.003,
				OutputCost: 0.015,
				TotalCost:  0.018,
			},
		},
		{
			name:  "Thinking tokens priced at output rate",
			usage: domain.TokenUsage{InputTokens: 2000, OutputTokens: 500, ThinkingTokens: 4000},
			want: domain.CostBreakdown{
				InputCost:    0.006,
				OutputCost:   0.0075,
				ThinkingCost: 0.06,
				TotalCost:    0.0735,
			},
		},
		{
			name:  "Sub-1K counts round to 6 decimals",
			usage: domain.TokenUsage{InputTokens: 123, OutputTokens: 7},
			want: domain.CostBreakdown{
				InputCost:  0.000369,
				OutputCost: 0.000105,
				TotalCost:  0.000474,
			},
		},
	}

	s := NewCostService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.CalculateCost(tt.usage)
			if got != tt.want {
				t.Errorf("CalculateCost(%+v) = %+v, want %+v", tt.usage, got, tt.want)
			}
		})
	}
}

func TestCostService_TotalIsRoundedSumOfComponents(t *testing.T) {
	s := NewCostService()

	triples := []domain.TokenUsage{
		{InputTokens: 1, OutputTokens: 1, ThinkingTokens: 1},
		{InputTokens: 333, OutputTokens: 667, ThinkingTokens: 0},
		{InputTokens: 15_000, OutputTokens: 2_500, ThinkingTokens: 12_345},
		{InputTokens: 1_000_000, OutputTokens: 999_999, ThinkingTokens: 1},
	}

	for _, usage := range triples {
		got := s.CalculateCost(usage)
		if want := round6(got.InputCost + got.OutputCost + got.ThinkingCost); got.TotalCost != want {
			t.Errorf("usage %+v: TotalCost = %v, want rounded component sum %v", usage, got.TotalCost, want)
		}
		for _, c := range []float64{got.InputCost, got.OutputCost, got.ThinkingCost, got.TotalCost} {
			if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
				t.Errorf("usage %+v: non-finite or negative component in %+v", usage, got)
			}
		}
	}
}

func TestCostService_MissingThinkingTokensIsZero(t *testing.T) {
	s := NewCostService()
	got := s.CalculateCost(domain.TokenUsage{InputTokens: 500, OutputTokens: 500})
	if got.ThinkingCost != 0 {
		t.Errorf("ThinkingCost = %v, want 0 when thinking tokens absent", got.ThinkingCost)
	}
}
