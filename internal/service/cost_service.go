package service

import (
	"math"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

// Per-1K-token USD rates for the reflection model. Thinking tokens are
// billed at the output rate.
const (
	inputRatePer1K    = 0.003
	outputRatePer1K   = 0.015
	thinkingRatePer1K = 0.015
)

// CostService converts token usage into a USD cost breakdown for accounting.
// It never enforces budgets; it prices whatever the provider reports.
type CostService struct{}

func NewCostService() *CostService {
	return &CostService{}
}

// CalculateCost prices a token triple. Each component is rounded to 6
// decimal places before summing, and the total is the rounded sum of the
// rounded components. The ordering matters: accounting rows are compared
// for exact equality downstream.
func (s *CostService) CalculateCost(usage domain.TokenUsage) domain.CostBreakdown {
	inputCost := round6(float64(usage.InputTokens) / 1000 * inputRatePer1K)
	outputCost := round6(float64(usage.OutputTokens) / 1000 * outputRatePer1K)
	thinkingCost := round6(float64(usage.ThinkingTokens) / 1000 * thinkingRatePer1K)

	return domain.CostBreakdown{
		InputCost:    inputCost,
		OutputCost:   outputCost,
		ThinkingCost: thinkingCost,
		TotalCost:    round6(inputCost + outputCost + thinkingCost),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
