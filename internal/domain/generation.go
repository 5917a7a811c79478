package domain

import "context"

// GenerationRequest is one metered reflection request.
type GenerationRequest struct {
	Dream string `json:"dream"`
	// Tone is an optional style hint ("gentle", "direct", ...).
	Tone string `json:"tone,omitempty"`
	// ThinkingTokens asks the model for extended thinking, capped by the
	// caller's tier budget.
	ThinkingTokens int `json:"thinking_tokens,omitempty"`
}

// GenerationResponse carries the generated reflection plus the accounting
// data produced for it.
type GenerationResponse struct {
	Reflection string        `json:"reflection"`
	Usage      TokenUsage    `json:"usage"`
	Cost       CostBreakdown `json:"cost"`
}

// GenerationService produces reflections for dreams.
type GenerationService interface {
	Generate(ctx context.Context, user *User, req GenerationRequest) (*GenerationResponse, error)
}
