package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

const reflectionModel = "gemini-2.0-flash-001"

// modelCall invokes the underlying model and returns the generated text
// plus the token usage the provider reported. Split out so tests can run
// the full pipeline without a Vertex AI credential.
type modelCall func(ctx context.Context, prompt string, thinkingTokens int) (string, domain.TokenUsage, error)

// GenerationService runs the metered reflection pipeline: quota pre-flight,
// model invocation, cost metering, usage recording.
type GenerationService struct {
	userRepo domain.UserRepository
	recorder domain.UsageRecorder
	quota    *QuotaService
	cost     *CostService
	logger   domain.Logger

	callModel modelCall
	now       func() time.Time
}

func NewGenerationService(
	userRepo domain.UserRepository,
	recorder domain.UsageRecorder,
	quota *QuotaService,
	cost *CostService,
	logger domain.Logger,
	projectID string,
	location string,
) (*GenerationService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	s := &GenerationService{
		userRepo: userRepo,
		recorder: recorder,
		quota:    quota,
		cost:     cost,
		logger:   logger,
		now:      time.Now,
	}
	s.callModel = s.callVertex(client)
	return s, nil
}

// Generate produces a reflection for the user's dream.
//
// The quota verdict is a pre-flight guard only: the recorder re-validates
// the limit when it increments the counters. Privileged users (creator,
// admin, demo) skip quota evaluation but are still cost-metered, since cost
// tracks real provider spend rather than entitlement.
func (s *GenerationService) Generate(ctx context.Context, user *domain.User, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	if strings.TrimSpace(req.Dream) == "" {
		return nil, &domain.ValidationError{Field: "dream", Message: "must not be empty"}
	}

	if req.ThinkingTokens > 0 {
		budget := domain.ThinkingBudgetForTier(user.Tier)
		if req.ThinkingTokens > budget {
			return nil, fmt.Errorf("%w: requested %d, budget %d", domain.ErrThinkingExceeded, req.ThinkingTokens, budget)
		}
	}

	now := s.now()

	if !user.HasQuotaBypass() {
		snapshot, err := s.userRepo.GetUsageSnapshot(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read usage snapshot: %w", err)
		}
		verdict := s.quota.Evaluate(*snapshot, domain.LimitsForTier(snapshot.Tier), now)
		if !verdict.CanProceed {
			return nil, &domain.QuotaDeniedError{Verdict: verdict}
		}
	}

	reflection, usage, err := s.callModel(ctx, buildPrompt(req), req.ThinkingTokens)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	cost := s.cost.CalculateCost(usage)

	if !user.HasQuotaBypass() {
		// Best effort: the action happened and was paid for either way.
		if err := s.recorder.RecordAction(ctx, user.ID, now); err != nil {
			s.logger.Warn("Failed to record metered action", "error", err, "user_id", user.ID)
		}
	}
	record := &domain.UsageRecord{
		UserID:         user.ID,
		InputTokens:    usage.InputTokens,
		OutputTokens:   usage.OutputTokens,
		ThinkingTokens: usage.ThinkingTokens,
		TotalCost:      cost.TotalCost,
		CreatedAt:      now,
	}
	if err := s.recorder.RecordCost(ctx, record); err != nil {
		s.logger.Warn("Failed to record cost", "error", err, "user_id", user.ID)
	}

	return &domain.GenerationResponse{
		Reflection: reflection,
		Usage:      usage,
		Cost:       cost,
	}, nil
}

func (s *GenerationService) callVertex(client *genai.Client) modelCall {
	return func(ctx context.Context, prompt string, thinkingTokens int) (string, domain.TokenUsage, error) {
		model := client.GenerativeModel(reflectionModel)
		model.SetTemperature(0.8)

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", domain.TokenUsage{}, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", domain.TokenUsage{}, fmt.Errorf("empty response from model")
		}

		var sb strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}

		usage := domain.TokenUsage{}
		if resp.UsageMetadata != nil {
			usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
			usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
			// The SDK reports thinking only through the total; anything not
			// attributed to prompt or candidates was extended thinking.
			if extra := int(resp.UsageMetadata.TotalTokenCount) - usage.InputTokens - usage.OutputTokens; extra > 0 {
				usage.ThinkingTokens = extra
			}
		}

		return sb.String(), usage, nil
	}
}

func buildPrompt(req domain.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a thoughtful dream interpreter. Read the dream below and write a short reflection: ")
	sb.WriteString("what it might express, recurring symbols, and one gentle question for the dreamer. ")
	sb.WriteString("Do not diagnose or predict the future.\n")
	if req.Tone != "" {
		sb.WriteString("Tone: " + req.Tone + "\n")
	}
	sb.WriteString("\nDream:\n")
	sb.WriteString(req.Dream)
	return sb.String()
}
