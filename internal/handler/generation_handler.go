package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/service"
	apperrors "github.com/Ahiya1/mirror-of-dreams-sub003/pkg/errors"
)

// GenerationHandler serves the metered reflection endpoints.
type GenerationHandler struct {
	generations domain.GenerationService
	userRepo    domain.UserRepository
	quota       *service.QuotaService
	logger      domain.Logger
}

func NewGenerationHandler(
	generations domain.GenerationService,
	userRepo domain.UserRepository,
	quota *service.QuotaService,
	logger domain.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generations: generations,
		userRepo:    userRepo,
		quota:       quota,
		logger:      logger,
	}
}

type quotaDeniedResponse struct {
	Error        string     `json:"error"`
	DenialReason string     `json:"denial_reason"`
	ResetAt      *time.Time `json:"reset_at,omitempty"`
}

// CreateReflection handles POST /reflections
func (h *GenerationHandler) CreateReflection(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.generations.Generate(r.Context(), userFromClaims(claims), req)
	if err != nil {
		h.writeGenerationError(w, claims.UserID, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *GenerationHandler) writeGenerationError(w http.ResponseWriter, userID string, err error) {
	var denied *domain.QuotaDeniedError
	if errors.As(err, &denied) {
		h.logger.Info("Reflection denied by quota",
			"user_id", userID,
			"reason", denied.Verdict.DenialReason,
			"reset_at", denied.Verdict.ResetAt,
		)
		writeJSON(w, http.StatusTooManyRequests, quotaDeniedResponse{
			Error:        "Quota exceeded - upgrade to continue",
			DenialReason: string(denied.Verdict.DenialReason),
			ResetAt:      denied.Verdict.ResetAt,
		})
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	if errors.Is(err, domain.ErrThinkingExceeded) {
		writeError(w, http.StatusForbidden, "Extended thinking not available on your plan")
		return
	}

	h.logger.Error("Reflection generation failed", err, "user_id", userID)
	writeAppError(w, apperrors.NewInternalError("Failed to generate reflection", err))
}

type usageResponse struct {
	Tier             domain.Tier `json:"tier"`
	MonthlyCount     int         `json:"monthly_count"`
	MonthlyLimit     int         `json:"monthly_limit"`
	MonthlyRemaining int         `json:"monthly_remaining"`
	DailyCount       int         `json:"daily_count"`
	DailyLimit       int         `json:"daily_limit,omitempty"`
	CanProceed       bool        `json:"can_proceed"`
	DenialReason     string      `json:"denial_reason,omitempty"`
	ResetAt          *time.Time  `json:"reset_at,omitempty"`
	ThinkingBudget   int         `json:"thinking_budget"`
}

// GetUsage handles GET /usage: the caller's current standing against both
// windows, for upgrade prompts and remaining-count UI.
func (h *GenerationHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	snapshot, err := h.userRepo.GetUsageSnapshot(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to read usage snapshot", err, "user_id", claims.UserID)
		writeAppError(w, apperrors.NewInternalError("Failed to read usage", err))
		return
	}

	limits := domain.LimitsForTier(snapshot.Tier)
	verdict := h.quota.Evaluate(*snapshot, limits, time.Now())

	remaining := limits.MonthlyLimit - snapshot.MonthlyCount
	if remaining < 0 {
		remaining = 0
	}

	writeJSON(w, http.StatusOK, usageResponse{
		Tier:             snapshot.Tier,
		MonthlyCount:     snapshot.MonthlyCount,
		MonthlyLimit:     limits.MonthlyLimit,
		MonthlyRemaining: remaining,
		DailyCount:       snapshot.DailyCount,
		DailyLimit:       limits.DailyLimit,
		CanProceed:       verdict.CanProceed,
		DenialReason:     string(verdict.DenialReason),
		ResetAt:          verdict.ResetAt,
		ThinkingBudget:   domain.ThinkingBudgetForTier(snapshot.Tier),
	})
}
