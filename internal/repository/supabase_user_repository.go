package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

// SupabaseUserRepository implements domain.UserRepository and
// domain.UsageRecorder against the users and usage_records tables.
type SupabaseUserRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

func NewSupabaseUserRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseUserRepository {
	return &SupabaseUserRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

type userRow struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Tier           string    `json:"tier"`
	IsCreator      bool      `json:"is_creator"`
	IsAdmin        bool      `json:"is_admin"`
	IsDemo         bool      `json:"is_demo"`
	MonthlyCount   int       `json:"monthly_count"`
	DailyCount     int       `json:"daily_count"`
	LastActionDate *string   `json:"last_action_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GetByID retrieves a user row from Supabase
func (r *SupabaseUserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	row, err := r.getRow(userID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Tier:      domain.Tier(row.Tier),
		IsCreator: row.IsCreator,
		IsAdmin:   row.IsAdmin,
		IsDemo:    row.IsDemo,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// GetUsageSnapshot translates the user row into the metering snapshot shape.
// Must be called freshly for every request; the quota verdict computed from
// it is advisory only.
func (r *SupabaseUserRepository) GetUsageSnapshot(ctx context.Context, userID string) (*domain.UsageSnapshot, error) {
	row, err := r.getRow(userID)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.UsageSnapshot{
		Tier:         domain.Tier(row.Tier),
		MonthlyCount: row.MonthlyCount,
		DailyCount:   row.DailyCount,
	}
	if row.LastActionDate != nil && *row.LastActionDate != "" {
		d, err := time.Parse("2006-01-02", *row.LastActionDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_action_date: %w", err)
		}
		snapshot.LastActionDate = &d
	}
	return snapshot, nil
}

// RecordAction increments the usage counters for one accepted action.
// The increment runs through the record_metered_action SQL function, which
// re-validates both limits inside the update so two requests that passed the
// same pre-flight check cannot both land over the limit.
func (r *SupabaseUserRepository) RecordAction(ctx context.Context, userID string, now time.Time) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	params := map[string]interface{}{
		"p_user_id":     userID,
		"p_action_date": now.Format("2006-01-02"),
	}
	// Rpc returns the raw response body; the function returns a bare
	// boolean, so anything else is an error payload.
	resp := client.Rpc("record_metered_action", "", params)
	if resp == "" {
		return fmt.Errorf("rpc returned empty response")
	}

	var accepted bool
	if err := json.Unmarshal([]byte(resp), &accepted); err != nil {
		return fmt.Errorf("failed to record action: %s", resp)
	}
	if !accepted {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// RecordCost persists one accounting row for billing reconciliation.
func (r *SupabaseUserRepository) RecordCost(ctx context.Context, record *domain.UsageRecord) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	data := map[string]interface{}{
		"user_id":         record.UserID,
		"input_tokens":    record.InputTokens,
		"output_tokens":   record.OutputTokens,
		"thinking_tokens": record.ThinkingTokens,
		"total_cost":      record.TotalCost,
		"created_at":      record.CreatedAt,
	}
	if record.ID != "" {
		data["id"] = record.ID
	}

	_, _, err := client.From("usage_records").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to record cost: %w", err)
	}

	r.logger.Debug("Cost recorded", "user_id", record.UserID, "total_cost", record.TotalCost)
	return nil
}

func (r *SupabaseUserRepository) getRow(userID string) (*userRow, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From("users").
		Select("*", "", false).
		Eq("id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var rows []userRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &rows[0], nil
}
