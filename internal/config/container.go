package config

import (
	"fmt"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/repository"
	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/service"
	"github.com/Ahiya1/mirror-of-dreams-sub003/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	SupabaseClient    domain.SupabaseClient
	UserRepository    *repository.SupabaseUserRepository
	QuotaService      *service.QuotaService
	CostService       *service.CostService
	SessionService    *service.SessionService
	GenerationService *service.GenerationService
}

// NewContainer creates a new dependency injection container.
// A missing session signing secret is fatal here, at startup, so it can
// never surface as a per-request failure.
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	userRepo := repository.NewSupabaseUserRepository(supabaseClient, appLogger)

	sessionService, err := service.NewSessionService(config.GetJWTSecret(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	quotaService := service.NewQuotaService()
	costService := service.NewCostService()

	generationService, err := service.NewGenerationService(
		userRepo,
		userRepo,
		quotaService,
		costService,
		appLogger,
		config.GetVertexProjectID(),
		config.GetVertexLocation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	return &Container{
		Config:            config,
		Logger:            appLogger,
		SupabaseClient:    supabaseClient,
		UserRepository:    userRepo,
		QuotaService:      quotaService,
		CostService:       costService,
		SessionService:    sessionService,
		GenerationService: generationService,
	}, nil
}
