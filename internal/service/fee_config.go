package service

import (
	"context"
	"errors"
	"fmt"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/pricing"
	"gearshare-backend/internal/repository"
)

type feeConfigService struct {
	repo repository.FeeConfigRepository
}

// NewFeeConfigService serves the versioned fee configuration. The store is the
// only source of fee parameters at request time.
func NewFeeConfigService(repo repository.FeeConfigRepository) FeeConfigService {
	return &feeConfigService{repo: repo}
}

// Active returns the latest published version. A stored configuration that no
// longer validates is reported as ErrConfiguration so no booking is priced
// with it.
func (s *feeConfigService) Active(ctx context.Context) (*domain.FeeConfig, error) {
	cfg, err := s.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no fee configuration has been published", domain.ErrConfiguration)
		}
		return nil, err
	}
	if err := pricing.ValidateConfig(*cfg); err != nil {
		logger.Error("Stored fee configuration is invalid", "version", cfg.Version, "error", err)
		return nil, fmt.Errorf("fee configuration v%d: %w", cfg.Version, err)
	}
	return cfg, nil
}

func (s *feeConfigService) Publish(ctx context.Context, adminID int32, cfg *domain.FeeConfig) error {
	logger.EnterMethod("feeConfigService.Publish", "adminID", adminID, "strategy", cfg.Strategy)

	if err := pricing.ValidateConfig(*cfg); err != nil {
		logger.ExitMethodWithError("feeConfigService.Publish", err)
		return err
	}
	cfg.CreatedBy = adminID
	if err := s.repo.Publish(ctx, cfg); err != nil {
		logger.ExitMethodWithError("feeConfigService.Publish", err)
		return err
	}

	logger.ExitMethod("feeConfigService.Publish", "version", cfg.Version)
	return nil
}

// Bootstrap publishes seed as the first version when nothing has been
// published yet. An existing store is left untouched.
func (s *feeConfigService) Bootstrap(ctx context.Context, seed *domain.FeeConfig) error {
	_, err := s.repo.Latest(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err := pricing.ValidateConfig(*seed); err != nil {
		return fmt.Errorf("bootstrap fee configuration: %w", err)
	}
	if err := s.repo.Publish(ctx, seed); err != nil {
		return err
	}
	logger.Info("Published bootstrap fee configuration", "version", seed.Version, "strategy", seed.Strategy)
	return nil
}
