package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"munidocs/internal/domain"
	"munidocs/internal/port"
)

// UpdateUserConfigInput is the DTO for saving attribution preferences.
type UpdateUserConfigInput struct {
	UserID           uuid.UUID
	DisplayName      string
	Role             string
	SignatureEnabled bool
}

// UserConfigService manages per-user attribution preferences.
type UserConfigService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserConfig, error)
	Update(ctx context.Context, input *UpdateUserConfigInput) (*domain.UserConfig, error)
}

type userConfigService struct {
	repo port.UserConfigRepository
}

// NewUserConfigService creates a new UserConfigService.
func NewUserConfigService(repo port.UserConfigRepository) UserConfigService {
	return &userConfigService{repo: repo}
}

// Get returns the stored preferences, or defaults (signature on) when the
// user has never saved any.
func (s *userConfigService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserConfig, error) {
	cfg, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.UserConfig{UserID: userID, SignatureEnabled: true}, nil
	}
	return cfg, err
}

func (s *userConfigService) Update(ctx context.Context, input *UpdateUserConfigInput) (*domain.UserConfig, error) {
	cfg := &domain.UserConfig{
		UserID:           input.UserID,
		DisplayName:      strings.TrimSpace(input.DisplayName),
		Role:             strings.TrimSpace(input.Role),
		SignatureEnabled: input.SignatureEnabled,
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
