package service

import (
	"context"
	"strings"

	"munidocs/internal/domain"
	"munidocs/internal/port"
)

// NormativaService lists reference legal norms.
type NormativaService interface {
	List(ctx context.Context, category string) ([]domain.Normativa, error)
}

type normativaService struct {
	repo port.NormativaRepository
}

// NewNormativaService creates a new NormativaService.
func NewNormativaService(repo port.NormativaRepository) NormativaService {
	return &normativaService{repo: repo}
}

func (s *normativaService) List(ctx context.Context, category string) ([]domain.Normativa, error) {
	items, err := s.repo.List(ctx, strings.ToLower(strings.TrimSpace(category)))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Normativa{}
	}
	return items, nil
}
