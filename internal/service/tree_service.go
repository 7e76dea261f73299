package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

var ErrInvalidSize = errors.New("size must be Small, Medium or Large")

// TreeService handles business logic for the tree catalog
type TreeService struct {
	repo repository.TreeRepository
}

// NewTreeService creates a new tree service
func NewTreeService(repo repository.TreeRepository) *TreeService {
	return &TreeService{
		repo: repo,
	}
}

// ListTrees returns the catalog, narrowed to one size when size is set
func (s *TreeService) ListTrees(ctx context.Context, size string) ([]models.Tree, error) {
	parsed, err := catalog.ParseSize(size)
	if err != nil {
		return nil, ErrInvalidSize
	}
	if parsed == catalog.SizeAll {
		return s.repo.List(ctx, "")
	}
	return s.repo.List(ctx, string(parsed))
}

// Seed inserts the demo catalog. Without overwrite, trees already present are left alone.
func (s *TreeService) Seed(ctx context.Context, overwrite bool) (int, error) {
	n, err := s.repo.Upsert(ctx, repository.DemoTrees(), overwrite)
	if err != nil {
		return 0, fmt.Errorf("failed to seed trees: %w", err)
	}
	return n, nil
}
