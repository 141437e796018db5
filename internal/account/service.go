package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type CreateRequest struct {
	Name   string
	Login  string
	Secret string
}

type UpdateRequest struct {
	Name     *string
	Login    *string
	Secret   *string
	IsActive *bool
}

type Service interface {
	ListActive(ctx context.Context) ([]*Account, error)
	List(ctx context.Context) ([]*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, req CreateRequest) (*Account, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Account, error)

	// Seed fills an empty pool with SeedCount placeholder accounts. It is a
	// no-op when any account already exists.
	Seed(ctx context.Context) error
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) ListActive(ctx context.Context) ([]*Account, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Account, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	a := &Account{
		Name:     strings.TrimSpace(req.Name),
		Login:    strings.TrimSpace(req.Login),
		Secret:   req.Secret,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Login != nil {
		a.Login = strings.TrimSpace(*req.Login)
	}
	if req.Secret != nil {
		a.Secret = *req.Secret
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for i := 1; i <= SeedCount; i++ {
		a := &Account{
			Name:     fmt.Sprintf("Zoom Account %d", i),
			Login:    fmt.Sprintf("zoom%d@company.com", i),
			Secret:   fmt.Sprintf("SecurePassword%d!", i),
			IsActive: true,
		}
		if err := s.repo.Create(ctx, a); err != nil {
			return fmt.Errorf("seed zoom account %d: %w", i, err)
		}
	}

	s.logger.Info("seeded zoom account pool", "count", SeedCount)
	return nil
}
