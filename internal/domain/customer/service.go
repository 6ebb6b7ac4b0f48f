package customer

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, customerID string) (*Customer, error) {
	return s.repo.Get(ctx, customerID)
}
