package usecase

import (
	"context"

	"print-shop/internal/data/repository"
	"print-shop/internal/dto/response"

	"go.uber.org/zap"
)

type DashboardService interface {
	Totals(ctx context.Context) (*response.DashboardResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Totals(ctx context.Context) (*response.DashboardResponse, error) {
	users, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.Product.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.Order.Count(ctx, "")
	if err != nil {
		return nil, err
	}

	return &response.DashboardResponse{
		TotalUsers:    users,
		TotalProducts: products,
		TotalOrders:   orders,
	}, nil
}
