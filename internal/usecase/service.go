package usecase

import (
	"print-shop/internal/data/repository"
	"print-shop/pkg/mailer"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth          AuthService
	User          UserService
	Admin         AdminService
	Product       ProductService
	PaymentMethod PaymentMethodService
	Order         OrderService
	Dashboard     DashboardService
}

func NewService(
	repo *repository.Repository,
	disk storage.Disk,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:          NewAuthService(repo, log),
		User:          NewUserService(repo, disk, log),
		Admin:         NewAdminService(repo.Admin, log),
		Product:       NewProductService(repo.Product, disk, log),
		PaymentMethod: NewPaymentMethodService(repo.PaymentMethod, log),
		Order:         NewOrderService(repo, disk, mail, OrderPolicy(config.App.StatusPolicy), log),
		Dashboard:     NewDashboardService(repo, log),
	}
}
