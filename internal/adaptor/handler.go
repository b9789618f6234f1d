package adaptor

import (
	"print-shop/internal/usecase"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth          *AuthHandler
	User          *UserHandler
	Admin         *AdminHandler
	Product       *ProductHandler
	PaymentMethod *PaymentMethodHandler
	Order         *OrderHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(service.Auth, log),
		User:          NewUserHandler(service.User, config, log),
		Admin:         NewAdminHandler(service.Admin, service.Dashboard, config, log),
		Product:       NewProductHandler(service.Product, config, log),
		PaymentMethod: NewPaymentMethodHandler(service.PaymentMethod, config, log),
		Order:         NewOrderHandler(service.Order, config, log),
	}
}
