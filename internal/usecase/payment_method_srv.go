package usecase

import (
	"context"
	"time"

	"print-shop/internal/data/entity"
	"print-shop/internal/data/repository"
	"print-shop/internal/dto/request"
	"print-shop/internal/dto/response"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

const msgPaymentMethodNotFound = "Metode pembayaran tidak ditemukan."

type PaymentMethodService interface {
	ListAll(ctx context.Context) ([]response.PaymentMethodResponse, error)
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentMethodResponse], error)
	Get(ctx context.Context, id string) (*response.PaymentMethodResponse, error)
	Create(ctx context.Context, req *request.PaymentMethodRequest) (*response.PaymentMethodResponse, error)
	Update(ctx context.Context, id string, req *request.PaymentMethodRequest) error
	Delete(ctx context.Context, id string) error
}

type paymentMethodService struct {
	methods repository.PaymentMethodRepository
	log     *zap.Logger
}

func NewPaymentMethodService(methods repository.PaymentMethodRepository, log *zap.Logger) PaymentMethodService {
	return &paymentMethodService{
		methods: methods,
		log:     log.With(zap.String("service", "payment_method")),
	}
}

// ListAll feeds the order form.
func (s *paymentMethodService) ListAll(ctx context.Context) ([]response.PaymentMethodResponse, error) {
	methods, err := s.methods.FindAll(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	data := make([]response.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		data = append(data, response.PaymentMethodToResponse(m))
	}
	return data, nil
}

func (s *paymentMethodService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentMethodResponse], error) {
	req.Normalize()

	methods, err := s.methods.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.methods.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]response.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		data = append(data, response.PaymentMethodToResponse(m))
	}
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *paymentMethodService) Get(ctx context.Context, id string) (*response.PaymentMethodResponse, error) {
	method, err := s.methods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, utils.NotFound(msgPaymentMethodNotFound)
	}
	resp := response.PaymentMethodToResponse(method)
	return &resp, nil
}

func (s *paymentMethodService) Create(ctx context.Context, req *request.PaymentMethodRequest) (*response.PaymentMethodResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(s.log, "Create payment method", errs)
	}

	method := &entity.PaymentMethod{
		Base:   entity.NewBase(time.Now()),
		Type:   req.Type,
		Name:   req.Name,
		Number: req.Number,
	}
	if err := s.methods.Create(ctx, method); err != nil {
		return nil, err
	}

	s.log.Info("Payment method created", zap.String("payment_method_id", method.ID))
	resp := response.PaymentMethodToResponse(method)
	return &resp, nil
}

func (s *paymentMethodService) Update(ctx context.Context, id string, req *request.PaymentMethodRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(s.log, "Update payment method", errs)
	}

	res, err := s.methods.Update(ctx, id, map[string]any{
		"type":   req.Type,
		"name":   req.Name,
		"number": req.Number,
	})
	if err != nil {
		return err
	}
	if !res.Matched {
		return utils.NotFound(msgPaymentMethodNotFound)
	}

	s.log.Info("Payment method updated", zap.String("payment_method_id", id))
	return nil
}

func (s *paymentMethodService) Delete(ctx context.Context, id string) error {
	if err := s.methods.Delete(ctx, id); err != nil {
		if errorsIsNotFound(err) {
			return utils.NotFound(msgPaymentMethodNotFound)
		}
		return err
	}
	s.log.Info("Payment method deleted", zap.String("payment_method_id", id))
	return nil
}
