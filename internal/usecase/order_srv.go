package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"print-shop/internal/data/entity"
	"print-shop/internal/data/repository"
	"print-shop/internal/dto/request"
	"print-shop/internal/dto/response"
	"print-shop/pkg/mailer"
	"print-shop/pkg/metrics"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

// OrderPolicy decides which status changes an admin may make.
type OrderPolicy string

const (
	// PolicyPermissive lets an admin set any status at any time.
	PolicyPermissive OrderPolicy = "permissive"
	// PolicyStrict only allows the forward lifecycle plus cancelling a
	// non-terminal order.
	PolicyStrict OrderPolicy = "strict"
)

const (
	msgOrderNotFound = "Pesanan tidak ditemukan."
	msgProofMissing  = "File bukti pembayaran tidak ditemukan."

	mailTimeout = 10 * time.Second
)

type OrderService interface {
	// Customer
	GetOrderForm(ctx context.Context, productID string) (*response.OrderFormResponse, error)
	CreateOrder(ctx context.Context, userID, productID string, req *request.CreateOrderRequest, design *request.FileUpload) (*response.OrderResponse, error)
	AttachPaymentProof(ctx context.Context, orderID, userID string, proof *request.FileUpload) error

	// ListOrders pages orders newest first. An empty userID lists everyone's.
	ListOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	// GetOrderDetail hides orders of other customers when userID is set.
	GetOrderDetail(ctx context.Context, orderID, userID string) (*response.OrderDetailResponse, error)

	// Admin
	TransitionStatus(ctx context.Context, orderID, status string) (changed bool, err error)
	DeleteOrder(ctx context.Context, orderID string) error
}

type orderService struct {
	repo   *repository.Repository
	disk   storage.Disk
	mail   mailer.Mailer
	policy OrderPolicy
	now    func() time.Time
	log    *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	disk storage.Disk,
	mail mailer.Mailer,
	policy OrderPolicy,
	log *zap.Logger,
) OrderService {
	if policy != PolicyStrict {
		policy = PolicyPermissive
	}
	return &orderService{
		repo:   repo,
		disk:   disk,
		mail:   mail,
		policy: policy,
		now:    time.Now,
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) GetOrderForm(ctx context.Context, productID string) (*response.OrderFormResponse, error) {
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, utils.NotFound(msgProductNotFound)
	}

	methods, err := s.repo.PaymentMethod.FindAll(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	methodResp := make([]response.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		methodResp = append(methodResp, response.PaymentMethodToResponse(m))
	}

	return &response.OrderFormResponse{
		Product:        response.ProductToResponse(product),
		PaymentMethods: methodResp,
		DeliveryOptions: []string{
			string(entity.DeliveryPickup),
			string(entity.DeliveryAddress),
		},
	}, nil
}

// CreateOrder prices the order from the product's size tiers. Every check runs
// before the design is stored or the order is written.
func (s *orderService) CreateOrder(ctx context.Context, userID, productID string, req *request.CreateOrderRequest, design *request.FileUpload) (*response.OrderResponse, error) {
	// 1. Produk harus ada
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, utils.NotFound(msgProductNotFound)
	}

	// 2. Harga per satuan dari ukuran
	unitPrice, ok := product.PriceFor(req.Size)
	if !ok {
		s.log.Warn("Unknown size requested",
			zap.String("product_id", productID),
			zap.String("size", req.Size),
		)
		return nil, utils.InvalidSize("Ukuran tidak valid.")
	}

	// 3. Validasi file desain
	if design.Present() {
		if err := checkUpload(design, "desain", designExts); err != nil {
			return nil, err
		}
	}

	// 4. Validasi sisa form
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(s.log, "Create order", errs)
	}
	if req.Quantity > 0 && unitPrice > 0 && int64(req.Quantity) > math.MaxInt64/unitPrice {
		s.log.Warn("Order total overflows",
			zap.String("product_id", productID),
			zap.Int("quantity", req.Quantity),
			zap.Int64("unit_price", unitPrice),
		)
		return nil, utils.InvalidArgument("Jumlah pesanan terlalu besar.")
	}
	delivery, err := entity.ParseDelivery(req.DeliveryOption, req.Address)
	switch {
	case errors.Is(err, entity.ErrAddressRequired):
		return nil, utils.InvalidArgument("Alamat pengiriman wajib diisi.")
	case err != nil:
		return nil, utils.InvalidArgument("Opsi pengiriman tidak valid.")
	}

	// 5. Simpan desain
	var designKey string
	if design.Present() {
		designKey, err = s.disk.Save(ctx, storage.NamespaceDesigns, design.Filename, design.Content)
		if err != nil {
			return nil, fmt.Errorf("save design: %w", err)
		}
	}

	// 6. Simpan pesanan
	order := &entity.Order{
		Base:          entity.NewBase(s.now()),
		UserID:        userID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		Size:          req.Size,
		UnitPrice:     unitPrice,
		Quantity:      req.Quantity,
		Total:         unitPrice * int64(req.Quantity),
		Design:        designKey,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		Status:        entity.OrderStatusConfirmation,
	}
	order.SetDelivery(delivery)

	if err := s.repo.Order.Create(ctx, order); err != nil {
		removeBlob(ctx, s.disk, s.log, designKey)
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.log.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", order.Quantity),
		zap.Int64("total", order.Total),
	)

	resp := response.OrderToResponse(order, "")
	return &resp, nil
}

func (s *orderService) AttachPaymentProof(ctx context.Context, orderID, userID string, proof *request.FileUpload) error {
	order, err := s.findOwned(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if !proof.Present() {
		return utils.NotFound(msgProofMissing)
	}
	if err := checkUpload(proof, "bukti pembayaran", designExts); err != nil {
		return err
	}

	key, err := s.disk.Save(ctx, storage.NamespacePaymentProofs, proof.Filename, proof.Content)
	if err != nil {
		return fmt.Errorf("save payment proof: %w", err)
	}

	res, err := s.repo.Order.AttachPaymentProof(ctx, order.ID, key)
	if err != nil {
		removeBlob(ctx, s.disk, s.log, key)
		return err
	}
	if !res.Matched {
		// deleted between the lookup and the update
		removeBlob(ctx, s.disk, s.log, key)
		return utils.NotFound(msgOrderNotFound)
	}
	if order.PaymentProof != "" && order.PaymentProof != key {
		removeBlob(ctx, s.disk, s.log, order.PaymentProof)
	}

	metrics.PaymentProofsUploaded.Inc()
	s.log.Info("Payment proof attached",
		zap.String("order_id", order.ID),
		zap.String("previous_status", string(order.Status)),
		zap.String("proof", key),
	)
	return nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	req.Normalize()

	orders, err := s.repo.Order.FindAll(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Order.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	data := make([]response.OrderResponse, 0, len(orders))
	for _, o := range orders {
		name, ok := names[o.UserID]
		if !ok {
			name = s.ownerName(ctx, o.UserID)
			names[o.UserID] = name
		}
		data = append(data, response.OrderToResponse(o, name))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *orderService) GetOrderDetail(ctx context.Context, orderID, userID string) (*response.OrderDetailResponse, error) {
	order, err := s.findOwned(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	detail := &response.OrderDetailResponse{}
	for _, st := range entity.OrderStatuses() {
		detail.Statuses = append(detail.Statuses, string(st))
	}

	// the product may have been deleted since the order was placed
	product, err := s.repo.Product.FindByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}
	if product != nil {
		p := response.ProductToResponse(product)
		detail.Product = &p
	}

	name := response.UnknownCustomer
	user, err := s.repo.User.FindByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		u := response.UserToResponse(user)
		detail.Customer = &u
		name = user.Name
	}

	detail.Order = response.OrderToResponse(order, name)
	return detail, nil
}

// ==================== ADMIN METHODS ====================

// TransitionStatus reports changed=false when the order already had status.
func (s *orderService) TransitionStatus(ctx context.Context, orderID, status string) (bool, error) {
	orderID = strings.TrimSpace(orderID)
	status = strings.TrimSpace(status)
	if orderID == "" || status == "" {
		return false, utils.InvalidArgument("ID pesanan atau status tidak valid.")
	}
	next, ok := entity.ParseOrderStatus(status)
	if !ok {
		metrics.StatusTransitions.WithLabelValues(status, "rejected").Inc()
		return false, utils.InvalidArgument("ID pesanan atau status tidak valid.")
	}

	if s.policy == PolicyStrict {
		order, err := s.repo.Order.FindByID(ctx, orderID)
		if err != nil {
			return false, err
		}
		if order == nil {
			return false, utils.NotFound(msgOrderNotFound)
		}
		if !order.Status.CanTransitionTo(next) {
			metrics.StatusTransitions.WithLabelValues(string(next), "rejected").Inc()
			s.log.Warn("Status transition rejected",
				zap.String("order_id", orderID),
				zap.String("from", string(order.Status)),
				zap.String("to", string(next)),
			)
			return false, utils.InvalidArgument(fmt.Sprintf("Status tidak dapat diubah dari %s ke %s.", order.Status, next))
		}
	}

	res, err := s.repo.Order.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return false, err
	}
	if !res.Matched {
		return false, utils.NotFound(msgOrderNotFound)
	}
	if !res.Modified {
		metrics.StatusTransitions.WithLabelValues(string(next), "unchanged").Inc()
		s.log.Info("Order status unchanged", zap.String("order_id", orderID), zap.String("status", string(next)))
		return false, nil
	}

	metrics.StatusTransitions.WithLabelValues(string(next), "changed").Inc()
	s.log.Info("Order status updated", zap.String("order_id", orderID), zap.String("status", string(next)))

	s.notifyStatus(ctx, orderID)
	return true, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return utils.NotFound(msgOrderNotFound)
	}

	if err := s.repo.Order.Delete(ctx, orderID); err != nil {
		if errorsIsNotFound(err) {
			return utils.NotFound(msgOrderNotFound)
		}
		return err
	}
	removeBlob(ctx, s.disk, s.log, order.Design)
	removeBlob(ctx, s.disk, s.log, order.PaymentProof)

	metrics.OrdersDeleted.Inc()
	s.log.Info("Order deleted", zap.String("order_id", orderID))
	return nil
}

// ==================== HELPER METHODS ====================

// findOwned loads an order, treating another customer's order as missing.
func (s *orderService) findOwned(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (userID != "" && order.UserID != userID) {
		return nil, utils.NotFound(msgOrderNotFound)
	}
	return order, nil
}

func (s *orderService) ownerName(ctx context.Context, userID string) string {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to resolve order owner", zap.Error(err), zap.String("user_id", userID))
		return response.UnknownCustomer
	}
	if user == nil {
		return response.UnknownCustomer
	}
	return user.Name
}

// notifyStatus mails the owner about a status change. Failures are logged only.
func (s *orderService) notifyStatus(ctx context.Context, orderID string) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil || order == nil {
		s.log.Warn("Skipping status mail, order unavailable", zap.Error(err), zap.String("order_id", orderID))
		return
	}
	user, err := s.repo.User.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		s.log.Warn("Skipping status mail, owner unavailable", zap.Error(err), zap.String("order_id", orderID))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()

	subject := fmt.Sprintf("Status pesanan %s: %s", order.ProductName, order.Status)
	body := fmt.Sprintf(
		"<p>Halo %s,</p><p>Status pesanan <b>%s</b> (%d x %s) sekarang <b>%s</b>.</p>",
		html.EscapeString(user.Name),
		html.EscapeString(order.ProductName),
		order.Quantity,
		html.EscapeString(order.Size),
		html.EscapeString(string(order.Status)),
	)
	if err := s.mail.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Warn("Failed to send status mail", zap.Error(err), zap.String("order_id", orderID))
	}
}
