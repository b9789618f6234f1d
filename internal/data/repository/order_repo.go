package repository

import (
	"context"
	"errors"
	"fmt"

	"print-shop/internal/data/entity"
	"print-shop/pkg/database"

	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	// FindAll lists newest first; an empty userID lists every customer's orders
	FindAll(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context, userID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (database.UpdateResult, error)
	AttachPaymentProof(ctx context.Context, id, proof string) (database.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

type orderRepository struct {
	coll database.Collection
	log  *zap.Logger
}

func NewOrderRepository(coll database.Collection, log *zap.Logger) OrderRepository {
	return &orderRepository{
		coll: coll,
		log:  log.With(zap.String("repository", "order")),
	}
}

func ownerFilter(userID string) database.Filter {
	if userID == "" {
		return nil
	}
	return database.Filter{"user_id": userID}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if err := r.coll.Insert(ctx, order.ID, order); err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID),
		)
		return fmt.Errorf("create order %s: %w", order.ID, err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var order entity.Order
	err := r.coll.FindByID(ctx, id, &order)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id, err)
	}
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, error) {
	var orders []*entity.Order
	if err := r.coll.Find(ctx, ownerFilter(userID), pageOptions(limit, offset), &orders); err != nil {
		r.log.Error("Failed to list orders",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, userID string) (int64, error) {
	count, err := r.coll.Count(ctx, ownerFilter(userID))
	if err != nil {
		r.log.Error("Failed to count orders",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (database.UpdateResult, error) {
	res, err := setFields(ctx, r.coll, r.log, id, map[string]any{"status": status})
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id),
			zap.String("status", string(status)),
		)
		return res, fmt.Errorf("update order status %s: %w", id, err)
	}
	return res, nil
}

// AttachPaymentProof records the proof and puts the order back to Konfirmasi.
func (r *orderRepository) AttachPaymentProof(ctx context.Context, id, proof string) (database.UpdateResult, error) {
	res, err := setFields(ctx, r.coll, r.log, id, map[string]any{
		"payment_proof": proof,
		"status":        entity.OrderStatusConfirmation,
	})
	if err != nil {
		r.log.Error("Failed to attach payment proof",
			zap.Error(err),
			zap.String("order_id", id),
		)
		return res, fmt.Errorf("attach payment proof %s: %w", id, err)
	}
	return res, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.coll.Delete(ctx, id)
	if err != nil {
		r.log.Error("Failed to delete order",
			zap.Error(err),
			zap.String("order_id", id),
		)
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if !deleted {
		return notFound("order", id)
	}
	return nil
}
