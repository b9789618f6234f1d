package repository

import (
	"context"
	"errors"
	"fmt"

	"print-shop/internal/data/entity"
	"print-shop/pkg/database"

	"go.uber.org/zap"
)

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	FindByID(ctx context.Context, id string) (*entity.PaymentMethod, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.PaymentMethod, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

type paymentMethodRepository struct {
	coll database.Collection
	log  *zap.Logger
}

func NewPaymentMethodRepository(coll database.Collection, log *zap.Logger) PaymentMethodRepository {
	return &paymentMethodRepository{
		coll: coll,
		log:  log.With(zap.String("repository", "payment_method")),
	}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	if err := r.coll.Insert(ctx, method.ID, method); err != nil {
		r.log.Error("Failed to create payment method",
			zap.Error(err),
			zap.String("name", method.Name),
		)
		return fmt.Errorf("create payment method %s: %w", method.Name, err)
	}
	return nil
}

func (r *paymentMethodRepository) FindByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := r.coll.FindByID(ctx, id, &method)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment method by ID",
			zap.Error(err),
			zap.String("payment_method_id", id),
		)
		return nil, fmt.Errorf("find payment method by ID %s: %w", id, err)
	}
	return &method, nil
}

func (r *paymentMethodRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.PaymentMethod, error) {
	var methods []*entity.PaymentMethod
	if err := r.coll.Find(ctx, nil, pageOptions(limit, offset), &methods); err != nil {
		r.log.Error("Failed to list payment methods", zap.Error(err))
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

func (r *paymentMethodRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.Count(ctx, nil)
	if err != nil {
		r.log.Error("Failed to count payment methods", zap.Error(err))
		return 0, fmt.Errorf("count payment methods: %w", err)
	}
	return count, nil
}

func (r *paymentMethodRepository) Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error) {
	res, err := setFields(ctx, r.coll, r.log, id, fields)
	if err != nil {
		r.log.Error("Failed to update payment method",
			zap.Error(err),
			zap.String("payment_method_id", id),
		)
		return res, fmt.Errorf("update payment method %s: %w", id, err)
	}
	return res, nil
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.coll.Delete(ctx, id)
	if err != nil {
		r.log.Error("Failed to delete payment method",
			zap.Error(err),
			zap.String("payment_method_id", id),
		)
		return fmt.Errorf("delete payment method %s: %w", id, err)
	}
	if !deleted {
		return notFound("payment method", id)
	}
	return nil
}
