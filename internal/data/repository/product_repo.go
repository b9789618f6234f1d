package repository

import (
	"context"
	"errors"
	"fmt"

	"print-shop/internal/data/entity"
	"print-shop/pkg/database"

	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	// FindAll lists newest first; limit 0 returns everything
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	coll database.Collection
	log  *zap.Logger
}

func NewProductRepository(coll database.Collection, log *zap.Logger) ProductRepository {
	return &productRepository{
		coll: coll,
		log:  log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := r.coll.Insert(ctx, product.ID, product); err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
		)
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.coll.FindByID(ctx, id, &product)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id, err)
	}
	return &product, nil
}

func (r *productRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := r.coll.Find(ctx, nil, pageOptions(limit, offset), &products); err != nil {
		r.log.Error("Failed to list products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.Count(ctx, nil)
	if err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error) {
	res, err := setFields(ctx, r.coll, r.log, id, fields)
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", id),
		)
		return res, fmt.Errorf("update product %s: %w", id, err)
	}
	return res, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.coll.Delete(ctx, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id),
		)
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if !deleted {
		return notFound("product", id)
	}
	return nil
}
