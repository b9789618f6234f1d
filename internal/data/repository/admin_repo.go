package repository

import (
	"context"
	"errors"
	"fmt"

	"print-shop/internal/data/entity"
	"print-shop/pkg/database"

	"go.uber.org/zap"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByID(ctx context.Context, id string) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

type adminRepository struct {
	coll database.Collection
	log  *zap.Logger
}

func NewAdminRepository(coll database.Collection, log *zap.Logger) AdminRepository {
	return &adminRepository{
		coll: coll,
		log:  log.With(zap.String("repository", "admin")),
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	if err := r.coll.Insert(ctx, admin.ID, admin); err != nil {
		r.log.Error("Failed to create admin",
			zap.Error(err),
			zap.String("email", admin.Email),
		)
		return fmt.Errorf("create admin %s: %w", admin.Email, err)
	}
	return nil
}

func (r *adminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.coll.FindByID(ctx, id, &admin)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by ID",
			zap.Error(err),
			zap.String("admin_id", id),
		)
		return nil, fmt.Errorf("find admin by ID %s: %w", id, err)
	}
	return &admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.coll.FindOne(ctx, database.Filter{"email": email}, &admin)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find admin by email %s: %w", email, err)
	}
	return &admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Admin, error) {
	var admins []*entity.Admin
	if err := r.coll.Find(ctx, nil, pageOptions(limit, offset), &admins); err != nil {
		r.log.Error("Failed to list admins", zap.Error(err))
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

func (r *adminRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.Count(ctx, nil)
	if err != nil {
		r.log.Error("Failed to count admins", zap.Error(err))
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return count, nil
}

func (r *adminRepository) Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error) {
	res, err := setFields(ctx, r.coll, r.log, id, fields)
	if err != nil {
		r.log.Error("Failed to update admin",
			zap.Error(err),
			zap.String("admin_id", id),
		)
		return res, fmt.Errorf("update admin %s: %w", id, err)
	}
	return res, nil
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.coll.Delete(ctx, id)
	if err != nil {
		r.log.Error("Failed to delete admin",
			zap.Error(err),
			zap.String("admin_id", id),
		)
		return fmt.Errorf("delete admin %s: %w", id, err)
	}
	if !deleted {
		return notFound("admin", id)
	}
	return nil
}
