package repository

import (
	"context"
	"errors"
	"fmt"

	"print-shop/internal/data/entity"
	"print-shop/pkg/database"

	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	coll database.Collection
	log  *zap.Logger
}

func NewUserRepository(coll database.Collection, log *zap.Logger) UserRepository {
	return &userRepository{
		coll: coll,
		log:  log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new customer account
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.coll.Insert(ctx, user.ID, user); err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.coll.FindByID(ctx, id, &user)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.coll.FindOne(ctx, database.Filter{"email": email}, &user)
	if errors.Is(err, database.ErrNoDocument) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var users []*entity.User
	if err := r.coll.Find(ctx, nil, pageOptions(limit, offset), &users); err != nil {
		r.log.Error("Failed to list users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.Count(ctx, nil)
	if err != nil {
		r.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) Update(ctx context.Context, id string, fields map[string]any) (database.UpdateResult, error) {
	res, err := setFields(ctx, r.coll, r.log, id, fields)
	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", id),
		)
		return res, fmt.Errorf("update user %s: %w", id, err)
	}
	return res, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.coll.Delete(ctx, id)
	if err != nil {
		r.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id),
		)
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if !deleted {
		return notFound("user", id)
	}
	return nil
}
