package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"print-shop/pkg/database"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

const (
	CollectionUsers          = "users"
	CollectionAdmins         = "admins"
	CollectionProducts       = "products"
	CollectionOrders         = "orders"
	CollectionPaymentMethods = "payment_methods"
)

// sort key shared by every listing; newest first
const sortCreatedAt = "created_at"

type Repository struct {
	User          UserRepository
	Admin         AdminRepository
	Product       ProductRepository
	PaymentMethod PaymentMethodRepository
	Order         OrderRepository

	store database.Store
}

func NewRepository(store database.Store, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(store.Collection(CollectionUsers), log),
		Admin:         NewAdminRepository(store.Collection(CollectionAdmins), log),
		Product:       NewProductRepository(store.Collection(CollectionProducts), log),
		PaymentMethod: NewPaymentMethodRepository(store.Collection(CollectionPaymentMethods), log),
		Order:         NewOrderRepository(store.Collection(CollectionOrders), log),
		store:         store,
	}
}

// EnsureIndexes creates the unique email indexes for accounts.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	for _, name := range []string{CollectionUsers, CollectionAdmins} {
		if err := r.store.Collection(name).EnsureUnique(ctx, "email"); err != nil {
			return err
		}
	}
	return nil
}

// IsDuplicate reports a unique index violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, database.ErrDuplicate)
}

// setFields applies set and bumps updated_at only when something changed, so
// the reported Modified flag reflects the caller's fields alone.
func setFields(ctx context.Context, coll database.Collection, log *zap.Logger, id string, set map[string]any) (database.UpdateResult, error) {
	res, err := coll.Update(ctx, id, set)
	if err != nil || !res.Modified {
		return res, err
	}

	if _, err := coll.Update(ctx, id, map[string]any{"updated_at": time.Now().UTC()}); err != nil {
		log.Warn("Failed to bump updated_at", zap.Error(err), zap.String("id", id))
	}
	return res, nil
}

func pageOptions(limit, offset int) database.FindOptions {
	return database.FindOptions{
		SortBy: sortCreatedAt,
		Desc:   true,
		Skip:   int64(offset),
		Limit:  int64(limit),
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, utils.ErrNotFound)
}
