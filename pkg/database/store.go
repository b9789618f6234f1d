// Package database is a small document store used by the repositories.
//
// Records are flat documents grouped in named collections. Three drivers
// implement the same Collection contract: MongoDB (default), PostgreSQL
// with JSONB documents, and an in-process memory store for tests and local
// development.
package database

import (
	"context"
	"errors"
	"fmt"

	"print-shop/pkg/utils"
)

var (
	ErrNoDocument = errors.New("database: no document")
	ErrDuplicate  = errors.New("database: duplicate key")
)

// Filter matches documents whose fields equal every given value.
type Filter map[string]any

type FindOptions struct {
	SortBy string // fields ending in "_at" hold timestamps
	Desc   bool
	Skip   int64
	Limit  int64 // 0 means no limit
}

// UpdateResult mirrors the matched/modified counters of a single-document update.
type UpdateResult struct {
	Matched  bool
	Modified bool
}

type Collection interface {
	Insert(ctx context.Context, id string, doc any) error
	// FindByID decodes the document into out or returns ErrNoDocument.
	FindByID(ctx context.Context, id string, out any) error
	FindOne(ctx context.Context, filter Filter, out any) error
	// Find decodes matching documents into out, a pointer to a slice.
	// Ties on SortBy are broken by id in the same direction.
	Find(ctx context.Context, filter Filter, opts FindOptions, out any) error
	Count(ctx context.Context, filter Filter) (int64, error)
	// Update sets the given top-level fields.
	Update(ctx context.Context, id string, set map[string]any) (UpdateResult, error)
	Delete(ctx context.Context, id string) (bool, error)
	EnsureUnique(ctx context.Context, field string) error
}

type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Driver() string
}

// Open connects the driver selected in config.
func Open(ctx context.Context, config utils.DatabaseConfig) (Store, error) {
	switch config.Driver {
	case "mongo":
		return NewMongoStore(ctx, config)
	case "postgres":
		return NewPostgresStore(ctx, config)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", config.Driver)
	}
}
