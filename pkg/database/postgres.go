package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"print-shop/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface is the subset of pgxpool.Pool used by the JSONB driver
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT  NOT NULL,
		id         TEXT  NOT NULL,
		doc        JSONB NOT NULL,
		PRIMARY KEY (collection, id)
	)
`

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type postgresStore struct {
	db PgxIface
}

// NewPostgresStore opens a connection pool and makes sure the documents table exists.
func NewPostgresStore(ctx context.Context, config utils.DatabaseConfig) (Store, error) {
	poolConfig, err := pgxpool.ParseConfig(config.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	return NewPostgresStoreFromPool(ctx, pool)
}

// NewPostgresStoreFromPool wraps an existing pool.
func NewPostgresStoreFromPool(ctx context.Context, db PgxIface) (Store, error) {
	if _, err := db.Exec(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return &postgresStore{db: db}, nil
}

func (s *postgresStore) Collection(name string) Collection {
	return &postgresCollection{db: s.db, name: name}
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *postgresStore) Close(ctx context.Context) error {
	s.db.Close()
	return nil
}

func (s *postgresStore) Driver() string { return "postgres" }

type postgresCollection struct {
	db   PgxIface
	name string
}

func filterJSON(filter Filter) (string, error) {
	if len(filter) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return string(raw), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (c *postgresCollection) Insert(ctx context.Context, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, id, err)
	}

	_, err = c.db.Exec(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3::jsonb)`,
		c.name, id, string(raw),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s/%s: %w", c.name, id, ErrDuplicate)
		}
		return fmt.Errorf("insert %s/%s: %w", c.name, id, err)
	}
	return nil
}

func (c *postgresCollection) FindByID(ctx context.Context, id string, out any) error {
	var raw []byte
	err := c.db.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		c.name, id,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("find %s/%s: %w", c.name, id, err)
	}
	return json.Unmarshal(raw, out)
}

func (c *postgresCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	where, err := filterJSON(filter)
	if err != nil {
		return err
	}

	var raw []byte
	err = c.db.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND doc @> $2::jsonb LIMIT 1`,
		c.name, where,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("find one in %s: %w", c.name, err)
	}
	return json.Unmarshal(raw, out)
}

func (c *postgresCollection) Find(ctx context.Context, filter Filter, opts FindOptions, out any) error {
	where, err := filterJSON(filter)
	if err != nil {
		return err
	}

	var query strings.Builder
	query.WriteString(`SELECT doc FROM documents WHERE collection = $1 AND doc @> $2::jsonb`)
	args := []any{c.name, where}

	if opts.SortBy != "" {
		if !identifier.MatchString(opts.SortBy) {
			return fmt.Errorf("invalid sort field %q", opts.SortBy)
		}
		dir := "ASC"
		if opts.Desc {
			dir = "DESC"
		}
		expr := "doc->>$3"
		if strings.HasSuffix(opts.SortBy, "_at") {
			expr = "(doc->>$3)::timestamptz"
		}
		fmt.Fprintf(&query, " ORDER BY %s %s, id %s", expr, dir, dir)
		args = append(args, opts.SortBy)
	}
	if opts.Limit > 0 {
		fmt.Fprintf(&query, " LIMIT %d", opts.Limit)
	}
	if opts.Skip > 0 {
		fmt.Fprintf(&query, " OFFSET %d", opts.Skip)
	}

	rows, err := c.db.Query(ctx, query.String(), args...)
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("scan %s row: %w", c.name, err)
		}
		docs = append(docs, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s rows: %w", c.name, err)
	}

	all, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(all, out)
}

func (c *postgresCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	where, err := filterJSON(filter)
	if err != nil {
		return 0, err
	}

	var count int64
	err = c.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = $1 AND doc @> $2::jsonb`,
		c.name, where,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return count, nil
}

func (c *postgresCollection) Update(ctx context.Context, id string, set map[string]any) (UpdateResult, error) {
	patch, err := json.Marshal(set)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("encode patch %s/%s: %w", c.name, id, err)
	}

	tag, err := c.db.Exec(ctx, `
		UPDATE documents SET doc = doc || $3::jsonb
		WHERE collection = $1 AND id = $2 AND doc IS DISTINCT FROM (doc || $3::jsonb)`,
		c.name, id, string(patch),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return UpdateResult{}, fmt.Errorf("update %s/%s: %w", c.name, id, ErrDuplicate)
		}
		return UpdateResult{}, fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	if tag.RowsAffected() > 0 {
		return UpdateResult{Matched: true, Modified: true}, nil
	}

	// nothing changed, find out whether the document exists at all
	var exists bool
	err = c.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE collection = $1 AND id = $2)`,
		c.name, id,
	).Scan(&exists)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("check %s/%s: %w", c.name, id, err)
	}
	return UpdateResult{Matched: exists}, nil
}

func (c *postgresCollection) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := c.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		c.name, id,
	)
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", c.name, id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (c *postgresCollection) EnsureUnique(ctx context.Context, field string) error {
	if !identifier.MatchString(c.name) || !identifier.MatchString(field) {
		return fmt.Errorf("invalid index name %s.%s", c.name, field)
	}

	stmt := fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS documents_%s_%s_key ON documents ((doc->>'%s')) WHERE collection = '%s'`,
		c.name, field, field, c.name,
	)
	if _, err := c.db.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create unique index %s.%s: %w", c.name, field, err)
	}
	return nil
}
