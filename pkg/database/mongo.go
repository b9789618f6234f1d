package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"print-shop/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MONGODB_URI and selects DB_NAME.
func NewMongoStore(ctx context.Context, config utils.DatabaseConfig) (Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(config.MongoURI)
	if config.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(config.MaxConns))
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
	defer cancelPing()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return &mongoStore{client: client, db: client.Database(config.Name)}, nil
}

func (s *mongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *mongoStore) Driver() string { return "mongo" }

type mongoCollection struct {
	coll *mongo.Collection
}

func toBSON(filter Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

func (c *mongoCollection) Insert(ctx context.Context, id string, doc any) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert %s/%s: %w", c.coll.Name(), id, ErrDuplicate)
		}
		return fmt.Errorf("insert %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

func (c *mongoCollection) FindByID(ctx context.Context, id string, out any) error {
	return c.FindOne(ctx, Filter{"_id": id}, out)
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	err := c.coll.FindOne(ctx, toBSON(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter, opts FindOptions, out any) error {
	findOpts := options.Find()
	if opts.SortBy != "" {
		dir := 1
		if opts.Desc {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortBy, Value: dir}, {Key: "_id", Value: dir}})
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := c.coll.Find(ctx, toBSON(filter), findOpts)
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s cursor: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

func (c *mongoCollection) Update(ctx context.Context, id string, set map[string]any) (UpdateResult, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return UpdateResult{}, fmt.Errorf("update %s/%s: %w", c.coll.Name(), id, ErrDuplicate)
		}
		return UpdateResult{}, fmt.Errorf("update %s/%s: %w", c.coll.Name(), id, err)
	}
	return UpdateResult{Matched: res.MatchedCount > 0, Modified: res.ModifiedCount > 0}, nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", c.coll.Name(), id, err)
	}
	return res.DeletedCount > 0, nil
}

func (c *mongoCollection) EnsureUnique(ctx context.Context, field string) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique index %s.%s: %w", c.coll.Name(), field, err)
	}
	return nil
}
