// Package mongostore stores catalog documents in MongoDB, one Mongo
// collection per catalog collection.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"catalogadmin/internal/recordstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection[T any] struct {
	coll *mongo.Collection
}

func New[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

func (c *Collection[T]) Name() string { return c.coll.Name() }

// NewID keeps ObjectID ordering and readability while storing ids as strings.
func (c *Collection[T]) NewID() string { return primitive.NewObjectID().Hex() }

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", c.Name(), mapWriteError(err))
	}
	return nil
}

func (c *Collection[T]) Find(ctx context.Context, filter recordstore.Filter) ([]T, error) {
	return c.find(ctx, filterDoc(filter))
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var v T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, recordstore.ErrNotFound
		}
		return nil, fmt.Errorf("find %s %s: %w", c.Name(), id, err)
	}
	return &v, nil
}

func (c *Collection[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return c.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (c *Collection[T]) UpdateByID(ctx context.Context, id string, fields recordstore.Fields) error {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		set[k] = v
	}

	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s %s: %w", c.Name(), id, mapWriteError(err))
	}
	if res.MatchedCount == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) Count(ctx context.Context, filter recordstore.Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filterDoc(filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.Name(), err)
	}
	return n, nil
}

// EnsureUnique creates a compound unique index over keys, in order.
func (c *Collection[T]) EnsureUnique(ctx context.Context, keys ...string) error {
	spec := bson.D{}
	for _, k := range keys {
		spec = append(spec, bson.E{Key: k, Value: 1})
	}

	model := mongo.IndexModel{Keys: spec, Options: options.Index().SetUnique(true)}
	if _, err := c.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create unique index on %s: %w", c.Name(), err)
	}
	return nil
}

func (c *Collection[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.Name(), err)
	}

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return out, nil
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", recordstore.ErrDuplicate, err)
	}
	return err
}

func filterDoc(filter recordstore.Filter) bson.M {
	if len(filter) == 0 {
		return bson.M{}
	}
	return bson.M(filter)
}
