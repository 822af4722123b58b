package storage

import (
	"context"
	"fmt"

	"catalogadmin/internal/domain/catalog"
	"catalogadmin/internal/recordstore/memstore"
	"catalogadmin/internal/recordstore/mongostore"
	"catalogadmin/internal/recordstore/pgstore"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container owns the catalog collections for the configured driver and the
// connection behind them.
type Container struct {
	Driver  string
	Catalog catalog.Store

	pool  *pgxpool.Pool // nil unless Driver == "postgres"
	mongo *mongo.Client // nil unless Driver == "mongo"
}

// NewPostgres stores every collection as jsonb rows in one documents table.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Container, error) {
	if pool == nil {
		return nil, fmt.Errorf("storage container pool is nil")
	}
	if err := pgstore.EnsureSchema(ctx, pool); err != nil {
		return nil, err
	}

	return &Container{
		Driver: "postgres",
		pool:   pool,
		Catalog: catalog.Store{
			Categories:    pgstore.New[catalog.Category](pool, catalog.CategoriesCollection),
			Subcategories: pgstore.New[catalog.Subcategory](pool, catalog.SubcategoriesCollection),
			Products:      pgstore.New[catalog.Product](pool, catalog.ProductsCollection),
		},
	}, nil
}

// NewMongo uses one Mongo collection per catalog collection and creates the
// unique subcategory name index.
func NewMongo(ctx context.Context, client *mongo.Client, db *mongo.Database) (*Container, error) {
	subcategories := mongostore.New[catalog.Subcategory](db, catalog.SubcategoriesCollection)
	if err := subcategories.EnsureUnique(ctx, "category_id", "sub_name"); err != nil {
		return nil, err
	}

	return &Container{
		Driver: "mongo",
		mongo:  client,
		Catalog: catalog.Store{
			Categories:    mongostore.New[catalog.Category](db, catalog.CategoriesCollection),
			Subcategories: subcategories,
			Products:      mongostore.New[catalog.Product](db, catalog.ProductsCollection),
		},
	}, nil
}

// NewMemory keeps everything in process; data is lost on restart.
func NewMemory() *Container {
	return &Container{
		Driver: "memory",
		Catalog: catalog.Store{
			Categories:    memstore.New[catalog.Category](catalog.CategoriesCollection),
			Subcategories: memstore.New[catalog.Subcategory](catalog.SubcategoriesCollection).Unique("category_id", "sub_name"),
			Products:      memstore.New[catalog.Product](catalog.ProductsCollection),
		},
	}
}

// Stats reports pool statistics for expvar; nil for drivers without a pool.
func (c *Container) Stats() any {
	if c.pool == nil {
		return nil
	}
	s := c.pool.Stat()
	return map[string]any{
		"total_conns":    s.TotalConns(),
		"idle_conns":     s.IdleConns(),
		"acquired_conns": s.AcquiredConns(),
		"max_conns":      s.MaxConns(),
	}
}

// Ping checks the underlying connection.
func (c *Container) Ping(ctx context.Context) error {
	switch {
	case c.pool != nil:
		return c.pool.Ping(ctx)
	case c.mongo != nil:
		return c.mongo.Ping(ctx, nil)
	}
	return nil
}

func (c *Container) Close(ctx context.Context) error {
	switch {
	case c.pool != nil:
		c.pool.Close()
	case c.mongo != nil:
		return c.mongo.Disconnect(ctx)
	}
	return nil
}
