package repositories

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/maisonlux/storefront/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

// New opens the product database with SQL tracing enabled and verifies the
// connection.
func New(cfg *config.Config) (*Repository, *ProductRepository, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := otelsql.RegisterDBStatsMetrics(db,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL)); err != nil {
		return nil, nil, fmt.Errorf("failed to register db stats metrics: %w", err)
	}

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{DB: db}, NewProductRepo(db), nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
