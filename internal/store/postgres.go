package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures the connection pool.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize caps the number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // bounded by config validation
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PostgresOption) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Search returns cached vehicles matching q.
func (s *PostgresStore) Search(ctx context.Context, q *VehicleQuery) ([]domain.VehicleRecord, error) {
	if q == nil {
		q = &VehicleQuery{}
	}
	dataSQL, args := q.ToSQL()

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("querying vehicles: %w", err)
	}
	defer rows.Close()

	var records []domain.VehicleRecord
	for rows.Next() {
		var r domain.VehicleRecord
		if err := scanVehicle(rows, &r); err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}
	return records, nil
}

// GetByVIN returns the cached vehicle with the given VIN.
func (s *PostgresStore) GetByVIN(ctx context.Context, vin string) (*domain.VehicleRecord, error) {
	r := &domain.VehicleRecord{}
	err := scanVehicle(s.pool.QueryRow(ctx, queryGetVehicleByVIN, vin), r)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting vehicle by VIN: %w", err)
	}
	return r, nil
}

// Add inserts a vehicle. It returns ErrDuplicate when the VIN or the
// provider listing is already cached.
func (s *PostgresStore) Add(ctx context.Context, r *domain.VehicleRecord) error {
	args := pgx.NamedArgs{
		"source":        r.Source,
		"external_id":   r.ExternalID,
		"make":          r.Make,
		"model":         r.Model,
		"year":          r.Year,
		"price":         r.Price,
		"mileage":       r.Mileage,
		"fuel_type":     r.FuelType,
		"transmission":  r.Transmission,
		"location":      r.Location,
		"safety_rating": r.SafetyRating,
		"mpg_city":      r.MPGCity,
		"mpg_highway":   r.MPGHighway,
		"vin":           r.VIN,
		"description":   r.Description,
		"features":      nonNil(r.Features),
		"images":        nonNil(r.Images),
		"dealer_name":   r.DealerName,
		"dealer_phone":  r.DealerPhone,
		"listing_url":   r.ListingURL,
		"listing_date":  r.ListingDate,
		"cached_at":     nil,
	}
	if !r.CachedAt.IsZero() {
		args["cached_at"] = r.CachedAt
	}

	err := s.pool.QueryRow(ctx, queryInsertVehicle, args).Scan(&r.ID, &r.CachedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("inserting vehicle: %w", err)
	}
	return nil
}

// CountAll returns the number of cached vehicles.
func (s *PostgresStore) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, queryCountVehicles).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting vehicles: %w", err)
	}
	return n, nil
}

// scannable abstracts pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanVehicle(row scannable, r *domain.VehicleRecord) error {
	return row.Scan(
		&r.ID, &r.Source, &r.ExternalID, &r.Make, &r.Model, &r.Year,
		&r.Price, &r.Mileage, &r.FuelType, &r.Transmission, &r.Location,
		&r.SafetyRating, &r.MPGCity, &r.MPGHighway, &r.VIN,
		&r.Description, &r.Features, &r.Images,
		&r.DealerName, &r.DealerPhone, &r.ListingURL, &r.ListingDate, &r.CachedAt,
	)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
