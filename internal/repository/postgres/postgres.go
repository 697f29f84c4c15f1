package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weathercast/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS prediction_logs (
		id            UUID PRIMARY KEY,
		temperature   DOUBLE PRECISION NOT NULL,
		humidity      DOUBLE PRECISION NOT NULL,
		pressure      DOUBLE PRECISION NOT NULL,
		wind_speed    DOUBLE PRECISION NOT NULL,
		precipitation DOUBLE PRECISION NOT NULL,
		weather_type  TEXT NOT NULL,
		probability   DOUBLE PRECISION NOT NULL,
		is_mock       BOOLEAN NOT NULL DEFAULT FALSE,
		result        JSONB NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS prediction_logs_created_at_idx ON prediction_logs (created_at DESC);
`

// PostgresRepository implements domain.PredictionRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the prediction log table if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to migrate schema: %w", err)
	}
	return nil
}

// SavePredictionLog persists a prediction request/response to PostgreSQL
func (r *PostgresRepository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	query := `
		INSERT INTO prediction_logs (
			id, temperature, humidity, pressure, wind_speed, precipitation,
			weather_type, probability, is_mock, result, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Input.Temperature, entry.Input.Humidity, entry.Input.Pressure,
		entry.Input.WindSpeed, entry.Input.Precipitation,
		string(entry.Result.WeatherType), entry.Result.Probability, entry.Result.IsMock,
		entry.Result, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction log: %w", err)
	}

	return nil
}

// GetRecentPredictions retrieves the latest prediction logs from PostgreSQL
func (r *PostgresRepository) GetRecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	query := `
		SELECT id::text, temperature, humidity, pressure, wind_speed, precipitation,
			   result, created_at
		FROM prediction_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	var results []domain.PredictionLog
	for rows.Next() {
		var l domain.PredictionLog
		err := rows.Scan(
			&l.ID, &l.Input.Temperature, &l.Input.Humidity, &l.Input.Pressure,
			&l.Input.WindSpeed, &l.Input.Precipitation, &l.Result, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan prediction log row: %w", err)
		}
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read prediction log rows: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
