package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type outletConfigRepository struct {
	db *database.DB
}

func NewOutletConfigRepository(db *database.DB) attendance.OutletConfigRepository {
	return &outletConfigRepository{db: db}
}

// Get implements attendance.OutletConfigRepository.
func (r *outletConfigRepository) Get(ctx context.Context) (attendance.OutletConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT latitude, longitude, radius_meters, clock_in_time, clock_out_time, updated_at
		FROM outlet_config
		WHERE id = 1
	`

	var cfg attendance.OutletConfig
	err := q.QueryRow(ctx, query).Scan(
		&cfg.Latitude, &cfg.Longitude, &cfg.RadiusMeters, &cfg.ClockInTime, &cfg.ClockOutTime, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DefaultOutletConfig, nil
		}
		return attendance.OutletConfig{}, fmt.Errorf("failed to get outlet config: %w", err)
	}
	return cfg, nil
}

// Upsert implements attendance.OutletConfigRepository.
func (r *outletConfigRepository) Upsert(ctx context.Context, cfg attendance.OutletConfig) (attendance.OutletConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO outlet_config (id, latitude, longitude, radius_meters, clock_in_time, clock_out_time, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_meters = EXCLUDED.radius_meters,
			clock_in_time = EXCLUDED.clock_in_time,
			clock_out_time = EXCLUDED.clock_out_time,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		cfg.Latitude, cfg.Longitude, cfg.RadiusMeters, cfg.ClockInTime, cfg.ClockOutTime,
	).Scan(&cfg.UpdatedAt)
	if err != nil {
		return attendance.OutletConfig{}, fmt.Errorf("failed to save outlet config: %w", err)
	}
	return cfg, nil
}
