package repository

import (
	"context"
	"errors"
	"fmt"

	"airline-api/internal/data/entity"
	"airline-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	FindByAircraft(ctx context.Context, aircraftSerial string) ([]*entity.Seat, error)

	// FindFirstFree returns the lowest-labelled seat of the aircraft in the
	// given class that no ticket of flightID holds, or nil when none is left.
	FindFirstFree(ctx context.Context, flightID int64, aircraftSerial string, firstClass bool) (*entity.Seat, error)
}

type seatRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSeatRepository(db database.Querier, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindByAircraft(ctx context.Context, aircraftSerial string) ([]*entity.Seat, error) {
	query := `
		SELECT label, aircraft_serial, is_first_class
		FROM seat
		WHERE aircraft_serial = $1
		ORDER BY label COLLATE "C"
	`

	rows, err := r.db.Query(ctx, query, aircraftSerial)
	if err != nil {
		r.log.Error("Failed to find seats by aircraft",
			zap.Error(err),
			zap.String("aircraft_serial", aircraftSerial),
		)
		return nil, classify(fmt.Errorf("find seats of aircraft %s: %w", aircraftSerial, err))
	}

	seats, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Seat])
	if err != nil {
		r.log.Error("Failed to scan seat rows", zap.Error(err))
		return nil, classify(fmt.Errorf("scan seat rows: %w", err))
	}

	return seats, nil
}

func (r *seatRepository) FindFirstFree(ctx context.Context, flightID int64, aircraftSerial string, firstClass bool) (*entity.Seat, error) {
	query := `
		SELECT s.label, s.aircraft_serial, s.is_first_class
		FROM seat s
		WHERE s.aircraft_serial = $1
		  AND s.is_first_class = $2
		  AND NOT EXISTS (
		      SELECT 1
		      FROM ticket t
		      WHERE t.flight_id = $3
		        AND t.seat_label = s.label
		  )
		ORDER BY s.label COLLATE "C"
		LIMIT 1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, aircraftSerial, firstClass, flightID).Scan(
		&seat.Label,
		&seat.AircraftSerial,
		&seat.IsFirstClass,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find free seat",
			zap.Error(err),
			zap.Int64("flight_id", flightID),
			zap.String("aircraft_serial", aircraftSerial),
			zap.Bool("first_class", firstClass),
		)
		return nil, classify(fmt.Errorf("find free seat on flight %d: %w", flightID, err))
	}

	return &seat, nil
}
