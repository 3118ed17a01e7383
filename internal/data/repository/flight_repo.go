package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airline-api/internal/data/entity"
	"airline-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FlightRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Flight, error)

	// Directory queries
	FindDepartingBetween(ctx context.Context, origin string, from, to time.Time) ([]*entity.Flight, error)
	FindNextAvailable(ctx context.Context, origin, destination string, after time.Time, limit int) ([]*entity.Flight, error)

	// LockForSeating locks the flight row until the surrounding transaction
	// ends, serialising seat assignment on that flight. Must run in a transaction.
	LockForSeating(ctx context.Context, id int64) (*entity.Flight, error)
}

type flightRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFlightRepository(db database.Querier, log *zap.Logger) FlightRepository {
	return &flightRepository{
		db:  db,
		log: log.With(zap.String("repository", "flight")),
	}
}

const flightColumns = `f.id, f.aircraft_serial, f.departs_at, f.arrives_at, f.origin, f.destination`

func (r *flightRepository) FindByID(ctx context.Context, id int64) (*entity.Flight, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flight f
		WHERE f.id = $1
	`

	return r.findOne(ctx, "find flight by ID", query, id)
}

func (r *flightRepository) LockForSeating(ctx context.Context, id int64) (*entity.Flight, error) {
	// NO KEY UPDATE does not conflict with the KEY SHARE lock taken by the
	// foreign-key check of concurrent ticket inserts.
	query := `
		SELECT ` + flightColumns + `
		FROM flight f
		WHERE f.id = $1
		FOR NO KEY UPDATE
	`

	return r.findOne(ctx, "lock flight for seating", query, id)
}

func (r *flightRepository) FindDepartingBetween(ctx context.Context, origin string, from, to time.Time) ([]*entity.Flight, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flight f
		WHERE f.origin = $1
		  AND f.departs_at BETWEEN $2 AND $3
		ORDER BY f.departs_at, f.id
	`

	rows, err := r.db.Query(ctx, query, origin, from, to)
	if err != nil {
		r.log.Error("Failed to find departing flights",
			zap.Error(err),
			zap.String("origin", origin),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, classify(fmt.Errorf("find flights departing %s: %w", origin, err))
	}

	return r.collect(rows)
}

func (r *flightRepository) FindNextAvailable(ctx context.Context, origin, destination string, after time.Time, limit int) ([]*entity.Flight, error) {
	// A flight is on sale when at least one priced ticket exists for it.
	query := `
		SELECT ` + flightColumns + `
		FROM flight f
		WHERE f.origin = $1
		  AND f.destination = $2
		  AND f.departs_at > $3
		  AND EXISTS (
		      SELECT 1
		      FROM ticket t
		      WHERE t.flight_id = f.id
		        AND t.price IS NOT NULL
		  )
		ORDER BY f.departs_at, f.id
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, origin, destination, after, limit)
	if err != nil {
		r.log.Error("Failed to find next available flights",
			zap.Error(err),
			zap.String("origin", origin),
			zap.String("destination", destination),
		)
		return nil, classify(fmt.Errorf("find next flights %s-%s: %w", origin, destination, err))
	}

	return r.collect(rows)
}

func (r *flightRepository) findOne(ctx context.Context, op, query string, id int64) (*entity.Flight, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.Int64("flight_id", id))
		return nil, classify(fmt.Errorf("%s %d: %w", op, id, err))
	}

	flight, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entity.Flight])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.Int64("flight_id", id))
		return nil, classify(fmt.Errorf("%s %d: %w", op, id, err))
	}

	return flight, nil
}

func (r *flightRepository) collect(rows pgx.Rows) ([]*entity.Flight, error) {
	flights, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Flight])
	if err != nil {
		r.log.Error("Failed to scan flight rows", zap.Error(err))
		return nil, classify(fmt.Errorf("scan flight rows: %w", err))
	}
	return flights, nil
}
