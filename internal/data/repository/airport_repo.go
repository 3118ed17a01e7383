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

type AirportRepository interface {
	FindAll(ctx context.Context) ([]*entity.Airport, error)
	FindByCode(ctx context.Context, code string) (*entity.Airport, error)
}

type airportRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAirportRepository(db database.Querier, log *zap.Logger) AirportRepository {
	return &airportRepository{
		db:  db,
		log: log.With(zap.String("repository", "airport")),
	}
}

func (r *airportRepository) FindAll(ctx context.Context) ([]*entity.Airport, error) {
	query := `
		SELECT code, name, city, country
		FROM airport
		ORDER BY code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find airports", zap.Error(err))
		return nil, classify(fmt.Errorf("find airports: %w", err))
	}

	airports, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Airport])
	if err != nil {
		r.log.Error("Failed to scan airport rows", zap.Error(err))
		return nil, classify(fmt.Errorf("scan airport rows: %w", err))
	}

	return airports, nil
}

func (r *airportRepository) FindByCode(ctx context.Context, code string) (*entity.Airport, error) {
	query := `
		SELECT code, name, city, country
		FROM airport
		WHERE code = $1
	`

	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		r.log.Error("Failed to find airport", zap.String("code", code), zap.Error(err))
		return nil, classify(fmt.Errorf("find airport %s: %w", code, err))
	}

	airport, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entity.Airport])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("Failed to scan airport row", zap.String("code", code), zap.Error(err))
		return nil, classify(fmt.Errorf("scan airport %s: %w", code, err))
	}

	return airport, nil
}
