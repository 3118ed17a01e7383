package repository

import (
	"context"
	"fmt"

	"airline-api/internal/data/entity"
	"airline-api/pkg/database"

	"go.uber.org/zap"
)

type SaleRepository interface {
	// Create inserts the sale and stores the generated reservation code on it.
	Create(ctx context.Context, sale *entity.Sale) error
}

type saleRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSaleRepository(db database.Querier, log *zap.Logger) SaleRepository {
	return &saleRepository{
		db:  db,
		log: log.With(zap.String("repository", "sale")),
	}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sale (buyer_tax_id, counter, sold_at)
		VALUES ($1, $2, $3)
		RETURNING reservation_code
	`

	err := r.db.QueryRow(ctx, query,
		sale.BuyerTaxID,
		sale.Counter,
		sale.SoldAt,
	).Scan(&sale.ReservationCode)

	if err != nil {
		r.log.Error("Failed to create sale", zap.Error(err))
		return classify(fmt.Errorf("create sale: %w", err))
	}

	return nil
}
