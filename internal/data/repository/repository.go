package repository

import (
	"context"

	"airline-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn inside one database transaction. fn receives a
// Repository bound to that transaction; returning an error rolls back
// everything fn wrote.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *Repository) error) error
}

type Repository struct {
	Airport AirportRepository
	Flight  FlightRepository
	Seat    SeatRepository
	Sale    SaleRepository
	Ticket  TicketRepository
	Transactor
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Transactor = &pgTransactor{db: db, log: log}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Airport: NewAirportRepository(q, log),
		Flight:  NewFlightRepository(q, log),
		Seat:    NewSeatRepository(q, log),
		Sale:    NewSaleRepository(q, log),
		Ticket:  NewTicketRepository(q, log),
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	err := pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		txRepo := newRepository(tx, t.log)
		txRepo.Transactor = joinedTx{repo: txRepo}
		return fn(txRepo)
	})
	return classify(err)
}

// joinedTx makes a nested WithTx run inside the already open transaction.
type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithTx(_ context.Context, fn func(tx *Repository) error) error {
	return fn(j.repo)
}
