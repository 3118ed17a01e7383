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

type TicketRepository interface {
	// CreateBatch inserts all tickets and stores the generated IDs on them.
	CreateBatch(ctx context.Context, tickets []*entity.Ticket) error
	FindByReservationCode(ctx context.Context, reservationCode int64) ([]*entity.Ticket, error)

	// Check-in; both must run in a transaction
	FindUnseatedForUpdate(ctx context.Context, id int64) (*entity.Ticket, error)
	AssignSeat(ctx context.Context, id int64, seatLabel, aircraftSerial string) error
}

type ticketRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketRepository(db database.Querier, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, flight_id, reservation_code, passenger_name, price, is_first_class, seat_label, aircraft_serial`

func (r *ticketRepository) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	query := `
		INSERT INTO ticket (flight_id, reservation_code, passenger_name, price, is_first_class, seat_label, aircraft_serial)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	// One statement per ticket keeps each generated ID paired with its row;
	// the batch still costs a single round trip.
	batch := &pgx.Batch{}
	for _, ticket := range tickets {
		batch.Queue(query,
			ticket.FlightID,
			ticket.ReservationCode,
			ticket.PassengerName,
			ticket.Price,
			ticket.IsFirstClass,
			ticket.SeatLabel,
			ticket.AircraftSerial,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&ticket.ID)
		})
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		r.log.Error("Failed to create batch tickets",
			zap.Error(err),
			zap.Int("count", len(tickets)),
			zap.Int64("flight_id", tickets[0].FlightID),
		)
		return classify(fmt.Errorf("create batch tickets: %w", err))
	}

	return nil
}

func (r *ticketRepository) FindByReservationCode(ctx context.Context, reservationCode int64) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM ticket
		WHERE reservation_code = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, reservationCode)
	if err != nil {
		r.log.Error("Failed to find tickets by reservation code",
			zap.Error(err),
			zap.Int64("reservation_code", reservationCode),
		)
		return nil, classify(fmt.Errorf("find tickets of reservation %d: %w", reservationCode, err))
	}

	tickets, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Ticket])
	if err != nil {
		r.log.Error("Failed to scan ticket rows", zap.Error(err))
		return nil, classify(fmt.Errorf("scan ticket rows: %w", err))
	}

	return tickets, nil
}

func (r *ticketRepository) FindUnseatedForUpdate(ctx context.Context, id int64) (*entity.Ticket, error) {
	// A concurrent check-in of the same ticket blocks here; once it commits
	// the row no longer matches seat_label IS NULL and nothing is returned.
	query := `
		SELECT ` + ticketColumns + `
		FROM ticket
		WHERE id = $1 AND seat_label IS NULL
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to lock ticket", zap.Error(err), zap.Int64("ticket_id", id))
		return nil, classify(fmt.Errorf("lock ticket %d: %w", id, err))
	}

	ticket, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entity.Ticket])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock ticket", zap.Error(err), zap.Int64("ticket_id", id))
		return nil, classify(fmt.Errorf("lock ticket %d: %w", id, err))
	}

	return ticket, nil
}

func (r *ticketRepository) AssignSeat(ctx context.Context, id int64, seatLabel, aircraftSerial string) error {
	query := `
		UPDATE ticket
		SET seat_label = $2, aircraft_serial = $3
		WHERE id = $1 AND seat_label IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, seatLabel, aircraftSerial)
	if err != nil {
		r.log.Warn("Failed to assign seat",
			zap.Error(err),
			zap.Int64("ticket_id", id),
			zap.String("seat", seatLabel),
		)
		return classify(fmt.Errorf("assign seat %s to ticket %d: %w", seatLabel, id, err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: ticket %d already has a seat", ErrConflict, id)
	}

	return nil
}
