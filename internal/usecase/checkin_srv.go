package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airline-api/internal/data/entity"
	"airline-api/internal/data/repository"
	"airline-api/internal/dto/response"
	"airline-api/pkg/clock"
	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

type CheckInService interface {
	// CheckIn assigns the first free seat of the ticket's class on its flight.
	// A ticket that does not exist and a ticket that already has a seat both
	// yield ErrNotFound.
	CheckIn(ctx context.Context, ticketID int64) (*response.CheckInResponse, error)
}

type checkInService struct {
	repo   *repository.Repository
	config utils.BookingConfig
	clock  clock.Clock
	log    *zap.Logger
}

func NewCheckInService(repo *repository.Repository, config utils.BookingConfig, clk clock.Clock, log *zap.Logger) CheckInService {
	if config.CheckInMaxAttempts < 1 {
		config.CheckInMaxAttempts = 1
	}

	return &checkInService{
		repo:   repo,
		config: config,
		clock:  clk,
		log:    log.With(zap.String("service", "checkin")),
	}
}

func (s *checkInService) CheckIn(ctx context.Context, ticketID int64) (*response.CheckInResponse, error) {
	var err error
	for attempt := 1; attempt <= s.config.CheckInMaxAttempts; attempt++ {
		var (
			ticket *entity.Ticket
			seat   *entity.Seat
		)

		ticket, seat, err = s.allocate(ctx, ticketID)
		if err == nil {
			s.log.Info("Seat assigned",
				zap.Int64("ticket_id", ticket.ID),
				zap.Int64("flight_id", ticket.FlightID),
				zap.String("seat", seat.Label),
				zap.Bool("first_class", seat.IsFirstClass),
				zap.Int("attempt", attempt),
			)
			return response.NewCheckInResponse(ticket, seat), nil
		}

		if !errors.Is(err, ErrConflict) {
			break
		}

		if attempt < s.config.CheckInMaxAttempts {
			s.log.Debug("Seat assignment conflict, retrying",
				zap.Int64("ticket_id", ticketID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if waitErr := s.backoff(ctx, attempt); waitErr != nil {
				err = waitErr
				break
			}
		}
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoSeatsAvailable):
		s.log.Warn("Check-in rejected", zap.Int64("ticket_id", ticketID), zap.Error(err))
		return nil, err
	default:
		s.log.Error("Failed to check in", zap.Int64("ticket_id", ticketID), zap.Error(err))
		return nil, fmt.Errorf("check in ticket %d: %w", ticketID, err)
	}
}

// allocate runs one check-in attempt in its own transaction. The ticket row
// is locked first, then the flight row; every check-in takes them in that
// order so two attempts never wait on each other in a cycle.
func (s *checkInService) allocate(ctx context.Context, ticketID int64) (*entity.Ticket, *entity.Seat, error) {
	var (
		ticket *entity.Ticket
		seat   *entity.Seat
	)

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		var err error
		ticket, err = tx.Ticket.FindUnseatedForUpdate(ctx, ticketID)
		if err != nil {
			return err
		}
		if ticket == nil {
			return fmt.Errorf("ticket %d does not exist or already has a seat: %w", ticketID, ErrNotFound)
		}

		flight, err := tx.Flight.LockForSeating(ctx, ticket.FlightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return fmt.Errorf("flight %d of ticket %d: %w", ticket.FlightID, ticketID, ErrNotFound)
		}

		seat, err = tx.Seat.FindFirstFree(ctx, flight.ID, flight.AircraftSerial, ticket.IsFirstClass)
		if err != nil {
			return err
		}
		if seat == nil {
			class := "economy"
			if ticket.IsFirstClass {
				class = "first class"
			}
			return fmt.Errorf("no %s seat left on flight %d: %w", class, flight.ID, ErrNoSeatsAvailable)
		}

		if err := tx.Ticket.AssignSeat(ctx, ticket.ID, seat.Label, seat.AircraftSerial); err != nil {
			return err
		}

		ticket.SeatLabel = &seat.Label
		ticket.AircraftSerial = seat.AircraftSerial
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return ticket, seat, nil
}

func (s *checkInService) backoff(ctx context.Context, attempt int) error {
	wait := jitter(time.Duration(attempt) * s.config.CheckInRetryBackoff)

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTransient, ctx.Err())
	case <-s.clock.After(wait):
		return nil
	}
}
