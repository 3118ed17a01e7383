package usecase

import (
	"context"
	"errors"
	"fmt"

	"airline-api/internal/data/entity"
	"airline-api/internal/data/repository"
	"airline-api/internal/dto/request"
	"airline-api/internal/dto/response"
	"airline-api/pkg/clock"
	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

type ReservationService interface {
	// Purchase sells one ticket per passenger on flightID under a single
	// reservation code. Either the sale and all its tickets are stored or
	// nothing is.
	Purchase(ctx context.Context, flightID int64, req *request.PurchaseRequest) (*response.PurchaseResponse, error)
}

type reservationService struct {
	repo  *repository.Repository
	clock clock.Clock
	price PriceFunc
	log   *zap.Logger
}

func NewReservationService(repo *repository.Repository, clk clock.Clock, price PriceFunc, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:  repo,
		clock: clk,
		price: price,
		log:   log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Purchase(ctx context.Context, flightID int64, req *request.PurchaseRequest) (*response.PurchaseResponse, error) {
	if req == nil {
		return nil, invalidField("body", "This field is required")
	}

	req.Normalize()
	if errs := utils.ValidateStruct(req); errs != nil {
		s.log.Warn("Purchase rejected",
			zap.Int64("flight_id", flightID),
			zap.String("errors", utils.FormatValidationErrors(errs)),
		)
		return nil, &ValidationError{Fields: errs}
	}

	var (
		sale    *entity.Sale
		tickets []*entity.Ticket
	)

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		flight, err := tx.Flight.FindByID(ctx, flightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return fmt.Errorf("flight %d: %w", flightID, ErrNotFound)
		}

		now := s.clock.Now()
		if flight.HasDeparted(now) {
			return fmt.Errorf("flight %d departed at %s: %w", flightID, flight.DepartsAt.Format("2006-01-02 15:04"), ErrAlreadyDeparted)
		}

		if req.Counter != nil {
			counter, err := tx.Airport.FindByCode(ctx, *req.Counter)
			if err != nil {
				return err
			}
			if counter == nil {
				return invalidField("counter", "Unknown airport code")
			}
		}

		sale = &entity.Sale{
			BuyerTaxID: req.BuyerTaxID,
			Counter:    req.Counter,
			SoldAt:     now,
		}
		if err := tx.Sale.Create(ctx, sale); err != nil {
			return err
		}

		tickets = make([]*entity.Ticket, len(req.Passengers))
		for i, passenger := range req.Passengers {
			firstClass := *passenger.FirstClass
			tickets[i] = &entity.Ticket{
				FlightID:        flight.ID,
				ReservationCode: sale.ReservationCode,
				PassengerName:   passenger.Name,
				Price:           s.price(firstClass),
				IsFirstClass:    firstClass,
				AircraftSerial:  flight.AircraftSerial,
			}
		}

		return tx.Ticket.CreateBatch(ctx, tickets)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyDeparted), errors.Is(err, ErrInvalidInput):
			s.log.Warn("Purchase rejected", zap.Int64("flight_id", flightID), zap.Error(err))
			return nil, err
		default:
			s.log.Error("Failed to complete purchase", zap.Int64("flight_id", flightID), zap.Error(err))
			return nil, fmt.Errorf("purchase on flight %d: %w", flightID, err)
		}
	}

	s.log.Info("Sale created",
		zap.Int64("reservation_code", sale.ReservationCode),
		zap.Int64("flight_id", flightID),
		zap.Int("tickets", len(tickets)),
	)

	return response.NewPurchaseResponse(sale, flightID, tickets), nil
}
