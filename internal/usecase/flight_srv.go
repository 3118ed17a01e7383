package usecase

import (
	"context"
	"fmt"

	"airline-api/internal/data/entity"
	"airline-api/internal/data/repository"
	"airline-api/internal/dto/response"
	"airline-api/pkg/clock"
	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

// FlightService is the read-only flight directory. Airport codes are not
// validated: unknown codes simply match no flights.
type FlightService interface {
	// FlightsDeparting lists flights leaving origin within the look-ahead
	// window, earliest first.
	FlightsDeparting(ctx context.Context, origin string) ([]response.FlightResponse, error)

	// NextAvailableFlights lists the next flights on the route that have at
	// least one priced ticket, earliest first.
	NextAvailableFlights(ctx context.Context, origin, destination string) ([]response.FlightResponse, error)
}

type flightService struct {
	repo   *repository.Repository
	config utils.DirectoryConfig
	clock  clock.Clock
	log    *zap.Logger
}

func NewFlightService(repo *repository.Repository, config utils.DirectoryConfig, clk clock.Clock, log *zap.Logger) FlightService {
	return &flightService{
		repo:   repo,
		config: config,
		clock:  clk,
		log:    log.With(zap.String("service", "flight")),
	}
}

func (s *flightService) FlightsDeparting(ctx context.Context, origin string) ([]response.FlightResponse, error) {
	origin = utils.NormalizeAirportCode(origin)
	now := s.clock.Now()
	later := now.Add(s.config.Window)

	flights, err := s.repo.Flight.FindDepartingBetween(ctx, origin, now, later)
	if err != nil {
		s.log.Error("Failed to get departing flights",
			zap.Error(err),
			zap.String("origin", origin),
		)
		return nil, fmt.Errorf("get flights departing %s: %w", origin, err)
	}

	s.log.Debug("Departing flights retrieved",
		zap.String("origin", origin),
		zap.Int("count", len(flights)),
	)

	return toFlightResponses(flights), nil
}

func (s *flightService) NextAvailableFlights(ctx context.Context, origin, destination string) ([]response.FlightResponse, error) {
	origin = utils.NormalizeAirportCode(origin)
	destination = utils.NormalizeAirportCode(destination)

	flights, err := s.repo.Flight.FindNextAvailable(ctx, origin, destination, s.clock.Now(), s.config.NextFlightsLimit)
	if err != nil {
		s.log.Error("Failed to get next available flights",
			zap.Error(err),
			zap.String("origin", origin),
			zap.String("destination", destination),
		)
		return nil, fmt.Errorf("get next flights %s-%s: %w", origin, destination, err)
	}

	s.log.Debug("Next available flights retrieved",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.Int("count", len(flights)),
	)

	return toFlightResponses(flights), nil
}

func toFlightResponses(flights []*entity.Flight) []response.FlightResponse {
	result := make([]response.FlightResponse, len(flights))
	for i, flight := range flights {
		result[i] = response.FlightToResponse(flight)
	}
	return result
}
