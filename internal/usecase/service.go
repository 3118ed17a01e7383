package usecase

import (
	"math"
	"math/rand/v2"
	"time"

	"airline-api/internal/data/repository"
	"airline-api/pkg/clock"
	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog     CatalogService
	Flight      FlightService
	Reservation ReservationService
	CheckIn     CheckInService
}

func NewService(repo *repository.Repository, config *utils.Config, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		Catalog:     NewCatalogService(repo, log),
		Flight:      NewFlightService(repo, config.Directory, clk, log),
		Reservation: NewReservationService(repo, clk, RandomPrice(config.Booking.PriceMin, config.Booking.PriceMax), log),
		CheckIn:     NewCheckInService(repo, config.Booking, clk, log),
	}
}

// PriceFunc yields the price of one ticket.
type PriceFunc func(firstClass bool) float64

// RandomPrice is the placeholder pricing: uniform in [min, max], in cents.
func RandomPrice(min, max float64) PriceFunc {
	return func(bool) float64 {
		price := min + rand.Float64()*(max-min)
		return math.Round(price*100) / 100
	}
}

// jitter spreads retries of concurrent callers apart.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d/2 + rand.N(d)
}
