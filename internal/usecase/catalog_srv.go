package usecase

import (
	"context"
	"fmt"

	"airline-api/internal/data/repository"
	"airline-api/internal/dto/response"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListAirports(ctx context.Context) ([]response.AirportResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListAirports(ctx context.Context) ([]response.AirportResponse, error) {
	airports, err := s.repo.Airport.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list airports", zap.Error(err))
		return nil, fmt.Errorf("list airports: %w", err)
	}

	result := make([]response.AirportResponse, len(airports))
	for i, airport := range airports {
		result[i] = response.AirportToResponse(airport)
	}

	s.log.Debug("Airports listed", zap.Int("count", len(result)))
	return result, nil
}
