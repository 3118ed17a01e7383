package adaptor

import (
	"net/http"

	"airline-api/internal/usecase"
	"airline-api/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListAirports handles GET /
func (h *CatalogHandler) ListAirports(w http.ResponseWriter, r *http.Request) {
	airports, err := h.service.ListAirports(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list airports", "No airports found")
		return
	}

	utils.ResponseSuccess(w, "success", airports)
}
