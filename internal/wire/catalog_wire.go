package wire

import (
	"airline-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// GET / - all airports
	r.Get("/", catalogHandler.ListAirports)
}
