package adaptor

import (
	"encoding/json"
	"net/http"

	"airline-api/internal/dto/request"
	"airline-api/internal/usecase"
	"airline-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxPurchaseBody bounds the JSON body of a purchase.
const maxPurchaseBody = 1 << 20

type BookingHandler struct {
	reservation usecase.ReservationService
	checkIn     usecase.CheckInService
	log         *zap.Logger
}

func NewBookingHandler(reservation usecase.ReservationService, checkIn usecase.CheckInService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		reservation: reservation,
		checkIn:     checkIn,
		log:         log.With(zap.String("handler", "booking")),
	}
}

// Purchase handles POST /purchase/{flight}
func (h *BookingHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	flightID, ok := utils.ParseID(chi.URLParam(r, "flight"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid flight ID", nil)
		return
	}

	var req request.PurchaseRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxPurchaseBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid purchase body", zap.Int64("flight_id", flightID), zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}

	sale, err := h.reservation.Purchase(r.Context(), flightID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "purchase tickets", "Flight not found")
		return
	}

	utils.ResponseCreated(w, "Purchase completed", sale)
}

// CheckIn handles POST /checkin/{ticket}
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := utils.ParseID(chi.URLParam(r, "ticket"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	boarding, err := h.checkIn.CheckIn(r.Context(), ticketID)
	if err != nil {
		handleServiceError(w, h.log, err, "check in", "Ticket not found or already checked in")
		return
	}

	utils.ResponseSuccess(w, "Check-in completed", boarding)
}
