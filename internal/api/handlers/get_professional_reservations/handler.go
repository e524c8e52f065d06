package get_professional_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avolkov/MSP-ReservationService/internal/api/handlers"
	"github.com/avolkov/MSP-ReservationService/internal/service/reservations"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidQuery          = "некорректные параметры фильтрации"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalIDStr := vars["professionalId"]

	professionalID, err := strconv.ParseInt(professionalIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/reservations - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	req, err := parseQuery(professionalID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/reservations - Invalid query params: professional_id=%d: %v",
			professionalID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetProfessionalReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/reservations - Invalid filter: professional_id=%d", professionalID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /professionals/{id}/reservations - Failed to get reservations: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/reservations - Fetched %d reservations: professional_id=%d",
		len(result.Reservations), professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
