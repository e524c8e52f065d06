package create_reservation

import (
	"errors"
	"net/http"

	"github.com/avolkov/MSP-ReservationService/internal/api/handlers"
	createReservation "github.com/avolkov/MSP-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат дат, ожидается RFC3339"
	msgInvalidInput       = "некорректные данные бронирования"
	msgScheduleConflict   = "выбранное время пересекается с другим бронированием специалиста"
	msgPaymentDeclined    = "платеж отклонен"
	msgPaymentRefunded    = "не удалось сохранить бронирование, платеж возвращен"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, professional_id=%d: %v",
				req.UserID, req.ProfessionalID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrScheduleConflict):
			h.logger.Warn("POST /reservations - Schedule conflict: user_id=%d, professional_id=%d",
				req.UserID, req.ProfessionalID)
			handlers.RespondConflict(w, msgScheduleConflict)

		case errors.Is(err, createReservation.ErrPaymentDeclined):
			h.logger.Warn("POST /reservations - Payment declined: user_id=%d, professional_id=%d",
				req.UserID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgPaymentDeclined)

		case errors.Is(err, createReservation.ErrPersistenceCompensated):
			// Деньги возвращены: клиент должен увидеть именно это,
			// а не предложение повторить попытку
			h.logger.Error("POST /reservations - Persistence failed, payment refunded: user_id=%d, professional_id=%d, error=%v",
				req.UserID, req.ProfessionalID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPaymentRefunded)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, professional_id=%d, error=%v",
				req.UserID, req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, user_id=%d, professional_id=%d",
		result.ReservationID, req.UserID, req.ProfessionalID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
