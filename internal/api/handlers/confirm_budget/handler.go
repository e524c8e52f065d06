package confirm_budget

import (
	"errors"
	"net/http"

	"github.com/avolkov/MSP-ReservationService/internal/api/handlers"
	confirmBudget "github.com/avolkov/MSP-ReservationService/internal/usecase/confirm_budget"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается RFC3339"
	msgInvalidInput       = "некорректные данные сметы"
	msgScheduleConflict   = "предложенное время пересекается с другим бронированием специалиста"
)

type Handler struct {
	useCase ConfirmBudgetUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBudgetUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/budgets/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmBudgetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /budgets/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /budgets/confirm - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmBudget.ErrInvalidInput):
			h.logger.Warn("POST /budgets/confirm - Invalid input: message_id=%s: %v", req.MessageID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, confirmBudget.ErrScheduleConflict):
			h.logger.Warn("POST /budgets/confirm - Schedule conflict: message_id=%s, professional_id=%d",
				req.MessageID, req.ProfessionalID)
			handlers.RespondConflict(w, msgScheduleConflict)

		default:
			h.logger.Error("POST /budgets/confirm - Failed to confirm budget: message_id=%s, error=%v",
				req.MessageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /budgets/confirm - Budget confirmed: reservation_id=%s, message_id=%s",
		result.ReservationID, req.MessageID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
