package transition_status

import (
	transitionStatus "github.com/avolkov/MSP-ReservationService/internal/usecase/transition_status"
)

// TransitionStatusRequest HTTP request model
type TransitionStatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	UIStatus      string `json:"ui_status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionStatus.Response) *StatusResponse {
	return &StatusResponse{
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		UIStatus:      resp.UIStatus,
	}
}
