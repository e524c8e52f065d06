package cancel_reservation

import (
	transitionStatus "github.com/avolkov/MSP-ReservationService/internal/usecase/transition_status"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// CancelledResponse HTTP response model
type CancelledResponse struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	UIStatus      string `json:"ui_status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionStatus.Response) *CancelledResponse {
	return &CancelledResponse{
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		UIStatus:      resp.UIStatus,
	}
}
