package get_professional_reservations

import (
	"context"

	"github.com/avolkov/MSP-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetProfessionalReservations(ctx context.Context, req *models.GetProfessionalReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
