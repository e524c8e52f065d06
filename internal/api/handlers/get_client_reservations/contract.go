package get_client_reservations

import (
	"context"

	"github.com/avolkov/MSP-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetClientReservations(ctx context.Context, clientID int64, status *string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
