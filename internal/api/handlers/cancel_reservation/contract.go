package cancel_reservation

import (
	"context"

	transitionStatus "github.com/avolkov/MSP-ReservationService/internal/usecase/transition_status"
)

type CancelReservationUseCase interface {
	Cancel(ctx context.Context, req *transitionStatus.CancelRequest) (*transitionStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
