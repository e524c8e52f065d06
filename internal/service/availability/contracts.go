package availability

import (
	"context"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountOverlapping(ctx context.Context, professionalID int64, rng domain.TimeRange, excludeStatuses []domain.ReservationStatus) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
