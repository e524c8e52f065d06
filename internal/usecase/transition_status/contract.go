package transition_status

import (
	"context"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateStatusCAS(ctx context.Context, id string, from, to domain.ReservationStatus) error
	CancelCAS(ctx context.Context, id string, from, to domain.ReservationStatus, reason string) error
}

// ProfessionalRepository интерфейс репозитория флага доступности специалиста
type ProfessionalRepository interface {
	SetAvailability(ctx context.Context, professionalID int64, available bool) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventProducer интерфейс публикации событий бронирований
type EventProducer interface {
	PublishReservationEvent(ctx context.Context, event notifier.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
