package create_reservation

import (
	"context"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/paymentgateway"
)

// AvailabilityChecker интерфейс проверки занятости расписания
type AvailabilityChecker interface {
	HasConflict(ctx context.Context, professionalID int64, rng domain.TimeRange) (bool, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	Charge(ctx context.Context, req paymentgateway.ChargeRequest) (*paymentgateway.ChargeResult, error)
	Refund(ctx context.Context, providerPaymentID, idempotencyKey string) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
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
