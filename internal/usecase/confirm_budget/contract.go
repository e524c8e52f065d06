package confirm_budget

import (
	"context"
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
)

// AvailabilityChecker интерфейс проверки занятости расписания
type AvailabilityChecker interface {
	HasConflict(ctx context.Context, professionalID int64, rng domain.TimeRange) (bool, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// ChatClient интерфейс обратной записи статуса сметы в чат
type ChatClient interface {
	UpdateBudgetStatus(ctx context.Context, messageID string, status domain.BudgetStatus) error
}

// EventProducer интерфейс публикации событий бронирований
type EventProducer interface {
	PublishReservationEvent(ctx context.Context, event notifier.Event) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
