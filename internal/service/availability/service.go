package availability

import (
	"context"
	"fmt"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// Service проверка занятости расписания специалиста
//
// Это ранняя дешевая проверка перед обращением к платежному шлюзу.
// Между ней и вставкой бронирования нет блокировки, поэтому узкое окно гонки
// остается; авторитетная защита - exclusion constraint на уровне БД
// (см. migrations/001_init.sql)
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса проверки доступности
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// HasConflict возвращает true, если у специалиста уже есть неотмененное
// бронирование, пересекающееся с интервалом rng
func (s *Service) HasConflict(ctx context.Context, professionalID int64, rng domain.TimeRange) (bool, error) {
	count, err := s.reservationRepo.CountOverlapping(ctx, professionalID, rng, domain.CancelledStatuses)
	if err != nil {
		s.logger.Error("HasConflict: failed to count overlapping reservations for professional=%d: %v", professionalID, err)
		return false, fmt.Errorf("%w: HasConflict - repository error: %v", ErrInternal, err)
	}

	if count > 0 {
		s.logger.Info("HasConflict: professional=%d has %d overlapping reservation(s) for %s", professionalID, count, rng)
		return true, nil
	}

	return false, nil
}
