package professional

import (
	"context"
	"fmt"

	"github.com/avolkov/MSP-ReservationService/pkg/dbmetrics"
	"github.com/avolkov/MSP-ReservationService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий флага доступности специалиста
// Флаг читается matching-слоем (вне этого сервиса) и пишется только внутри
// транзакции перевода статуса: подтверждение instant-бронирования снимает
// специалиста с подбора, пока он занят
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SetAvailability выставляет флаг доступности специалиста
// Upsert: строка специалиста может отсутствовать, если matching-слой
// еще не синхронизировал профиль
func (r *Repository) SetAvailability(ctx context.Context, professionalID int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("professionals").
		Columns("id", "is_available").
		Values(professionalID, available).
		Suffix("ON CONFLICT (id) DO UPDATE SET is_available = EXCLUDED.is_available, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetAvailability - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
