package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/pkg/dbmetrics"
	"github.com/avolkov/MSP-ReservationService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения exclusion constraint
// (reservations_no_overlap в migrations/001_init.sql)
const pgExclusionViolation = "23P01"

var reservationColumns = []string{
	"id",
	"client_id",
	"professional_id",
	"service_category",
	"title",
	"description",
	"service_tags",
	"modality",
	"start_at",
	"end_at",
	"address_display",
	"address_lat",
	"address_lng",
	"price_estimated",
	"price_final",
	"platform_fee",
	"currency",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// ID генерируется здесь (uuid), если вызывающая сторона его не задала.
// Нарушение exclusion constraint (пересечение расписания специалиста)
// транслируется в ErrScheduleConflict: это авторитетная защита от
// double-booking, прикладная проверка доступности - лишь ранний дешевый отказ.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.ID == "" {
		res.ID = uuid.NewString()
	}

	var lat, lng *float64
	if res.AddressCoords != nil {
		lat = &res.AddressCoords.Lat
		lng = &res.AddressCoords.Lng
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"client_id",
			"professional_id",
			"service_category",
			"title",
			"description",
			"service_tags",
			"modality",
			"start_at",
			"end_at",
			"address_display",
			"address_lat",
			"address_lng",
			"price_estimated",
			"price_final",
			"platform_fee",
			"currency",
			"status",
		).
		Values(
			res.ID,
			res.ClientID,
			res.ProfessionalID,
			res.ServiceCategory,
			res.Title,
			res.Description,
			pq.Array(res.ServiceTags),
			res.Modality,
			res.ScheduledRange.Start,
			res.ScheduledRange.End,
			res.AddressDisplay,
			lat,
			lng,
			res.PriceEstimated,
			res.PriceFinal,
			res.PlatformFee,
			res.Currency,
			res.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, fmt.Errorf("%w: professional_id=%d, range=%s", ErrScheduleConflict, res.ProfessionalID, res.ScheduledRange)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByClientID получает историю бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByProfessionalWithFilter получает бронирования специалиста с фильтрацией
// по периоду, статусу и включению отмененных
func (r *Repository) GetByProfessionalWithFilter(ctx context.Context, filter domain.ProfessionalReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"professional_id": filter.ProfessionalID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_at": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		cancelled := make([]string, len(domain.CancelledStatuses))
		for i, s := range domain.CancelledStatuses {
			cancelled[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": cancelled})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountOverlapping подсчитывает бронирования специалиста, пересекающиеся с
// интервалом [rng.Start, rng.End), за вычетом excludeStatuses.
// Полуоткрытые интервалы: строгие неравенства, смежные границы не пересекаются.
func (r *Repository) CountOverlapping(ctx context.Context, professionalID int64, rng domain.TimeRange, excludeStatuses []domain.ReservationStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Lt{"start_at": rng.End}).
		Where(squirrel.Gt{"end_at": rng.Start})

	if len(excludeStatuses) > 0 {
		excluded := make([]string, len(excludeStatuses))
		for i, s := range excludeStatuses {
			excluded[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": excluded})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatusCAS обновляет статус бронирования по принципу compare-and-swap:
// строка меняется только если текущий статус равен from. Ноль затронутых строк
// означает, что статус уже изменен конкурентной операцией (ErrStaleStatus),
// либо бронирование не существует - вызывающая сторона читает запись заранее.
func (r *Repository) UpdateStatusCAS(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// CancelCAS отменяет бронирование с указанием причины, тем же CAS-механизмом
func (r *Repository) CancelCAS(ctx context.Context, id string, from, to domain.ReservationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelCAS - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelCAS - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelCAS - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в domain.Reservation
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		lat, lng             sql.NullFloat64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.ClientID,
		&res.ProfessionalID,
		&res.ServiceCategory,
		&res.Title,
		&res.Description,
		pq.Array(&res.ServiceTags),
		&res.Modality,
		&res.ScheduledRange.Start,
		&res.ScheduledRange.End,
		&res.AddressDisplay,
		&lat,
		&lng,
		&res.PriceEstimated,
		&res.PriceFinal,
		&res.PlatformFee,
		&res.Currency,
		&res.Status,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		res.AddressCoords = &domain.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
