package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrScheduleConflict возвращается, когда exclusion constraint БД отклонил
	// вставку из-за пересечения расписания специалиста
	ErrScheduleConflict = errors.New("reservation.repository: schedule conflict")

	// ErrStaleStatus возвращается, когда CAS-обновление статуса не нашло строку
	// с ожидаемым текущим статусом (статус уже изменен другим участником)
	ErrStaleStatus = errors.New("reservation.repository: status already changed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
