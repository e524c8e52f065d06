package transition_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_status: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("transition_status: reservation not found")

	// ErrAccessDenied возвращается, когда действующая сторона не участвует
	// в бронировании или не имеет права на запрошенный переход
	ErrAccessDenied = errors.New("transition_status: access denied")

	// ErrInvalidTransition возвращается, когда переход запрещен таблицей
	// переходов статусной машины
	ErrInvalidTransition = errors.New("transition_status: invalid status transition")

	// ErrStatusChanged возвращается, когда статус изменился между чтением
	// и CAS-обновлением: конкурентная операция успела первой
	ErrStatusChanged = errors.New("transition_status: status changed concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_status: internal error")
)
