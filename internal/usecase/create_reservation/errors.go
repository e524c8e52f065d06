package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// Никакие внешние вызовы к этому моменту не сделаны
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrScheduleConflict возвращается, когда интервал пересекается с другим
	// неотмененным бронированием специалиста. Списание не выполнялось
	ErrScheduleConflict = errors.New("create_reservation: schedule conflict")

	// ErrPaymentDeclined возвращается, когда шлюз отклонил списание или был
	// недоступен. Ничего не сохранено; повтор с теми же платежными данными
	// должен идти с тем же idempotency key
	ErrPaymentDeclined = errors.New("create_reservation: payment declined")

	// ErrPersistenceCompensated возвращается, когда списание прошло, но
	// сохранить бронирование не удалось и деньги возвращены клиенту.
	// Отличается от остальных ошибок: UI должен сообщить "платеж возвращен",
	// а не "попробуйте снова" - повтор создал бы второе списание
	ErrPersistenceCompensated = errors.New("create_reservation: reservation write failed after charge, payment refunded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
