package confirm_budget

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_budget: invalid input data")

	// ErrScheduleConflict возвращается, когда предложенная в смете дата
	// пересекается с другим неотмененным бронированием специалиста
	ErrScheduleConflict = errors.New("confirm_budget: schedule conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_budget: internal error")
)
