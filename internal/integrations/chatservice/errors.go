package chatservice

import "errors"

var (
	// ErrMessageNotFound возвращается, когда сообщение чата не найдено
	ErrMessageNotFound = errors.New("chatservice client: message not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("chatservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("chatservice client: invalid response")
)
