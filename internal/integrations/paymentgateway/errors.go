package paymentgateway

import "errors"

var (
	// ErrChargeRejected возвращается, когда шлюз явно отклонил списание
	// (с кодом причины для пользователя)
	ErrChargeRejected = errors.New("paymentgateway client: charge rejected")

	// ErrGatewayUnavailable возвращается при сетевых ошибках и ответах 5xx
	// Повторы - ответственность вызывающей стороны, с тем же idempotency key
	ErrGatewayUnavailable = errors.New("paymentgateway client: gateway unavailable")

	// ErrRefundFailed возвращается, когда возврат платежа не удался
	ErrRefundFailed = errors.New("paymentgateway client: refund failed")

	// ErrInvalidResponse возвращается при не-2xx без разбираемого тела
	// или при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")
)
