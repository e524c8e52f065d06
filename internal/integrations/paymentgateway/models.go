package paymentgateway

import "encoding/json"

// ChargeStatus статус списания на стороне шлюза
type ChargeStatus string

const (
	ChargeApproved  ChargeStatus = "approved"
	ChargeInProcess ChargeStatus = "in_process"
	ChargeRejected  ChargeStatus = "rejected"
)

// ChargeRequest параметры списания
// Карта уже токенизирована на клиенте; сырые данные карты сюда не попадают
type ChargeRequest struct {
	Token           string
	PaymentMethodID string
	PayerEmail      string
	Amount          float64
	// IdempotencyKey уникален для логической попытки оплаты.
	// Повторная отправка с тем же ключом не создает второе списание -
	// шлюз дедуплицирует по нему.
	IdempotencyKey string
}

// ChargeResult результат списания
type ChargeResult struct {
	// ProviderID идентификатор платежа на стороне шлюза, нужен для возврата
	ProviderID   string
	Status       ChargeStatus
	StatusDetail string
}

// Approved возвращает true, если списание прошло или находится в обработке
// Только эти два статуса позволяют продолжить сохранение бронирования
func (r *ChargeResult) Approved() bool {
	return r.Status == ChargeApproved || r.Status == ChargeInProcess
}

// Wire-модели шлюза

type chargePayload struct {
	TransactionAmount float64     `json:"transaction_amount"`
	Token             string      `json:"token"`
	PaymentMethodID   string      `json:"payment_method_id"`
	Payer             chargePayer `json:"payer"`
}

type chargePayer struct {
	Email string `json:"email"`
}

type chargeResponse struct {
	ID           json.Number `json:"id"`
	Status       string      `json:"status"`
	StatusDetail string      `json:"status_detail"`
}

type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
