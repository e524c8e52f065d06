package create_reservation

import (
	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// Request модель запроса на создание бронирования с оплатой
type Request struct {
	ClientID       int64
	ProfessionalID int64

	ServiceCategory string
	Title           string
	Description     *string
	ServiceTags     []string
	Modality        domain.Modality

	Schedule domain.TimeRange

	AddressDisplay string
	AddressCoords  *domain.GeoPoint

	Amount      float64 // Оценочная стоимость услуги
	PlatformFee float64 // Комиссия площадки (уже включена в Amount)
	Currency    string

	CardToken       string // Токенизированная карта
	PaymentMethodID string
	PayerEmail      string

	// IdempotencyKey ключ логической попытки оплаты. Пустое значение -
	// новая попытка, ключ генерируется здесь. Повтор той же попытки
	// (например, после сетевой ошибки) обязан передать прежний ключ
	IdempotencyKey string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ReservationID     string
	PaymentID         string
	ProviderPaymentID string
	Status            string
	UIStatus          string

	// Warning заполняется при success-with-warning исходах
	// (платеж прошел, но запись о нем не сохранилась)
	Warning *string
}
