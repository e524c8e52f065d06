package confirm_budget

import (
	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// Request модель запроса на подтверждение сметы из чата
type Request struct {
	// MessageID сообщение чата, в которое встроена смета
	MessageID string

	ClientID       int64
	ProfessionalID int64

	ServiceCategory string

	// Budget payload сметы в том виде, в котором его хранит чат
	Budget domain.BudgetPayload

	AddressDisplay string
	AddressCoords  *domain.GeoPoint
}

// Response модель ответа с бронированием, созданным из сметы
type Response struct {
	ReservationID string
	Status        string
	UIStatus      string

	// Warning заполняется, если бронирование создано, но статус сметы
	// в чате обновить не удалось
	Warning *string
}
