package transition_status

import (
	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// actorRole роль действующей стороны, выведенная из самого бронирования
type actorRole string

const (
	roleClient       actorRole = "client"
	roleProfessional actorRole = "professional"
)

// Request модель запроса на перевод статуса бронирования
type Request struct {
	ReservationID string
	ActorID       int64

	// TargetStatus целевой статус хранения. Статусы отмены сюда не передаются:
	// отмена идет через CancelRequest, целевой статус выводится из роли
	TargetStatus domain.ReservationStatus
}

// CancelRequest модель запроса на отмену бронирования
type CancelRequest struct {
	ReservationID string
	ActorID       int64
	Reason        string
}

// Response модель ответа с новым статусом бронирования
type Response struct {
	ReservationID string
	Status        string
	UIStatus      string
}
