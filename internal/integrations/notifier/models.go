package notifier

import "time"

// Типы событий бронирования
const (
	EventReservationCreated = "reservation.created"
	EventStatusChanged      = "reservation.status_changed"
	EventBudgetConfirmed    = "reservation.budget_confirmed"
)

// Event событие бронирования, публикуемое в топик для NotificationDispatcher
type Event struct {
	Type           string    `json:"type"`
	ReservationID  string    `json:"reservation_id"`
	ClientID       int64     `json:"client_id"`
	ProfessionalID int64     `json:"professional_id"`
	Modality       string    `json:"modality"`
	Status         string    `json:"status"`
	UIStatus       string    `json:"ui_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
