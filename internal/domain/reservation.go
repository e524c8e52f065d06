package domain

import "time"

// ReservationStatus represents the storage-level status of a reservation
type ReservationStatus string

const (
	StatusPendingApproval ReservationStatus = "pending_approval"
	StatusConfirmed       ReservationStatus = "confirmed"
	StatusOnRoute         ReservationStatus = "on_route"
	StatusInProgress      ReservationStatus = "in_progress"
	StatusCompleted       ReservationStatus = "completed"
	StatusCanceledClient  ReservationStatus = "canceled_client"
	StatusCanceledPro     ReservationStatus = "canceled_pro"
	StatusDisputed        ReservationStatus = "disputed"
)

// Modality describes how the reservation was created:
// immediate dispatch (instant) or negotiated quoting (quote).
// The modality selects which state-machine side effects apply.
type Modality string

const (
	ModalityInstant Modality = "instant"
	ModalityQuote   Modality = "quote"
)

// GeoPoint географическая точка адреса
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Reservation represents a booked service between a client and a professional
type Reservation struct {
	ID             string
	ClientID       int64
	ProfessionalID int64

	ServiceCategory string
	Title           string
	Description     *string
	ServiceTags     []string

	Modality       Modality
	ScheduledRange TimeRange

	AddressDisplay string
	AddressCoords  *GeoPoint

	PriceEstimated float64
	PriceFinal     *float64
	PlatformFee    float64
	Currency       string

	Status ReservationStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the reservation was cancelled by either party
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCanceledClient || r.Status == StatusCanceledPro
}

// IsActive returns true if the reservation still occupies the professional's
// schedule (i.e. participates in overlap checks)
func (r *Reservation) IsActive() bool {
	return !r.IsCancelled()
}

// IsTerminal returns true if no further transition can leave this status
func (r *Reservation) IsTerminal() bool {
	return IsTerminalStatus(r.Status)
}

// ConfirmMarksProfessionalBusy returns true if confirming this reservation
// must also flip the professional's availability flag to "unavailable".
// Only the instant modality takes the professional off the matching pool;
// quote professionals keep receiving requests.
func (r *Reservation) ConfirmMarksProfessionalBusy() bool {
	return r.Modality == ModalityInstant
}

// ProfessionalReservationsFilter фильтр для получения бронирований специалиста
type ProfessionalReservationsFilter struct {
	ProfessionalID  int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные бронирования
}
