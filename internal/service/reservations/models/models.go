package models

import (
	"errors"
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetProfessionalReservationsRequest запрос на получение бронирований специалиста
type GetProfessionalReservationsRequest struct {
	ProfessionalID  int64
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу хранения (опционально)
	IncludeInactive bool       // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProfessionalReservationsRequest) ToDomainFilter() (domain.ProfessionalReservationsFilter, error) {
	filter := domain.ProfessionalReservationsFilter{
		ProfessionalID:  r.ProfessionalID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// GeoPointResponse координаты адреса
type GeoPointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PaymentResponse данные платежа бронирования
type PaymentResponse struct {
	ID                string  `json:"id"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	Status            string  `json:"status"`
	ProviderPaymentID string  `json:"providerPaymentId"`
	CreatedAt         string  `json:"createdAt"` // ISO 8601
}

// ReservationResponse ответ с данными бронирования
// UIStatus - единственный словарь статусов, по которому могут ветвиться экраны;
// сырой Status отдается для внутренних инструментов
type ReservationResponse struct {
	ID             string `json:"id"`
	ClientID       int64  `json:"clientId"`
	ProfessionalID int64  `json:"professionalId"`

	ServiceCategory string   `json:"serviceCategory"`
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	ServiceTags     []string `json:"serviceTags,omitempty"`

	Modality  string `json:"modality"`
	StartDate string `json:"startDate"` // ISO 8601
	EndDate   string `json:"endDate"`   // ISO 8601

	AddressDisplay string            `json:"addressDisplay"`
	Coordinates    *GeoPointResponse `json:"coordinates,omitempty"`

	PriceEstimated float64  `json:"priceEstimated"`
	PriceFinal     *float64 `json:"priceFinal,omitempty"`
	PlatformFee    float64  `json:"platformFee"`
	Currency       string   `json:"currency"`

	Status   string `json:"status"`
	UIStatus string `json:"uiStatus"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	Payments []PaymentResponse `json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ClientID:           r.ClientID,
		ProfessionalID:     r.ProfessionalID,
		ServiceCategory:    r.ServiceCategory,
		Title:              r.Title,
		Description:        r.Description,
		ServiceTags:        r.ServiceTags,
		Modality:           string(r.Modality),
		StartDate:          r.ScheduledRange.Start.Format(time.RFC3339),
		EndDate:            r.ScheduledRange.End.Format(time.RFC3339),
		AddressDisplay:     r.AddressDisplay,
		PriceEstimated:     r.PriceEstimated,
		PriceFinal:         r.PriceFinal,
		PlatformFee:        r.PlatformFee,
		Currency:           r.Currency,
		Status:             string(r.Status),
		UIStatus:           string(domain.UIStatusOf(r.Status)),
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.AddressCoords != nil {
		resp.Coordinates = &GeoPointResponse{Lat: r.AddressCoords.Lat, Lng: r.AddressCoords.Lng}
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainPayments конвертирует платежи в DTO
func FromDomainPayments(payments []*domain.Payment) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, PaymentResponse{
			ID:                p.ID,
			Amount:            p.Amount,
			Currency:          p.Currency,
			Status:            string(p.Status),
			ProviderPaymentID: p.ProviderPaymentID,
			CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
