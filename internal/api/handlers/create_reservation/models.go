package create_reservation

import (
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	createReservation "github.com/avolkov/MSP-ReservationService/internal/usecase/create_reservation"
)

// CoordinatesRequest координаты адреса
type CoordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	UserID         int64 `json:"user_id"`
	ProfessionalID int64 `json:"professional_id"`

	ServiceCategory string   `json:"service_category"`
	Title           string   `json:"title"`
	Description     *string  `json:"description,omitempty"`
	ServiceTags     []string `json:"service_tags,omitempty"`
	ServiceModality string   `json:"service_modality"`

	StartDate string `json:"start_date"` // RFC3339
	EndDate   string `json:"end_date"`   // RFC3339

	AddressDisplay string              `json:"address_display"`
	Coordinates    *CoordinatesRequest `json:"coordinates,omitempty"`

	Amount      float64 `json:"amount"`
	PlatformFee float64 `json:"platform_fee"`
	Currency    string  `json:"currency"`

	CardToken       string `json:"card_token"`
	PaymentMethodID string `json:"payment_method_id"`
	PayerEmail      string `json:"payer_email"`

	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// ReservationCreatedResponse HTTP response model
type ReservationCreatedResponse struct {
	ReservationID     string  `json:"reservation_id"`
	PaymentID         string  `json:"payment_id,omitempty"`
	ProviderPaymentID string  `json:"provider_payment_id"`
	Status            string  `json:"status"`
	UIStatus          string  `json:"ui_status"`
	Warning           *string `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	startDate, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(time.RFC3339, r.EndDate)
	if err != nil {
		return nil, err
	}

	schedule, err := domain.NewTimeRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var coords *domain.GeoPoint
	if r.Coordinates != nil {
		coords = &domain.GeoPoint{Lat: r.Coordinates.Lat, Lng: r.Coordinates.Lng}
	}

	return &createReservation.Request{
		ClientID:        r.UserID,
		ProfessionalID:  r.ProfessionalID,
		ServiceCategory: r.ServiceCategory,
		Title:           r.Title,
		Description:     r.Description,
		ServiceTags:     r.ServiceTags,
		Modality:        domain.Modality(r.ServiceModality),
		Schedule:        schedule,
		AddressDisplay:  r.AddressDisplay,
		AddressCoords:   coords,
		Amount:          r.Amount,
		PlatformFee:     r.PlatformFee,
		Currency:        r.Currency,
		CardToken:       r.CardToken,
		PaymentMethodID: r.PaymentMethodID,
		PayerEmail:      r.PayerEmail,
		IdempotencyKey:  r.IdempotencyKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationCreatedResponse {
	return &ReservationCreatedResponse{
		ReservationID:     resp.ReservationID,
		PaymentID:         resp.PaymentID,
		ProviderPaymentID: resp.ProviderPaymentID,
		Status:            resp.Status,
		UIStatus:          resp.UIStatus,
		Warning:           resp.Warning,
	}
}
