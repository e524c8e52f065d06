package confirm_budget

import (
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	confirmBudget "github.com/avolkov/MSP-ReservationService/internal/usecase/confirm_budget"
)

// CoordinatesRequest координаты адреса
type CoordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BudgetRequest payload сметы из сообщения чата
type BudgetRequest struct {
	ServiceName  string  `json:"service_name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	ProposedDate string  `json:"proposed_date"` // RFC3339
	Notes        *string `json:"notes,omitempty"`
}

// ConfirmBudgetRequest HTTP request model
type ConfirmBudgetRequest struct {
	MessageID       string              `json:"message_id"`
	UserID          int64               `json:"user_id"`
	ProfessionalID  int64               `json:"professional_id"`
	ServiceCategory string              `json:"service_category"`
	Budget          BudgetRequest       `json:"budget"`
	AddressDisplay  string              `json:"address_display"`
	Coordinates     *CoordinatesRequest `json:"coordinates,omitempty"`
}

// BudgetConfirmedResponse HTTP response model
type BudgetConfirmedResponse struct {
	ReservationID string  `json:"reservation_id"`
	Status        string  `json:"status"`
	UIStatus      string  `json:"ui_status"`
	Warning       *string `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmBudgetRequest) ToUseCaseRequest() (*confirmBudget.Request, error) {
	proposedDate, err := time.Parse(time.RFC3339, r.Budget.ProposedDate)
	if err != nil {
		return nil, err
	}

	var coords *domain.GeoPoint
	if r.Coordinates != nil {
		coords = &domain.GeoPoint{Lat: r.Coordinates.Lat, Lng: r.Coordinates.Lng}
	}

	return &confirmBudget.Request{
		MessageID:       r.MessageID,
		ClientID:        r.UserID,
		ProfessionalID:  r.ProfessionalID,
		ServiceCategory: r.ServiceCategory,
		Budget: domain.BudgetPayload{
			ServiceName:  r.Budget.ServiceName,
			Price:        r.Budget.Price,
			Currency:     r.Budget.Currency,
			ProposedDate: proposedDate,
			Notes:        r.Budget.Notes,
			Status:       domain.BudgetPending,
		},
		AddressDisplay: r.AddressDisplay,
		AddressCoords:  coords,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBudget.Response) *BudgetConfirmedResponse {
	return &BudgetConfirmedResponse{
		ReservationID: resp.ReservationID,
		Status:        resp.Status,
		UIStatus:      resp.UIStatus,
		Warning:       resp.Warning,
	}
}
