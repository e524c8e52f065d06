package create_reservation

import (
	"fmt"
	"strings"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Валидация идет до любых внешних вызовов: отказ здесь не имеет побочных эффектов
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceCategory) == "" {
		return fmt.Errorf("%w: serviceCategory is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	if len(req.ServiceTags) > domain.MaxServiceTags {
		return fmt.Errorf("%w: too many service tags (max %d)", ErrInvalidInput, domain.MaxServiceTags)
	}

	if req.Modality != domain.ModalityInstant && req.Modality != domain.ModalityQuote {
		return fmt.Errorf("%w: unknown modality %q", ErrInvalidInput, req.Modality)
	}

	if req.Schedule.IsZero() {
		return fmt.Errorf("%w: schedule is required", ErrInvalidInput)
	}

	if !req.Schedule.End.After(req.Schedule.Start) {
		return fmt.Errorf("%w: schedule end must be after start", ErrInvalidInput)
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if req.PlatformFee < 0 || req.PlatformFee >= req.Amount {
		return fmt.Errorf("%w: platformFee must be non-negative and less than amount", ErrInvalidInput)
	}

	if len(req.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CardToken) == "" {
		return fmt.Errorf("%w: cardToken is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.PaymentMethodID) == "" {
		return fmt.Errorf("%w: paymentMethodID is required", ErrInvalidInput)
	}

	if !strings.Contains(req.PayerEmail, "@") {
		return fmt.Errorf("%w: payerEmail is invalid", ErrInvalidInput)
	}

	return nil
}
