package confirm_budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if strings.TrimSpace(req.MessageID) == "" {
		return fmt.Errorf("%w: messageID is required", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceCategory) == "" {
		return fmt.Errorf("%w: serviceCategory is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Budget.ServiceName) == "" {
		return fmt.Errorf("%w: budget serviceName is required", ErrInvalidInput)
	}

	if len(req.Budget.ServiceName) > domain.MaxTitleLength {
		return fmt.Errorf("%w: budget serviceName exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.Budget.Price <= 0 {
		return fmt.Errorf("%w: budget price must be positive", ErrInvalidInput)
	}

	if len(req.Budget.Currency) != 3 {
		return fmt.Errorf("%w: budget currency must be a 3-letter code", ErrInvalidInput)
	}

	if req.Budget.ProposedDate.IsZero() {
		return fmt.Errorf("%w: budget proposedDate is required", ErrInvalidInput)
	}

	if req.Budget.ProposedDate.Before(now) {
		return fmt.Errorf("%w: budget proposedDate is in the past", ErrInvalidInput)
	}

	if req.Budget.Notes != nil && len(*req.Budget.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: budget notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
