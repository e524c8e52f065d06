package get_professional_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/service/reservations/models"
)

// parseQuery разбирает query-параметры списка бронирований специалиста:
// start_date, end_date (RFC3339), status, include_inactive
func parseQuery(professionalID int64, query url.Values) (*models.GetProfessionalReservationsRequest, error) {
	req := &models.GetProfessionalReservationsRequest{
		ProfessionalID: professionalID,
	}

	if raw := query.Get("start_date"); raw != "" {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("end_date"); raw != "" {
		endDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("include_inactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
