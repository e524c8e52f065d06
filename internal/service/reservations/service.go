package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	reservationRepo "github.com/avolkov/MSP-ReservationService/internal/infra/storage/reservation"
	"github.com/avolkov/MSP-ReservationService/internal/service/reservations/models"
)

// Service read-сторона бронирований: карточка, истории, списки
type Service struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID вместе с платежами
// Доступ имеют только стороны бронирования (клиент или специалист)
func (s *Service) GetByID(ctx context.Context, id string, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for actor=%d", id, actorID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reservation.ClientID != actorID && reservation.ProfessionalID != actorID {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%s", actorID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainReservation(reservation)

	payments, err := s.paymentRepo.GetByReservationID(ctx, id)
	if err != nil {
		// Карточка бронирования полезна и без платежей - не роняем весь запрос
		s.logger.Error("GetByID: failed to fetch payments for reservation id=%s: %v", id, err)
	} else {
		resp.Payments = models.FromDomainPayments(payments)
	}

	return resp, nil
}

// GetClientReservations получает историю бронирований клиента
// Опционально фильтрует по статусу хранения
func (s *Service) GetClientReservations(ctx context.Context, clientID int64, status *string) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d, status=%v", clientID, status)

	var domainStatus *domain.ReservationStatus
	if status != nil {
		converted, err := models.ToDomainReservationStatus(*status)
		if err != nil {
			s.logger.Warn("GetClientReservations: invalid status=%s for client=%d", *status, clientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &converted
	}

	reservations, err := s.reservationRepo.GetByClientID(ctx, clientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: fetched %d reservations for client=%d", len(reservations), clientID)
	return models.FromDomainReservationList(reservations), nil
}

// GetProfessionalReservations получает бронирования специалиста с фильтрацией
// по периоду, статусу и включению отмененных
func (s *Service) GetProfessionalReservations(ctx context.Context, req *models.GetProfessionalReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetProfessionalReservations: fetching reservations for professional=%d", req.ProfessionalID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProfessionalReservations: invalid filter for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProfessionalReservations: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfessionalReservations: fetched %d reservations for professional=%d",
		len(reservations), req.ProfessionalID)
	return models.FromDomainReservationList(reservations), nil
}
