package transition_status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/internal/infra/storage/reservation"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
)

// UseCase переводит бронирование между статусами
//
// Чтение и CAS-обновление разнесены по времени, поэтому само обновление
// условное: строка меняется только из того статуса, который был прочитан.
// Ноль затронутых строк означает проигранную гонку, а не ошибку БД.
// Побочный эффект у перехода ровно один: подтверждение instant-бронирования
// снимает специалиста с подбора, и этот флаг пишется в той же транзакции
type UseCase struct {
	reservationRepo  ReservationRepository
	professionalRepo ProfessionalRepository
	txManager        TransactionManager
	events           EventProducer
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	professionalRepo ProfessionalRepository,
	txManager TransactionManager,
	events EventProducer,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		professionalRepo: professionalRepo,
		txManager:        txManager,
		events:           events,
		logger:           logger,
	}
}

// Execute переводит бронирование в явно заданный целевой статус
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionStatus: reservation=%s, actor=%d, target=%s",
		req.ReservationID, req.ActorID, req.TargetStatus)

	// 1. Валидация входных данных
	if err := validateIDs(req.ReservationID, req.ActorID); err != nil {
		return nil, err
	}
	if !domain.IsValidStatus(req.TargetStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.TargetStatus)
	}
	if req.TargetStatus == domain.StatusCanceledClient || req.TargetStatus == domain.StatusCanceledPro {
		return nil, fmt.Errorf("%w: cancellation goes through the cancel operation", ErrInvalidInput)
	}

	// 2. Чтение текущего состояния
	res, err := uc.loadReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	// 3. Авторизация: роль выводится из того, какой стороной бронирования
	// является действующий пользователь
	role, ok := roleOf(res, req.ActorID)
	if !ok {
		uc.logger.Warn("TransitionStatus: actor=%d is not a party of reservation=%s", req.ActorID, res.ID)
		return nil, ErrAccessDenied
	}

	// Движение вперед - только специалист; спор открывают обе стороны
	if req.TargetStatus != domain.StatusDisputed && role != roleProfessional {
		uc.logger.Warn("TransitionStatus: actor=%d (%s) may not move reservation=%s forward",
			req.ActorID, role, res.ID)
		return nil, fmt.Errorf("%w: forward transitions are professional-driven", ErrAccessDenied)
	}

	// 4. Проверка по таблице переходов
	if !domain.CanTransition(res.Status, req.TargetStatus) {
		uc.logger.Warn("TransitionStatus: illegal transition %s -> %s for reservation=%s",
			res.Status, req.TargetStatus, res.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, req.TargetStatus)
	}

	// 5. CAS-обновление и флаг доступности в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.UpdateStatusCAS(txCtx, res.ID, res.Status, req.TargetStatus); err != nil {
			return err
		}

		if req.TargetStatus == domain.StatusConfirmed && res.ConfirmMarksProfessionalBusy() {
			if err := uc.professionalRepo.SetAvailability(txCtx, res.ProfessionalID, false); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(res.ID, err)
	}

	uc.publishStatusChanged(ctx, res, req.TargetStatus)

	uc.logger.Info("TransitionStatus: reservation=%s moved %s -> %s", res.ID, res.Status, req.TargetStatus)

	return &Response{
		ReservationID: res.ID,
		Status:        string(req.TargetStatus),
		UIStatus:      string(domain.UIStatusOf(req.TargetStatus)),
	}, nil
}

// Cancel отменяет бронирование; целевой статус выводится из роли стороны
func (uc *UseCase) Cancel(ctx context.Context, req *CancelRequest) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%s, actor=%d", req.ReservationID, req.ActorID)

	// 1. Валидация входных данных
	if err := validateIDs(req.ReservationID, req.ActorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// 2. Чтение текущего состояния
	res, err := uc.loadReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	// 3. Отменять может любая из сторон, целевой статус фиксирует чью-то отмену
	role, ok := roleOf(res, req.ActorID)
	if !ok {
		uc.logger.Warn("CancelReservation: actor=%d is not a party of reservation=%s", req.ActorID, res.ID)
		return nil, ErrAccessDenied
	}

	target := domain.StatusCanceledClient
	if role == roleProfessional {
		target = domain.StatusCanceledPro
	}

	// 4. Проверка по таблице переходов (отмена запрещена из терминальных статусов)
	if !domain.CanTransition(res.Status, target) {
		uc.logger.Warn("CancelReservation: illegal transition %s -> %s for reservation=%s",
			res.Status, target, res.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, target)
	}

	// 5. CAS-отмена в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return uc.reservationRepo.CancelCAS(txCtx, res.ID, res.Status, target, req.Reason)
	})
	if err != nil {
		return nil, uc.mapTxError(res.ID, err)
	}

	uc.publishStatusChanged(ctx, res, target)

	uc.logger.Info("CancelReservation: reservation=%s cancelled (%s)", res.ID, target)

	return &Response{
		ReservationID: res.ID,
		Status:        string(target),
		UIStatus:      string(domain.UIStatusOf(target)),
	}, nil
}

func validateIDs(reservationID string, actorID int64) error {
	if strings.TrimSpace(reservationID) == "" {
		return fmt.Errorf("%w: reservationID is required", ErrInvalidInput)
	}
	if actorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	return nil
}

// roleOf определяет, какой стороной бронирования является действующий
// пользователь. Клиентская роль имеет приоритет при совпадении ID
func roleOf(res *domain.Reservation, actorID int64) (actorRole, bool) {
	switch {
	case res.ClientID == actorID:
		return roleClient, true
	case res.ProfessionalID == actorID:
		return roleProfessional, true
	default:
		return "", false
	}
}

func (uc *UseCase) loadReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservation.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("TransitionStatus: failed to load reservation %s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to load reservation: %v", ErrInternal, err)
	}
	return res, nil
}

// mapTxError транслирует ошибки транзакции в ошибки usecase
func (uc *UseCase) mapTxError(reservationID string, err error) error {
	if errors.Is(err, reservation.ErrStaleStatus) {
		uc.logger.Warn("TransitionStatus: lost CAS race for reservation=%s", reservationID)
		return ErrStatusChanged
	}
	uc.logger.Error("TransitionStatus: transaction failed for reservation=%s: %v", reservationID, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// publishStatusChanged публикует событие смены статуса fire-and-forget
func (uc *UseCase) publishStatusChanged(ctx context.Context, res *domain.Reservation, newStatus domain.ReservationStatus) {
	if err := uc.events.PublishReservationEvent(ctx, notifier.Event{
		Type:           notifier.EventStatusChanged,
		ReservationID:  res.ID,
		ClientID:       res.ClientID,
		ProfessionalID: res.ProfessionalID,
		Modality:       string(res.Modality),
		Status:         string(newStatus),
		UIStatus:       string(domain.UIStatusOf(newStatus)),
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		uc.logger.Warn("TransitionStatus: failed to publish event for reservation_id=%s: %v", res.ID, err)
	}
}
