package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	reservationRepo "github.com/avolkov/MSP-ReservationService/internal/infra/storage/reservation"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/paymentgateway"
	"github.com/avolkov/MSP-ReservationService/pkg/ptr"
)

// UseCase координатор транзакции бронирования с оплатой
//
// Линейная сага поверх двух систем без общего коммита (БД + платежный шлюз):
// валидация -> проверка расписания -> списание -> запись бронирования ->
// запись платежа. Единственное компенсирующее действие - возврат платежа,
// если запись бронирования не удалась после успешного списания.
// Провал записи платежа после успешной записи бронирования не компенсируется:
// откатывать бронирование, которое клиент уже увидел успешным, хуже, чем
// висящая запись у шлюза - такие случаи логируются для ручной сверки
type UseCase struct {
	availability    AvailabilityChecker
	gateway         PaymentGateway
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	events          EventProducer
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityChecker,
	gateway PaymentGateway,
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	events EventProducer,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availability,
		gateway:         gateway,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		events:          events,
		logger:          logger,
	}
}

// Execute выполняет сагу создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, professional=%d, modality=%s, range=%s, amount=%.2f",
		req.ClientID, req.ProfessionalID, req.Modality, req.Schedule, req.Amount)

	// 1. Валидация входных данных (без побочных эффектов)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Ранняя проверка расписания - до обращения к шлюзу
	// Авторитетная защита от double-booking остается за exclusion constraint БД
	conflict, err := uc.availability.HasConflict(ctx, req.ProfessionalID, req.Schedule)
	if err != nil {
		uc.logger.Error("CreateReservation: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
	if conflict {
		uc.logger.Warn("CreateReservation: schedule conflict for professional=%d, range=%s",
			req.ProfessionalID, req.Schedule)
		return nil, ErrScheduleConflict
	}

	// 3. Списание. Ключ идемпотентности живет на уровне логической попытки:
	// генерируется один раз и не пересоздается при повторах HTTP-вызова
	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	charge, err := uc.gateway.Charge(ctx, paymentgateway.ChargeRequest{
		Token:           req.CardToken,
		PaymentMethodID: req.PaymentMethodID,
		PayerEmail:      req.PayerEmail,
		Amount:          req.Amount,
		IdempotencyKey:  idempotencyKey,
	})
	if err != nil {
		// Сетевые ошибки и недоступность шлюза приравниваются к отказу:
		// повторы - ответственность вызывающей стороны с тем же ключом
		uc.logger.Warn("CreateReservation: charge failed for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	if !charge.Approved() {
		uc.logger.Warn("CreateReservation: charge rejected for client=%d: %s", req.ClientID, charge.StatusDetail)
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, charge.StatusDetail)
	}

	// После успешного списания попытка обязана дойти до конца: успех,
	// компенсированный провал или залогированная рассинхронизация.
	// Отмена контекста вызывающей стороной больше не прерывает сагу
	persistCtx := context.WithoutCancel(ctx)

	// 4. Запись бронирования. Единственный шаг с активной компенсацией:
	// при провале возврат выполняется синхронно, до ответа вызывающему
	reservation := &domain.Reservation{
		ClientID:        req.ClientID,
		ProfessionalID:  req.ProfessionalID,
		ServiceCategory: req.ServiceCategory,
		Title:           req.Title,
		Description:     req.Description,
		ServiceTags:     req.ServiceTags,
		Modality:        req.Modality,
		ScheduledRange:  req.Schedule,
		AddressDisplay:  req.AddressDisplay,
		AddressCoords:   req.AddressCoords,
		PriceEstimated:  req.Amount,
		PlatformFee:     req.PlatformFee,
		Currency:        req.Currency,
		Status:          domain.StatusPendingApproval,
	}

	created, err := uc.reservationRepo.Create(persistCtx, reservation)
	if err != nil {
		return nil, uc.compensate(persistCtx, charge, idempotencyKey, err)
	}

	// 5. Запись платежа. Компенсации нет: см. комментарий к UseCase
	paymentStatus := domain.PaymentApproved
	if charge.Status == paymentgateway.ChargeInProcess {
		paymentStatus = domain.PaymentPending
	}

	var warning *string
	var paymentID string

	payment, err := uc.paymentRepo.Create(persistCtx, &domain.Payment{
		ReservationID:     created.ID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Status:            paymentStatus,
		ProviderPaymentID: charge.ProviderID,
		IdempotencyKey:    idempotencyKey,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: INCONSISTENCY - payment record not persisted: reservation_id=%s, provider_payment_id=%s, amount=%.2f: %v",
			created.ID, charge.ProviderID, req.Amount, err)
		warning = ptr.Ptr("payment record missing, flagged for reconciliation")
	} else {
		paymentID = payment.ID
	}

	// 6. Уведомление fire-and-forget: ошибка публикации не влияет на исход
	if err := uc.events.PublishReservationEvent(persistCtx, notifier.Event{
		Type:           notifier.EventReservationCreated,
		ReservationID:  created.ID,
		ClientID:       created.ClientID,
		ProfessionalID: created.ProfessionalID,
		Modality:       string(created.Modality),
		Status:         string(created.Status),
		UIStatus:       string(domain.UIStatusOf(created.Status)),
		OccurredAt:     time.Now().UTC(),
	}); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for reservation_id=%s: %v", created.ID, err)
	}

	uc.logger.Info("CreateReservation: created reservation id=%s, provider_payment_id=%s, status=%s",
		created.ID, charge.ProviderID, created.Status)

	return &Response{
		ReservationID:     created.ID,
		PaymentID:         paymentID,
		ProviderPaymentID: charge.ProviderID,
		Status:            string(created.Status),
		UIStatus:          string(domain.UIStatusOf(created.Status)),
		Warning:           warning,
	}, nil
}

// compensate возвращает платеж после провала записи бронирования
// Ключ возврата производен от ключа списания: повтор компенсации
// не создает второй возврат
func (uc *UseCase) compensate(ctx context.Context, charge *paymentgateway.ChargeResult, chargeKey string, cause error) error {
	uc.logger.Error("CreateReservation: reservation write failed after successful charge provider_payment_id=%s, refunding: %v",
		charge.ProviderID, cause)

	if refundErr := uc.gateway.Refund(ctx, charge.ProviderID, chargeKey+":refund"); refundErr != nil {
		// Худший исход: деньги списаны, бронирования нет, возврат не прошел.
		// Требует ручной сверки по provider_payment_id
		uc.logger.Error("CreateReservation: INCONSISTENCY - refund failed for provider_payment_id=%s, manual reconciliation required: %v",
			charge.ProviderID, refundErr)
		return fmt.Errorf("%w: refund also failed (provider_payment_id=%s): %v", ErrPersistenceCompensated, charge.ProviderID, refundErr)
	}

	uc.logger.Info("CreateReservation: charge provider_payment_id=%s refunded", charge.ProviderID)

	// Проигравший гонку у exclusion constraint идет тем же путем: деньги
	// уже списаны, поэтому сначала возврат, и только потом ответ о конфликте
	if errors.Is(cause, reservationRepo.ErrScheduleConflict) {
		return fmt.Errorf("%w: schedule conflict detected at insert: %v", ErrPersistenceCompensated, cause)
	}
	return fmt.Errorf("%w: %v", ErrPersistenceCompensated, cause)
}
