package confirm_budget

import (
	"context"
	"fmt"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
	"github.com/avolkov/MSP-ReservationService/pkg/ptr"
)

// UseCase превращает принятую в чате смету в подтвержденное бронирование
//
// Смета живет в хранилище чата, бронирование - в хранилище бронирований,
// общей транзакции между ними нет. Источником истины выбрано бронирование:
// оно создается первым, а статус сметы в чате обновляется best-effort.
// Неудачная обратная запись не откатывает бронирование - клиент уже
// получил подтвержденный заказ
type UseCase struct {
	availability    AvailabilityChecker
	reservationRepo ReservationRepository
	chat            ChatClient
	events          EventProducer
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityChecker,
	reservationRepo ReservationRepository,
	chat ChatClient,
	events EventProducer,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availability,
		reservationRepo: reservationRepo,
		chat:            chat,
		events:          events,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute подтверждает смету и создает бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBudget: message=%s, client=%d, professional=%d, price=%.2f",
		req.MessageID, req.ClientID, req.ProfessionalID, req.Budget.Price)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ConfirmBudget: validation failed: %v", err)
		return nil, err
	}

	// 2. Смета несет только момент начала работ, интервал достраивается
	// длительностью по умолчанию
	schedule, err := domain.NewTimeRange(
		req.Budget.ProposedDate,
		req.Budget.ProposedDate.Add(domain.DefaultQuoteDuration),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Проверка расписания до создания бронирования
	conflict, err := uc.availability.HasConflict(ctx, req.ProfessionalID, schedule)
	if err != nil {
		uc.logger.Error("ConfirmBudget: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
	if conflict {
		uc.logger.Warn("ConfirmBudget: schedule conflict for professional=%d, range=%s",
			req.ProfessionalID, schedule)
		return nil, ErrScheduleConflict
	}

	// 4. Бронирование из сметы рождается сразу подтвержденным:
	// обе стороны уже согласовали условия в переговорах
	reservation := &domain.Reservation{
		ClientID:        req.ClientID,
		ProfessionalID:  req.ProfessionalID,
		ServiceCategory: req.ServiceCategory,
		Title:           req.Budget.ServiceName,
		Description:     req.Budget.Notes,
		Modality:        domain.ModalityQuote,
		ScheduledRange:  schedule,
		AddressDisplay:  req.AddressDisplay,
		AddressCoords:   req.AddressCoords,
		PriceEstimated:  req.Budget.Price,
		PriceFinal:      ptr.Ptr(req.Budget.Price),
		Currency:        req.Budget.Currency,
		Status:          domain.StatusConfirmed,
	}

	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("ConfirmBudget: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	// 5. Обратная запись статуса сметы в чат. Best-effort: провал дает
	// warning в ответе, бронирование остается в силе
	var warning *string
	if err := uc.chat.UpdateBudgetStatus(ctx, req.MessageID, domain.BudgetConfirmed); err != nil {
		uc.logger.Warn("ConfirmBudget: failed to update budget status in chat: message=%s, reservation_id=%s: %v",
			req.MessageID, created.ID, err)
		warning = ptr.Ptr("budget status in chat not updated")
	}

	// 6. Уведомление fire-and-forget
	if err := uc.events.PublishReservationEvent(ctx, notifier.Event{
		Type:           notifier.EventBudgetConfirmed,
		ReservationID:  created.ID,
		ClientID:       created.ClientID,
		ProfessionalID: created.ProfessionalID,
		Modality:       string(created.Modality),
		Status:         string(created.Status),
		UIStatus:       string(domain.UIStatusOf(created.Status)),
		OccurredAt:     uc.timeProvider.Now().UTC(),
	}); err != nil {
		uc.logger.Warn("ConfirmBudget: failed to publish event for reservation_id=%s: %v", created.ID, err)
	}

	uc.logger.Info("ConfirmBudget: created reservation id=%s from message=%s", created.ID, req.MessageID)

	return &Response{
		ReservationID: created.ID,
		Status:        string(created.Status),
		UIStatus:      string(domain.UIStatusOf(created.Status)),
		Warning:       warning,
	}, nil
}
