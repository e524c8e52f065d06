package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	reservationRepo "github.com/avolkov/MSP-ReservationService/internal/infra/storage/reservation"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/paymentgateway"
)

type mockAvailabilityChecker struct {
	mock.Mock
}

func (m *mockAvailabilityChecker) HasConflict(ctx context.Context, professionalID int64, rng domain.TimeRange) (bool, error) {
	args := m.Called(ctx, professionalID, rng)
	return args.Bool(0), args.Error(1)
}

type mockPaymentGateway struct {
	mock.Mock
}

func (m *mockPaymentGateway) Charge(ctx context.Context, req paymentgateway.ChargeRequest) (*paymentgateway.ChargeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.ChargeResult), args.Error(1)
}

func (m *mockPaymentGateway) Refund(ctx context.Context, providerPaymentID, idempotencyKey string) error {
	args := m.Called(ctx, providerPaymentID, idempotencyKey)
	return args.Error(0)
}

type mockReservationRepository struct {
	mock.Mock
}

func (m *mockReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type mockEventProducer struct {
	mock.Mock
}

func (m *mockEventProducer) PublishReservationEvent(ctx context.Context, event notifier.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	availability *mockAvailabilityChecker
	gateway      *mockPaymentGateway
	reservations *mockReservationRepository
	payments     *mockPaymentRepository
	events       *mockEventProducer
	useCase      *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		availability: &mockAvailabilityChecker{},
		gateway:      &mockPaymentGateway{},
		reservations: &mockReservationRepository{},
		payments:     &mockPaymentRepository{},
		events:       &mockEventProducer{},
	}
	f.useCase = NewUseCase(f.availability, f.gateway, f.reservations, f.payments, f.events, nopLogger{})
	return f
}

func validRequest(t *testing.T) *Request {
	t.Helper()

	schedule, err := domain.NewTimeRange(
		time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return &Request{
		ClientID:        101,
		ProfessionalID:  202,
		ServiceCategory: "plumbing",
		Title:           "Замена смесителя",
		Modality:        domain.ModalityInstant,
		Schedule:        schedule,
		AddressDisplay:  "ул. Ленина, 10",
		Amount:          15000,
		PlatformFee:     1500,
		Currency:        "ARS",
		CardToken:       "card-token-1",
		PaymentMethodID: "visa",
		PayerEmail:      "client@example.com",
		IdempotencyKey:  "attempt-1",
	}
}

func createdReservation(req *Request) *domain.Reservation {
	return &domain.Reservation{
		ID:             "res-1",
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		Modality:       req.Modality,
		ScheduledRange: req.Schedule,
		PriceEstimated: req.Amount,
		Currency:       req.Currency,
		Status:         domain.StatusPendingApproval,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, int64(202), req.Schedule).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.MatchedBy(func(c paymentgateway.ChargeRequest) bool {
		return c.Amount == 15000 && c.Token == "card-token-1" && c.IdempotencyKey == "attempt-1"
	})).Return(&paymentgateway.ChargeResult{ProviderID: "mp-777", Status: paymentgateway.ChargeApproved}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(createdReservation(req), nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.ReservationID == "res-1" &&
			p.Status == domain.PaymentApproved &&
			p.ProviderPaymentID == "mp-777" &&
			p.IdempotencyKey == "attempt-1"
	})).Return(&domain.Payment{ID: "pay-1", ReservationID: "res-1"}, nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ReservationID)
	assert.Equal(t, "pay-1", resp.PaymentID)
	assert.Equal(t, "mp-777", resp.ProviderPaymentID)
	assert.Equal(t, string(domain.StatusPendingApproval), resp.Status)
	assert.Equal(t, string(domain.UIPending), resp.UIStatus)
	assert.Nil(t, resp.Warning)

	f.gateway.AssertNumberOfCalls(t, "Charge", 1)
	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_InProcessChargeStoredAsPending(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&paymentgateway.ChargeResult{ProviderID: "mp-778", Status: paymentgateway.ChargeInProcess}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(createdReservation(req), nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentPending
	})).Return(&domain.Payment{ID: "pay-2"}, nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.Warning)
}

func TestExecute_ValidationFailure_NoSideEffects(t *testing.T) {
	f := newFixture()
	req := validRequest(t)
	req.Amount = 0

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.availability.AssertNotCalled(t, "HasConflict", mock.Anything, mock.Anything, mock.Anything)
	f.gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestExecute_ScheduleConflict_BeforeCharge(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, int64(202), req.Schedule).Return(true, nil)

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrScheduleConflict)
	// Деньги не трогали
	f.gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ChargeRejected_NothingPersisted(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(nil, errors.New("rejected: cc_rejected_insufficient_amount"))

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPaymentDeclined)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ChargeRejectedByStatus(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&paymentgateway.ChargeResult{ProviderID: "mp-779", Status: paymentgateway.ChargeRejected, StatusDetail: "cc_rejected_bad_filled_security_code"}, nil)

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPaymentDeclined)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_ReservationWriteFails_RefundsExactlyOnce(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&paymentgateway.ChargeResult{ProviderID: "mp-780", Status: paymentgateway.ChargeApproved}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db is down"))
	// Ключ возврата производен от ключа списания
	f.gateway.On("Refund", mock.Anything, "mp-780", "attempt-1:refund").Return(nil)

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPersistenceCompensated)
	f.gateway.AssertNumberOfCalls(t, "Refund", 1)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_LateExclusionConflict_RefundsBeforeReporting(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	// Ранняя проверка пройдена, но конкурент успел вставить пересекающуюся
	// запись: exclusion constraint отклоняет вставку уже после списания
	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&paymentgateway.ChargeResult{ProviderID: "mp-785", Status: paymentgateway.ChargeApproved}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).
		Return(nil, reservationRepo.ErrScheduleConflict)
	f.gateway.On("Refund", mock.Anything, "mp-785", "attempt-1:refund").Return(nil)

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPersistenceCompensated)
	assert.Contains(t, err.Error(), "schedule conflict")
	f.gateway.AssertNumberOfCalls(t, "Refund", 1)
}

func TestExecute_RefundAlsoFails_StillCompensatedError(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&paymentgateway.ChargeResult{ProviderID: "mp-781", Status: paymentgateway.ChargeApproved}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db is down"))
	f.gateway.On("Refund", mock.Anything, "mp-781", "attempt-1:refund").Return(errors.New("gateway timeout"))

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPersistenceCompensated)
	assert.Contains(t, err.Error(), "mp-781")
}

func TestExecute_PaymentWriteFails_SuccessWithWarning(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&paymentgateway.ChargeResult{ProviderID: "mp-782", Status: paymentgateway.ChargeApproved}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(createdReservation(req), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db is down"))
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), req)

	// Бронирование состоялось и деньги списаны - это успех, не откат
	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ReservationID)
	assert.Empty(t, resp.PaymentID)
	require.NotNil(t, resp.Warning)
	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_PublishFailureDoesNotAffectOutcome(t *testing.T) {
	f := newFixture()
	req := validRequest(t)

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.Anything).
		Return(&paymentgateway.ChargeResult{ProviderID: "mp-783", Status: paymentgateway.ChargeApproved}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(createdReservation(req), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(&domain.Payment{ID: "pay-3"}, nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(errors.New("kafka unavailable"))

	resp, err := f.useCase.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "res-1", resp.ReservationID)
}

func TestExecute_GeneratesIdempotencyKeyWhenMissing(t *testing.T) {
	f := newFixture()
	req := validRequest(t)
	req.IdempotencyKey = ""

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.gateway.On("Charge", mock.Anything, mock.MatchedBy(func(c paymentgateway.ChargeRequest) bool {
		return c.IdempotencyKey != ""
	})).Return(&paymentgateway.ChargeResult{ProviderID: "mp-784", Status: paymentgateway.ChargeApproved}, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(createdReservation(req), nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(&domain.Payment{ID: "pay-4"}, nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := f.useCase.Execute(context.Background(), req)

	require.NoError(t, err)
}
