package confirm_budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
)

type mockAvailabilityChecker struct {
	mock.Mock
}

func (m *mockAvailabilityChecker) HasConflict(ctx context.Context, professionalID int64, rng domain.TimeRange) (bool, error) {
	args := m.Called(ctx, professionalID, rng)
	return args.Bool(0), args.Error(1)
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

type mockChatClient struct {
	mock.Mock
}

func (m *mockChatClient) UpdateBudgetStatus(ctx context.Context, messageID string, status domain.BudgetStatus) error {
	args := m.Called(ctx, messageID, status)
	return args.Error(0)
}

type mockEventProducer struct {
	mock.Mock
}

func (m *mockEventProducer) PublishReservationEvent(ctx context.Context, event notifier.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	availability *mockAvailabilityChecker
	reservations *mockReservationRepository
	chat         *mockChatClient
	events       *mockEventProducer
	useCase      *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		availability: &mockAvailabilityChecker{},
		reservations: &mockReservationRepository{},
		chat:         &mockChatClient{},
		events:       &mockEventProducer{},
	}
	f.useCase = NewUseCase(f.availability, f.reservations, f.chat, f.events, nopLogger{})
	f.useCase.timeProvider = &fixedTimeProvider{now: testNow}
	return f
}

func validRequest() *Request {
	return &Request{
		MessageID:       "msg-42",
		ClientID:        101,
		ProfessionalID:  202,
		ServiceCategory: "electricity",
		Budget: domain.BudgetPayload{
			ServiceName:  "Монтаж проводки",
			Price:        8000,
			Currency:     "ARS",
			ProposedDate: testNow.Add(48 * time.Hour),
			Status:       domain.BudgetPending,
		},
		AddressDisplay: "ул. Гагарина, 5",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	req := validRequest()

	expectedRange, err := domain.NewTimeRange(
		req.Budget.ProposedDate,
		req.Budget.ProposedDate.Add(domain.DefaultQuoteDuration),
	)
	require.NoError(t, err)

	f.availability.On("HasConflict", mock.Anything, int64(202), expectedRange).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Modality == domain.ModalityQuote &&
			r.Status == domain.StatusConfirmed &&
			r.Title == "Монтаж проводки" &&
			r.PriceEstimated == 8000 &&
			r.PriceFinal != nil && *r.PriceFinal == 8000 &&
			r.ScheduledRange == expectedRange
	})).Return(&domain.Reservation{
		ID:       "res-9",
		Modality: domain.ModalityQuote,
		Status:   domain.StatusConfirmed,
	}, nil)
	f.chat.On("UpdateBudgetStatus", mock.Anything, "msg-42", domain.BudgetConfirmed).Return(nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.MatchedBy(func(e notifier.Event) bool {
		return e.Type == notifier.EventBudgetConfirmed && e.ReservationID == "res-9"
	})).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "res-9", resp.ReservationID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.UIConfirmed), resp.UIStatus)
	assert.Nil(t, resp.Warning)
}

func TestExecute_ChatWriteBackFails_SuccessWithWarning(t *testing.T) {
	f := newFixture()
	req := validRequest()

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Reservation{ID: "res-10", Status: domain.StatusConfirmed}, nil)
	f.chat.On("UpdateBudgetStatus", mock.Anything, "msg-42", domain.BudgetConfirmed).
		Return(errors.New("chat service unavailable"))
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), req)

	// Бронирование - источник истины, провал обратной записи его не откатывает
	require.NoError(t, err)
	assert.Equal(t, "res-10", resp.ReservationID)
	require.NotNil(t, resp.Warning)
}

func TestExecute_ScheduleConflict(t *testing.T) {
	f := newFixture()
	req := validRequest()

	f.availability.On("HasConflict", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.useCase.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrScheduleConflict)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.chat.AssertNotCalled(t, "UpdateBudgetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing message id", func(req *Request) { req.MessageID = "" }},
		{"zero price", func(req *Request) { req.Budget.Price = 0 }},
		{"bad currency", func(req *Request) { req.Budget.Currency = "PESO" }},
		{"proposed date in the past", func(req *Request) { req.Budget.ProposedDate = testNow.Add(-time.Hour) }},
		{"missing service name", func(req *Request) { req.Budget.ServiceName = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			f.availability.AssertNotCalled(t, "HasConflict", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
