package transition_status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
	"github.com/avolkov/MSP-ReservationService/internal/infra/storage/reservation"
	"github.com/avolkov/MSP-ReservationService/internal/integrations/notifier"
)

type mockReservationRepository struct {
	mock.Mock
}

func (m *mockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepository) UpdateStatusCAS(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *mockReservationRepository) CancelCAS(ctx context.Context, id string, from, to domain.ReservationStatus, reason string) error {
	args := m.Called(ctx, id, from, to, reason)
	return args.Error(0)
}

type mockProfessionalRepository struct {
	mock.Mock
}

func (m *mockProfessionalRepository) SetAvailability(ctx context.Context, professionalID int64, available bool) error {
	args := m.Called(ctx, professionalID, available)
	return args.Error(0)
}

// passthroughTxManager выполняет fn без настоящей транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

const (
	clientID       = int64(101)
	professionalID = int64(202)
)

type fixture struct {
	reservations  *mockReservationRepository
	professionals *mockProfessionalRepository
	events        *mockEventProducer
	useCase       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		reservations:  &mockReservationRepository{},
		professionals: &mockProfessionalRepository{},
		events:        &mockEventProducer{},
	}
	f.useCase = NewUseCase(f.reservations, f.professionals, passthroughTxManager{}, f.events, nopLogger{})
	return f
}

func storedReservation(status domain.ReservationStatus, modality domain.Modality) *domain.Reservation {
	return &domain.Reservation{
		ID:             "res-1",
		ClientID:       clientID,
		ProfessionalID: professionalID,
		Modality:       modality,
		Status:         status,
	}
}

func TestExecute_ConfirmInstant_FlipsAvailabilityFlag(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusPendingApproval, domain.ModalityInstant), nil)
	f.reservations.On("UpdateStatusCAS", mock.Anything, "res-1",
		domain.StatusPendingApproval, domain.StatusConfirmed).Return(nil)
	f.professionals.On("SetAvailability", mock.Anything, professionalID, false).Return(nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.MatchedBy(func(e notifier.Event) bool {
		return e.Type == notifier.EventStatusChanged && e.Status == string(domain.StatusConfirmed)
	})).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       professionalID,
		TargetStatus:  domain.StatusConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.UIConfirmed), resp.UIStatus)
	f.professionals.AssertNumberOfCalls(t, "SetAvailability", 1)
}

func TestExecute_ConfirmQuote_DoesNotTouchAvailability(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusPendingApproval, domain.ModalityQuote), nil)
	f.reservations.On("UpdateStatusCAS", mock.Anything, "res-1",
		domain.StatusPendingApproval, domain.StatusConfirmed).Return(nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       professionalID,
		TargetStatus:  domain.StatusConfirmed,
	})

	require.NoError(t, err)
	f.professionals.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CompletedFromOnRoute_SkipsInProgress(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusOnRoute, domain.ModalityInstant), nil)
	f.reservations.On("UpdateStatusCAS", mock.Anything, "res-1",
		domain.StatusOnRoute, domain.StatusCompleted).Return(nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       professionalID,
		TargetStatus:  domain.StatusCompleted,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.UIFinalized), resp.UIStatus)
}

func TestExecute_ClientCannotMoveForward(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusPendingApproval, domain.ModalityInstant), nil)

	_, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       clientID,
		TargetStatus:  domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	f.reservations.AssertNotCalled(t, "UpdateStatusCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ClientMayOpenDispute(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusCompleted, domain.ModalityInstant), nil)
	f.reservations.On("UpdateStatusCAS", mock.Anything, "res-1",
		domain.StatusCompleted, domain.StatusDisputed).Return(nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       clientID,
		TargetStatus:  domain.StatusDisputed,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.UIFinalized), resp.UIStatus)
}

func TestExecute_StrangerIsRejected(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusPendingApproval, domain.ModalityInstant), nil)

	_, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       999,
		TargetStatus:  domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_IllegalTransition(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusPendingApproval, domain.ModalityInstant), nil)

	_, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       professionalID,
		TargetStatus:  domain.StatusCompleted,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	f.reservations.AssertNotCalled(t, "UpdateStatusCAS", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CancellationStatusRejectedAsTarget(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       professionalID,
		TargetStatus:  domain.StatusCanceledPro,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_LostCASRace(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusPendingApproval, domain.ModalityInstant), nil)
	f.reservations.On("UpdateStatusCAS", mock.Anything, "res-1",
		domain.StatusPendingApproval, domain.StatusConfirmed).Return(reservation.ErrStaleStatus)

	_, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "res-1",
		ActorID:       professionalID,
		TargetStatus:  domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrStatusChanged)
	f.events.AssertNotCalled(t, "PublishReservationEvent", mock.Anything, mock.Anything)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "missing").
		Return(nil, reservation.ErrReservationNotFound)

	_, err := f.useCase.Execute(context.Background(), &Request{
		ReservationID: "missing",
		ActorID:       professionalID,
		TargetStatus:  domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_ByClient(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusConfirmed, domain.ModalityInstant), nil)
	f.reservations.On("CancelCAS", mock.Anything, "res-1",
		domain.StatusConfirmed, domain.StatusCanceledClient, "передумал").Return(nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Cancel(context.Background(), &CancelRequest{
		ReservationID: "res-1",
		ActorID:       clientID,
		Reason:        "передумал",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceledClient), resp.Status)
	assert.Equal(t, string(domain.UICanceled), resp.UIStatus)
}

func TestCancel_ByProfessional(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusOnRoute, domain.ModalityInstant), nil)
	f.reservations.On("CancelCAS", mock.Anything, "res-1",
		domain.StatusOnRoute, domain.StatusCanceledPro, "сломалась машина").Return(nil)
	f.events.On("PublishReservationEvent", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.useCase.Cancel(context.Background(), &CancelRequest{
		ReservationID: "res-1",
		ActorID:       professionalID,
		Reason:        "сломалась машина",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceledPro), resp.Status)
}

func TestCancel_CompletedReservation(t *testing.T) {
	f := newFixture()

	f.reservations.On("GetByID", mock.Anything, "res-1").
		Return(storedReservation(domain.StatusCompleted, domain.ModalityInstant), nil)

	_, err := f.useCase.Cancel(context.Background(), &CancelRequest{
		ReservationID: "res-1",
		ActorID:       clientID,
		Reason:        "передумал",
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_EmptyReason(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Cancel(context.Background(), &CancelRequest{
		ReservationID: "res-1",
		ActorID:       clientID,
		Reason:        "  ",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.reservations.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
