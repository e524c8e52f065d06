package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/MSP-ReservationService/pkg/ptr"

	createReservation "github.com/avolkov/MSP-ReservationService/internal/usecase/create_reservation"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createReservation.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func requestBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"user_id":           101,
		"professional_id":   202,
		"service_category":  "plumbing",
		"title":             "Замена смесителя",
		"service_modality":  "instant",
		"start_date":        "2026-09-10T10:00:00Z",
		"end_date":          "2026-09-10T12:00:00Z",
		"address_display":   "ул. Ленина, 10",
		"amount":            15000,
		"platform_fee":      1500,
		"currency":          "ARS",
		"card_token":        "card-token-1",
		"payment_method_id": "visa",
		"payer_email":       "client@example.com",
		"idempotency_key":   "attempt-1",
	})
	require.NoError(t, err)
	return body
}

func doRequest(t *testing.T, uc CreateReservationUseCase, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createReservation.Request) bool {
		return r.ClientID == 101 && r.ProfessionalID == 202 && r.IdempotencyKey == "attempt-1"
	})).Return(&createReservation.Response{
		ReservationID:     "res-1",
		PaymentID:         "pay-1",
		ProviderPaymentID: "mp-777",
		Status:            "pending_approval",
		UIStatus:          "pending",
	}, nil)

	rec := doRequest(t, uc, requestBody(t))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationCreatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "res-1", resp.ReservationID)
	assert.Equal(t, "pay-1", resp.PaymentID)
	assert.Equal(t, "pending", resp.UIStatus)
	assert.Nil(t, resp.Warning)
}

func TestHandle_SuccessWithWarning(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&createReservation.Response{
		ReservationID:     "res-1",
		ProviderPaymentID: "mp-777",
		Status:            "pending_approval",
		UIStatus:          "pending",
		Warning:           ptr.Ptr("payment record missing, flagged for reconciliation"),
	}, nil)

	rec := doRequest(t, uc, requestBody(t))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationCreatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Warning)
}

func TestHandle_ScheduleConflictIs409(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createReservation.ErrScheduleConflict)

	rec := doRequest(t, uc, requestBody(t))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_PaymentDeclinedIs400(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createReservation.ErrPaymentDeclined)

	rec := doRequest(t, uc, requestBody(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_CompensatedFailureIs500WithRefundMessage(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createReservation.ErrPersistenceCompensated)

	rec := doRequest(t, uc, requestBody(t))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "платеж возвращен")
}

func TestHandle_MalformedBody(t *testing.T) {
	uc := &mockUseCase{}

	rec := doRequest(t, uc, []byte(`{"user_id": `))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_BadDates(t *testing.T) {
	uc := &mockUseCase{}
	body := bytes.Replace(requestBody(t), []byte("2026-09-10T10:00:00Z"), []byte("10.09.2026"), 1)

	rec := doRequest(t, uc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
