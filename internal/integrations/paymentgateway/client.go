package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного шлюза
// Заголовок X-Idempotency-Key защищает от дублей при повторах на сетевых
// ошибках; внутри клиента повторов нет - политика ретраев принадлежит
// вызывающей стороне
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
func NewClient(baseURL, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Charge выполняет списание по токенизированной карте
// Явный отказ шлюза возвращается как результат со статусом rejected (не ошибка):
// вызывающая сторона различает отказ и недоступность шлюза
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	payload := chargePayload{
		TransactionAmount: req.Amount,
		Token:             req.Token,
		PaymentMethodID:   req.PaymentMethodID,
		Payer:             chargePayer{Email: req.PayerEmail},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal charge payload: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("X-Idempotency-Key", req.IdempotencyKey)

	c.log.Info("Charging amount=%.2f, payment_method=%s, idempotency_key=%s",
		req.Amount, req.PaymentMethodID, req.IdempotencyKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: charge request failed: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Явный отказ шлюза с кодом причины
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
			return nil, fmt.Errorf("%w: status code %d without parseable body", ErrInvalidResponse, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrChargeRejected, errResp.Message)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrGatewayUnavailable, resp.StatusCode, string(body))
	}

	var chargeResp chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&chargeResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode charge response: %v", ErrInvalidResponse, err)
	}

	result := &ChargeResult{
		ProviderID:   chargeResp.ID.String(),
		Status:       ChargeStatus(chargeResp.Status),
		StatusDetail: chargeResp.StatusDetail,
	}

	switch result.Status {
	case ChargeApproved, ChargeInProcess, ChargeRejected:
		// Известные статусы
	default:
		return nil, fmt.Errorf("%w: unknown charge status %q", ErrInvalidResponse, chargeResp.Status)
	}

	c.log.Info("Charge result: provider_id=%s, status=%s, detail=%s",
		result.ProviderID, result.Status, result.StatusDetail)

	return result, nil
}

// Refund выполняет возврат платежа по идентификатору шлюза
// Тоже идемпотентен: ключ производен от ключа списания, поэтому повтор
// компенсации не создает второй возврат
func (c *Client) Refund(ctx context.Context, providerPaymentID, idempotencyKey string) error {
	refundURL := fmt.Sprintf("%s/payments/%s/refunds", c.baseURL, url.PathEscape(providerPaymentID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, refundURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)

	c.log.Info("Refunding provider_payment_id=%s, idempotency_key=%s", providerPaymentID, idempotencyKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: refund request failed: %v", ErrRefundFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrRefundFailed, resp.StatusCode, string(body))
	}

	c.log.Info("Refund succeeded: provider_payment_id=%s", providerPaymentID)
	return nil
}
