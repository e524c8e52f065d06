package chatservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avolkov/MSP-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ChatService
// Обновляет статус сметы, встроенной в сообщение чата. Запись best-effort:
// чат-хранилище и хранилище бронирований не связаны транзакцией
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ChatService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type updateBudgetPayload struct {
	Status string `json:"status"`
}

// UpdateBudgetStatus обновляет статус budget-payload в сообщении чата
func (c *Client) UpdateBudgetStatus(ctx context.Context, messageID string, status domain.BudgetStatus) error {
	endpoint := fmt.Sprintf("%s/internal/messages/%s/budget", c.baseURL, url.PathEscape(messageID))

	body, err := json.Marshal(updateBudgetPayload{Status: string(status)})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		c.log.Info("Budget status updated: message_id=%s, status=%s", messageID, status)
		return nil
	case http.StatusNotFound:
		return ErrMessageNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
