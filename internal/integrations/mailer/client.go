package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса отправки уведомлений.
// Доставка писем - внешняя забота: клиент только передает событие,
// без шаблонов и очередей.
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, enabled bool, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление сервису рассылки
func (c *Client) Send(ctx context.Context, n *Notification) error {
	if !c.enabled {
		return ErrDisabled
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

// SendAsync отправляет уведомление с graceful degradation: ошибка доставки
// логируется и никогда не приводит к ошибке запроса, создавшего событие
func (c *Client) SendAsync(n *Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.Send(ctx, n); err != nil {
			if err == ErrDisabled {
				return
			}
			c.log.Warn("Mailer unavailable, notification %s for appointment id=%d dropped: %v",
				n.Kind, n.AppointmentID, err)
			return
		}
		c.log.Info("Notification %s sent for appointment id=%d", n.Kind, n.AppointmentID)
	}()
}
