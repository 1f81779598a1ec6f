package crmservice

import (
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

// Client клиент для работы с CRM (офисы, консультанты, лиды)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CRM
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetOffice получает офис с рабочими часами по дням недели
func (c *Client) GetOffice(ctx context.Context, officeID int64) (*Office, error) {
	url := fmt.Sprintf("%s/internal/offices/%d", c.baseURL, officeID)

	var office Office
	if err := c.getJSON(ctx, url, &office, ErrOfficeNotFound); err != nil {
		return nil, err
	}
	return &office, nil
}

// GetConsultant получает консультанта
func (c *Client) GetConsultant(ctx context.Context, consultantID int64) (*Consultant, error) {
	url := fmt.Sprintf("%s/internal/consultants/%d", c.baseURL, consultantID)

	var consultant Consultant
	if err := c.getJSON(ctx, url, &consultant, ErrConsultantNotFound); err != nil {
		return nil, err
	}
	return &consultant, nil
}

// GetLead получает лида (для денормализации данных в записи)
func (c *Client) GetLead(ctx context.Context, leadID int64) (*Lead, error) {
	url := fmt.Sprintf("%s/internal/leads/%d", c.baseURL, leadID)

	var lead Lead
	if err := c.getJSON(ctx, url, &lead, ErrLeadNotFound); err != nil {
		return nil, err
	}
	return &lead, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
