package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidInterval возвращается при некорректном интервале доступности
	ErrInvalidInterval = errors.New("invalid availability interval")
)

// Request модели

// GetConfigRequest запрос на получение конфигурации (для иерархического поиска)
// ConsultantID может быть nil для общеофисной конфигурации
type GetConfigRequest struct {
	OfficeID     int64  `json:"officeId"`
	ConsultantID *int64 `json:"consultantId,omitempty"`
}

// UpsertConfigRequest запрос на создание или обновление конфигурации расписания
// Все числовые поля опциональны - при создании отсутствующие поля получают
// значения по умолчанию, при обновлении сохраняют текущие значения
type UpsertConfigRequest struct {
	UserID                 int64  `json:"userId"`
	OfficeID               int64  `json:"officeId"`
	ConsultantID           *int64 `json:"consultantId,omitempty"` // NULL = для всего офиса
	SlotIntervalMinutes    *int   `json:"slotIntervalMinutes,omitempty"`
	DefaultDurationMinutes *int   `json:"defaultDurationMinutes,omitempty"`
	AdvanceBookingDays     *int   `json:"advanceBookingDays,omitempty"`
	MinNoticeMinutes       *int   `json:"minNoticeMinutes,omitempty"`
}

// ApplyToConfig применяет переданные поля к конфигурации
func (r *UpsertConfigRequest) ApplyToConfig(config *domain.ScheduleConfig) {
	if r.SlotIntervalMinutes != nil {
		config.SlotIntervalMinutes = *r.SlotIntervalMinutes
	}
	if r.DefaultDurationMinutes != nil {
		config.DefaultDurationMinutes = *r.DefaultDurationMinutes
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinNoticeMinutes != nil {
		config.MinNoticeMinutes = *r.MinNoticeMinutes
	}
}

// IntervalPayload границы интервала доступности
type IntervalPayload struct {
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "13:00"
}

// SetAvailabilityRequest запрос на установку доступности консультанта на дату
type SetAvailabilityRequest struct {
	UserID           int64             `json:"userId"`
	ConsultantID     int64             `json:"consultantId"`
	Date             string            `json:"date"` // "2025-10-15"
	IsAvailable      bool              `json:"isAvailable"`
	AllowedIntervals []IntervalPayload `json:"allowedIntervals,omitempty"` // Пустой список = весь рабочий день
}

// ToDomainWindow конвертирует request в domain окно доступности
func (r *SetAvailabilityRequest) ToDomainWindow() (*domain.AvailabilityWindow, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, r.Date)
	}

	intervals := make([]domain.TimeInterval, 0, len(r.AllowedIntervals))
	for _, iv := range r.AllowedIntervals {
		start, err := types.NewTimeStringFromString(iv.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: start %q", ErrInvalidInterval, iv.Start)
		}
		end, err := types.NewTimeStringFromString(iv.End)
		if err != nil {
			return nil, fmt.Errorf("%w: end %q", ErrInvalidInterval, iv.End)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, iv.Start, iv.End)
		}
		intervals = append(intervals, domain.TimeInterval{Start: start, End: end})
	}

	return &domain.AvailabilityWindow{
		ConsultantID:     r.ConsultantID,
		Date:             date,
		IsAvailable:      r.IsAvailable,
		AllowedIntervals: intervals,
	}, nil
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID                     int64     `json:"id"`
	OfficeID               int64     `json:"officeId"`
	ConsultantID           *int64    `json:"consultantId,omitempty"`
	SlotIntervalMinutes    int       `json:"slotIntervalMinutes"`
	DefaultDurationMinutes int       `json:"defaultDurationMinutes"`
	AdvanceBookingDays     int       `json:"advanceBookingDays"`
	MinNoticeMinutes       int       `json:"minNoticeMinutes"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// AvailabilityResponse ответ с окном доступности консультанта
type AvailabilityResponse struct {
	ID               int64             `json:"id"`
	ConsultantID     int64             `json:"consultantId"`
	Date             string            `json:"date"`
	IsAvailable      bool              `json:"isAvailable"`
	AllowedIntervals []IntervalPayload `json:"allowedIntervals"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                     c.ID,
		OfficeID:               c.OfficeID,
		ConsultantID:           c.ConsultantID,
		SlotIntervalMinutes:    c.SlotIntervalMinutes,
		DefaultDurationMinutes: c.DefaultDurationMinutes,
		AdvanceBookingDays:     c.AdvanceBookingDays,
		MinNoticeMinutes:       c.MinNoticeMinutes,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{Configs: []ConfigResponse{}}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}
	for _, c := range configs {
		resp.Configs = append(resp.Configs, *FromDomainConfig(c))
	}
	return resp
}

// FromDomainWindow конвертирует domain окно доступности в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *AvailabilityResponse {
	if w == nil {
		return nil
	}

	intervals := make([]IntervalPayload, 0, len(w.AllowedIntervals))
	for _, iv := range w.AllowedIntervals {
		intervals = append(intervals, IntervalPayload{
			Start: iv.Start.String(),
			End:   iv.End.String(),
		})
	}

	return &AvailabilityResponse{
		ID:               w.ID,
		ConsultantID:     w.ConsultantID,
		Date:             w.Date.Format(domain.DateFormat),
		IsAvailable:      w.IsAvailable,
		AllowedIntervals: intervals,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}
