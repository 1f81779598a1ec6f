package get_available_slots

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	getAvailableSlots "github.com/AlqamaShuja/educat-scheduling-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"` // past / unavailable / limited / available
}

// HourGroupResponse слоты одного часа
type HourGroupResponse struct {
	Hour           int            `json:"hour"`
	Slots          []SlotResponse `json:"slots"`
	AvailableCount int            `json:"availableCount"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string              `json:"date"`
	OfficeID        int64               `json:"officeId"`
	ConsultantID    int64               `json:"consultantId"`
	DurationMinutes int                 `json:"durationMinutes"`
	Slots           []SlotResponse      `json:"slots"`
	Groups          []HourGroupResponse `json:"groups,omitempty"`
	TotalSlots      int                 `json:"totalSlots"`
	AvailableSlots  int                 `json:"availableSlots"`
}

// ToUseCaseRequest собирает запрос use case из разобранных параметров
func ToUseCaseRequest(userID, officeID, consultantID int64, dateStr string, durationMinutes int, groupByHour, showUnavailable bool) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID:          userID,
		OfficeID:        officeID,
		ConsultantID:    consultantID,
		Date:            date,
		DurationMinutes: durationMinutes,
		GroupByHour:     groupByHour,
		ShowUnavailable: showUnavailable,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, fromUseCaseSlot(s))
	}

	var groups []HourGroupResponse
	if resp.Groups != nil {
		groups = make([]HourGroupResponse, 0, len(resp.Groups))
		for _, g := range resp.Groups {
			groupSlots := make([]SlotResponse, 0, len(g.Slots))
			for _, s := range g.Slots {
				groupSlots = append(groupSlots, fromUseCaseSlot(s))
			}
			groups = append(groups, HourGroupResponse{
				Hour:           g.Hour,
				Slots:          groupSlots,
				AvailableCount: g.AvailableCount,
			})
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		OfficeID:        resp.OfficeID,
		ConsultantID:    resp.ConsultantID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Groups:          groups,
		TotalSlots:      resp.TotalSlots,
		AvailableSlots:  resp.AvailableSlots,
	}
}

func fromUseCaseSlot(s getAvailableSlots.Slot) SlotResponse {
	return SlotResponse{
		StartTime:       s.StartTime.String(),
		DurationMinutes: s.DurationMinutes,
		Status:          s.Status,
	}
}
