package get_available_slots

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/availability"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID          int64     // ID пользователя (для логирования, не влияет на результат)
	OfficeID        int64     // ID офиса
	ConsultantID    int64     // ID консультанта
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность встречи; 0 = значение из конфигурации
	GroupByHour     bool      // Группировать слоты по часам
	ShowUnavailable bool      // Включать past/unavailable слоты в выдачу
}

// Response модель ответа со списком слотов и их статусами
type Response struct {
	Date            time.Time
	OfficeID        int64
	ConsultantID    int64
	DurationMinutes int
	Slots           []Slot      // Плоский список (с учетом фильтрации)
	Groups          []HourGroup // Заполняется при GroupByHour
	TotalSlots      int         // Размер полной сетки
	AvailableSlots  int         // available + limited по полной сетке
}

// Slot модель временного слота со статусом
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность в минутах
	Status          string           // past / unavailable / limited / available
}

// HourGroup слоты одного часа
type HourGroup struct {
	Hour           int
	Slots          []Slot
	AvailableCount int
}

// fromGrouping конвертирует результат движка в модели ответа
func fromGrouping(grouping *availability.Grouping) ([]Slot, []HourGroup, int, int) {
	slots := make([]Slot, len(grouping.Slots))
	for i, es := range grouping.Slots {
		slots[i] = fromEvaluatedSlot(es)
	}

	var groups []HourGroup
	if grouping.Groups != nil {
		groups = make([]HourGroup, len(grouping.Groups))
		for i, g := range grouping.Groups {
			groupSlots := make([]Slot, len(g.Slots))
			for j, es := range g.Slots {
				groupSlots[j] = fromEvaluatedSlot(es)
			}
			groups[i] = HourGroup{
				Hour:           g.Hour,
				Slots:          groupSlots,
				AvailableCount: g.AvailableCount,
			}
		}
	}

	return slots, groups, grouping.TotalSlots, grouping.AvailableSlots
}

func fromEvaluatedSlot(es availability.EvaluatedSlot) Slot {
	return Slot{
		StartTime:       es.Slot.StartTime,
		DurationMinutes: es.Slot.DurationMinutes,
		Status:          string(es.Status),
	}
}
