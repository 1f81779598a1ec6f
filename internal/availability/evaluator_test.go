package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

const testConsultantID = int64(7)

func mustTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// testDate произвольный рабочий день
var testDate = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

func at(clock string) time.Time {
	t, err := mustTime(clock).Combine(testDate)
	if err != nil {
		panic(err)
	}
	return t
}

func slot(start string, duration int) domain.TimeSlot {
	return domain.TimeSlot{StartTime: types.TimeString(start), DurationMinutes: duration}
}

func baseInput() EvaluationInput {
	return EvaluationInput{
		Date:         testDate,
		ConsultantID: testConsultantID,
		Now:          at("00:00"),
	}
}

func TestEvaluate_PastSlot(t *testing.T) {
	in := baseInput()
	in.Now = at("12:00")

	// Прошедший слот остаётся past независимо от остальных проверок
	in.Booked = []domain.BookedInterval{{Start: at("09:00"), End: at("10:00")}}
	in.Windows = []domain.AvailabilityWindow{{ConsultantID: testConsultantID, IsAvailable: false}}

	assert.Equal(t, domain.SlotStatusPast, Evaluate(slot("09:30", 60), in))
	assert.Equal(t, domain.SlotStatusPast, Evaluate(slot("11:59", 60), in))
}

func TestEvaluate_BreakWindow(t *testing.T) {
	in := baseInput()
	in.Break = &domain.BreakWindow{Start: mustTime("12:00"), End: mustTime("13:00")}

	tests := []struct {
		name  string
		slot  domain.TimeSlot
		want  domain.SlotStatus
	}{
		// Конец слота попадает в перерыв - частичное пересечение блокирует
		{"end overlaps break", slot("11:30", 60), domain.SlotStatusUnavailable},
		// Начало слота внутри перерыва
		{"start inside break", slot("12:30", 60), domain.SlotStatusUnavailable},
		// Начало ровно в конце перерыва - не блокируется
		{"starts at break end", slot("13:00", 60), domain.SlotStatusAvailable},
		// Слот целиком до перерыва
		{"before break", slot("10:30", 60), domain.SlotStatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.slot, in))
		})
	}
}

func TestEvaluate_MalformedBreakIgnored(t *testing.T) {
	in := baseInput()
	in.Break = &domain.BreakWindow{Start: "noon", End: mustTime("13:00")}

	assert.Equal(t, domain.SlotStatusAvailable, Evaluate(slot("12:00", 60), in))
}

func TestEvaluate_ConsultantDayBlocked(t *testing.T) {
	in := baseInput()
	in.Windows = []domain.AvailabilityWindow{
		{ConsultantID: testConsultantID, Date: testDate, IsAvailable: false},
	}

	assert.Equal(t, domain.SlotStatusUnavailable, Evaluate(slot("10:00", 60), in))

	// Окно другого консультанта не влияет
	in.Windows[0].ConsultantID = testConsultantID + 1
	assert.Equal(t, domain.SlotStatusAvailable, Evaluate(slot("10:00", 60), in))
}

func TestEvaluate_AllowedIntervals(t *testing.T) {
	in := baseInput()
	// Интервалы намеренно неотсортированы и пересекаются
	in.Windows = []domain.AvailabilityWindow{{
		ConsultantID: testConsultantID,
		Date:         testDate,
		IsAvailable:  true,
		AllowedIntervals: []domain.TimeInterval{
			{Start: mustTime("14:00"), End: mustTime("16:00")},
			{Start: mustTime("09:00"), End: mustTime("11:00")},
			{Start: mustTime("10:00"), End: mustTime("12:00")},
		},
	}}

	tests := []struct {
		name string
		slot domain.TimeSlot
		want domain.SlotStatus
	}{
		{"fully inside interval", slot("09:30", 60), domain.SlotStatusAvailable},
		// Границы интервала включительно: слот совпадает с интервалом целиком
		{"exactly matches interval", slot("14:00", 120), domain.SlotStatusAvailable},
		{"fits one of overlapping intervals", slot("10:30", 90), domain.SlotStatusAvailable},
		// Покрыт объединением 09:00-12:00, но ни одним интервалом целиком
		{"covered only by union", slot("09:30", 120), domain.SlotStatusUnavailable},
		{"outside all intervals", slot("12:30", 60), domain.SlotStatusUnavailable},
		{"extends past interval end", slot("15:30", 60), domain.SlotStatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.slot, in))
		})
	}
}

func TestEvaluate_NoIntervalsMeansWholeDay(t *testing.T) {
	in := baseInput()
	in.Windows = []domain.AvailabilityWindow{
		{ConsultantID: testConsultantID, Date: testDate, IsAvailable: true},
	}

	assert.Equal(t, domain.SlotStatusAvailable, Evaluate(slot("07:00", 60), in))
	assert.Equal(t, domain.SlotStatusAvailable, Evaluate(slot("21:00", 60), in))
}

func TestEvaluate_Conflicts(t *testing.T) {
	in := baseInput()
	in.Booked = []domain.BookedInterval{{Start: at("10:00"), End: at("11:00")}}

	tests := []struct {
		name string
		slot domain.TimeSlot
		want domain.SlotStatus
	}{
		{"slot contains booking", slot("09:30", 120), domain.SlotStatusUnavailable},
		{"start inside booking", slot("10:30", 60), domain.SlotStatusUnavailable},
		{"end inside booking", slot("09:45", 30), domain.SlotStatusUnavailable},
		{"identical to booking", slot("10:00", 60), domain.SlotStatusUnavailable},
		// Соприкасающиеся интервалы не конфликтуют
		{"abuts after booking", slot("11:00", 60), domain.SlotStatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.slot, in))
		})
	}
}

func TestEvaluate_AbuttingBeforeBookingIsLimited(t *testing.T) {
	in := baseInput()
	in.Booked = []domain.BookedInterval{{Start: at("10:00"), End: at("11:00")}}

	// Слот 09:45-10:00 не пересекает запись, но она начинается через
	// 15 минут после начала слота - limited, а не unavailable
	assert.Equal(t, domain.SlotStatusLimited, Evaluate(slot("09:45", 15), in))

	// Отсчёт ведётся от начала слота: запись в 10:00 начинается через
	// 60 минут после слота 09:00 - вне окна, слот остаётся available
	assert.Equal(t, domain.SlotStatusAvailable, Evaluate(slot("09:00", 60), in))
}

func TestEvaluate_Limited(t *testing.T) {
	in := baseInput()
	in.Booked = []domain.BookedInterval{{Start: at("10:20"), End: at("10:50")}}

	// Запись начинается через 20 минут после начала слота - limited
	assert.Equal(t, domain.SlotStatusLimited, Evaluate(slot("10:00", 15), in))

	// Ровно 30 минут - ещё в пределах окна
	in.Booked = []domain.BookedInterval{{Start: at("10:30"), End: at("11:00")}}
	assert.Equal(t, domain.SlotStatusLimited, Evaluate(slot("10:00", 15), in))

	// 31 минута - уже нет
	in.Booked = []domain.BookedInterval{{Start: at("10:31"), End: at("11:00")}}
	assert.Equal(t, domain.SlotStatusAvailable, Evaluate(slot("10:00", 15), in))
}

func TestEvaluate_LimitedNeverOverridesUnavailable(t *testing.T) {
	in := baseInput()
	// Запись начинается через 10 минут после начала слота и пересекает его
	in.Booked = []domain.BookedInterval{{Start: at("10:10"), End: at("10:40")}}

	assert.Equal(t, domain.SlotStatusUnavailable, Evaluate(slot("10:00", 60), in))
}

func TestEvaluate_MalformedSlotTimeIsBlocking(t *testing.T) {
	in := baseInput()
	assert.Equal(t, domain.SlotStatusUnavailable, Evaluate(slot("25:99", 60), in))
	assert.Equal(t, domain.SlotStatusUnavailable, Evaluate(slot("", 60), in))
}

func TestEvaluate_InvalidBookedIntervalSkipped(t *testing.T) {
	in := baseInput()
	// Start >= End нарушает инвариант - интервал игнорируется
	in.Booked = []domain.BookedInterval{{Start: at("11:00"), End: at("10:00")}}

	assert.Equal(t, domain.SlotStatusAvailable, Evaluate(slot("10:30", 30), in))
}

func TestEvaluateAll_EndToEnd(t *testing.T) {
	// Рабочий день 09:00-18:00, шаг 30, встреча 60 минут, одна запись
	// 14:00-15:00, запрос до начала дня
	slots, err := GenerateSlots(workingHours("09:00", "18:00"), 30, 60)
	require.NoError(t, err)
	require.Len(t, slots, 18)

	in := baseInput()
	in.Booked = []domain.BookedInterval{{Start: at("14:00"), End: at("15:00")}}

	evaluated := EvaluateAll(slots, in)
	require.Len(t, evaluated, 18)

	byStart := make(map[string]domain.SlotStatus, len(evaluated))
	for _, es := range evaluated {
		byStart[es.Slot.StartTime.String()] = es.Status
	}

	// Слот 12:30 (12:30-13:30) не пересекает запись - доступен
	assert.Equal(t, domain.SlotStatusAvailable, byStart["12:30"])
	// Слот 13:00 (13:00-14:00) соприкасается с записью, но не пересекает
	assert.Equal(t, domain.SlotStatusAvailable, byStart["13:00"])
	// Слоты, реально пересекающие запись
	assert.Equal(t, domain.SlotStatusUnavailable, byStart["13:30"])
	assert.Equal(t, domain.SlotStatusUnavailable, byStart["14:00"])
	assert.Equal(t, domain.SlotStatusUnavailable, byStart["14:30"])
	// Слот 15:00 соприкасается с концом записи - доступен
	assert.Equal(t, domain.SlotStatusAvailable, byStart["15:00"])

	available := 0
	for _, es := range evaluated {
		if es.Status == domain.SlotStatusAvailable {
			available++
		}
	}
	assert.Equal(t, 15, available)
}
