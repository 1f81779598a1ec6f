package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
)

func workingHours(start, end string) domain.WorkingHours {
	return domain.WorkingHours{
		Start: mustTime(start),
		End:   mustTime(end),
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	wh := workingHours("09:00", "18:00")

	first, err := GenerateSlots(wh, 30, 60)
	require.NoError(t, err)

	second, err := GenerateSlots(wh, 30, 60)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_Boundary(t *testing.T) {
	slots, err := GenerateSlots(workingHours("09:00", "18:00"), 30, 30)
	require.NoError(t, err)

	// 9 часов по 2 слота в час, последний слот в 17:30, ничего в 18:00 и позже
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "17:30", slots[len(slots)-1].StartTime.String())

	for _, slot := range slots {
		assert.True(t, slot.StartTime.IsBefore(mustTime("18:00")),
			"slot %s starts at or after closing", slot.StartTime)
	}
}

func TestGenerateSlots_NoEndOfDayClamping(t *testing.T) {
	// Сетка определяется только временем начала: слот 17:30 с длительностью 60
	// эмитится, хотя встреча закончилась бы в 18:30
	slots, err := GenerateSlots(workingHours("09:00", "18:00"), 30, 60)
	require.NoError(t, err)

	require.Len(t, slots, 18)
	last := slots[len(slots)-1]
	assert.Equal(t, "17:30", last.StartTime.String())
	assert.Equal(t, 60, last.DurationMinutes)
}

func TestGenerateSlots_EmptyWindow(t *testing.T) {
	tests := []struct {
		name  string
		hours domain.WorkingHours
	}{
		{"start equals end", workingHours("10:00", "10:00")},
		{"reversed", workingHours("18:00", "09:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(tt.hours, 30, 60)
			require.NoError(t, err)
			assert.Empty(t, slots)
		})
	}
}

func TestGenerateSlots_InvalidConfiguration(t *testing.T) {
	wh := workingHours("09:00", "18:00")

	_, err := GenerateSlots(wh, 0, 60)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = GenerateSlots(wh, -30, 60)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = GenerateSlots(wh, 30, -60)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGenerateSlots_MalformedWorkingHours(t *testing.T) {
	_, err := GenerateSlots(domain.WorkingHours{Start: "9am", End: "18:00"}, 30, 60)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)

	_, err = GenerateSlots(domain.WorkingHours{Start: "09:00", End: ""}, 30, 60)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestGenerateSlots_GridNearMidnight(t *testing.T) {
	// Шаг, пересекающий полночь, завершает сетку без ошибки
	slots, err := GenerateSlots(workingHours("23:00", "23:59"), 45, 30)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "23:00", slots[0].StartTime.String())
	assert.Equal(t, "23:45", slots[1].StartTime.String())
}
