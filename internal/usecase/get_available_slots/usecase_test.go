package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	availabilityRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/availability"
	configRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/scheduleconfig"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/ptr"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

const (
	testOfficeID     = int64(3)
	testConsultantID = int64(7)
	testUserID       = int64(42)
)

// testDate понедельник
var testDate = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
	gotFilter    domain.ConsultantAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByConsultantWithFilter(_ context.Context, filter domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = filter
	return f.appointments, f.err
}

type fakeAvailabilityRepo struct {
	window *domain.AvailabilityWindow
	err    error
}

func (f *fakeAvailabilityRepo) GetByConsultantAndDate(_ context.Context, _ int64, _ time.Time) (*domain.AvailabilityWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.window == nil {
		return nil, availabilityRepo.ErrWindowNotFound
	}
	return f.window, nil
}

type fakeConfigRepo struct {
	config *domain.ScheduleConfig
	err    error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeCRMClient struct {
	office        *crmservice.Office
	officeErr     error
	consultant    *crmservice.Consultant
	consultantErr error
}

func (f *fakeCRMClient) GetOffice(_ context.Context, _ int64) (*crmservice.Office, error) {
	return f.office, f.officeErr
}

func (f *fakeCRMClient) GetConsultant(_ context.Context, _ int64) (*crmservice.Consultant, error) {
	return f.consultant, f.consultantErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testOffice() *crmservice.Office {
	weekday := crmservice.DaySchedule{
		IsOpen:     true,
		OpenTime:   ptr.Ptr("09:00"),
		CloseTime:  ptr.Ptr("18:00"),
		BreakStart: ptr.Ptr("12:00"),
		BreakEnd:   ptr.Ptr("13:00"),
	}
	return &crmservice.Office{
		ID:   testOfficeID,
		Name: "Downtown Office",
		WorkingHours: crmservice.WeekSchedule{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
			Saturday:  crmservice.DaySchedule{IsOpen: false},
			Sunday:    crmservice.DaySchedule{IsOpen: false},
		},
	}
}

func testConsultant() *crmservice.Consultant {
	return &crmservice.Consultant{
		ID:        testConsultantID,
		Name:      "Sarah Ahmed",
		OfficeIDs: []int64{testOfficeID},
		IsActive:  true,
	}
}

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	availability *fakeAvailabilityRepo,
	configs *fakeConfigRepo,
	crm *fakeCRMClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(appointments, availability, configs, crm, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func defaultRequest() *Request {
	return &Request{
		UserID:       testUserID,
		OfficeID:     testOfficeID,
		ConsultantID: testConsultantID,
		Date:         testDate,
	}
}

func TestExecute_FullDayWithBreakAndBooking(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				ID:              1,
				ConsultantID:    testConsultantID,
				Date:            testDate,
				StartTime:       types.TimeString("14:00"),
				DurationMinutes: 60,
				Status:          domain.StatusScheduled,
			},
		},
	}
	uc := newTestUseCase(
		appointments,
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate, // полночь запрошенного дня, все слоты в будущем
	)

	req := defaultRequest()
	req.ShowUnavailable = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Сетка 09:00-18:00 с шагом 30 минут
	assert.Equal(t, 18, resp.TotalSlots)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 18)

	byStart := make(map[types.TimeString]string, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s.Status
	}

	// Перерыв 12:00-13:00 блокирует слоты, пересекающие его
	assert.Equal(t, string(domain.SlotStatusUnavailable), byStart["11:30"])
	assert.Equal(t, string(domain.SlotStatusUnavailable), byStart["12:30"])
	assert.Equal(t, string(domain.SlotStatusAvailable), byStart["13:00"])

	// Запись 14:00-15:00 блокирует пересекающиеся слоты
	assert.Equal(t, string(domain.SlotStatusUnavailable), byStart["13:30"])
	assert.Equal(t, string(domain.SlotStatusUnavailable), byStart["14:00"])
	assert.Equal(t, string(domain.SlotStatusUnavailable), byStart["14:30"])
	assert.Equal(t, string(domain.SlotStatusAvailable), byStart["15:00"])

	// Репозиторий вызван только с активными записями за запрошенный день
	assert.False(t, appointments.gotFilter.IncludeInactive)
	require.NotNil(t, appointments.gotFilter.StartDate)
	assert.Equal(t, testDate, *appointments.gotFilter.StartDate)
}

func TestExecute_HidesUnavailableByDefault(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				ID:              1,
				ConsultantID:    testConsultantID,
				Date:            testDate,
				StartTime:       types.TimeString("14:00"),
				DurationMinutes: 60,
				Status:          domain.StatusScheduled,
			},
		},
	}
	uc := newTestUseCase(
		appointments,
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	// Без showUnavailable в выдаче остаются только бронируемые слоты:
	// 18 минус 4 вокруг перерыва (11:00-12:30) и 3 вокруг записи 14:00-15:00
	assert.Equal(t, 18, resp.TotalSlots)
	assert.Len(t, resp.Slots, 11)
	for _, s := range resp.Slots {
		assert.Contains(t,
			[]string{string(domain.SlotStatusAvailable), string(domain.SlotStatusLimited)},
			s.Status)
	}
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	req := defaultRequest()
	req.Date = time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC) // Суббота

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, resp.TotalSlots)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ConsultantDayBlocked(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{window: &domain.AvailabilityWindow{
			ConsultantID: testConsultantID,
			Date:         testDate,
			IsAvailable:  false,
		}},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	req := defaultRequest()
	req.ShowUnavailable = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 18, resp.TotalSlots)
	assert.Zero(t, resp.AvailableSlots)
	require.Len(t, resp.Slots, 18)
	for _, s := range resp.Slots {
		assert.Equal(t, string(domain.SlotStatusUnavailable), s.Status)
	}
}

func TestExecute_AllowedIntervalsRestrictDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{window: &domain.AvailabilityWindow{
			ConsultantID: testConsultantID,
			Date:         testDate,
			IsAvailable:  true,
			AllowedIntervals: []domain.TimeInterval{
				{Start: types.TimeString("09:00"), End: types.TimeString("11:00")},
			},
		}},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	req := defaultRequest()
	req.ShowUnavailable = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	byStart := make(map[types.TimeString]string, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s.Status
	}

	assert.Equal(t, string(domain.SlotStatusAvailable), byStart["09:00"])
	assert.Equal(t, string(domain.SlotStatusAvailable), byStart["10:00"])
	// Слот 10:30-11:30 выходит за границу интервала
	assert.Equal(t, string(domain.SlotStatusUnavailable), byStart["10:30"])
	assert.Equal(t, 3, resp.AvailableSlots)
}

func TestExecute_ConfigOverridesDefaults(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{config: &domain.ScheduleConfig{
			ID:                     5,
			OfficeID:               testOfficeID,
			SlotIntervalMinutes:    60,
			DefaultDurationMinutes: 45,
		}},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, 9, resp.TotalSlots)
	assert.Equal(t, 45, resp.DurationMinutes)
}

func TestExecute_RequestDurationOverridesConfig(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	req := defaultRequest()
	req.DurationMinutes = 30

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_GroupByHour(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	req := defaultRequest()
	req.GroupByHour = true
	req.ShowUnavailable = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Groups, 9)
	assert.Equal(t, 9, resp.Groups[0].Hour)
	assert.Len(t, resp.Groups[0].Slots, 2)
	assert.Equal(t, 2, resp.Groups[0].AvailableCount)
	assert.Equal(t, 17, resp.Groups[8].Hour)

	// Оба слота часа перерыва показаны, но недоступны
	assert.Equal(t, 12, resp.Groups[3].Hour)
	assert.Len(t, resp.Groups[3].Slots, 2)
	assert.Zero(t, resp.Groups[3].AvailableCount)
}

func TestExecute_GroupByHourSkipsFilteredHours(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	req := defaultRequest()
	req.GroupByHour = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Часы 11 и 12 целиком заблокированы перерывом и без showUnavailable
	// не образуют групп
	require.Len(t, resp.Groups, 7)
	assert.Equal(t, 10, resp.Groups[1].Hour)
	assert.Equal(t, 13, resp.Groups[2].Hour)
	for _, g := range resp.Groups {
		assert.Equal(t, len(g.Slots), g.AvailableCount)
	}
}

func TestExecute_OfficeNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{officeErr: crmservice.ErrOfficeNotFound},
		testDate,
	)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrOfficeNotFound)
}

func TestExecute_ConsultantNotAtOffice(t *testing.T) {
	consultant := testConsultant()
	consultant.OfficeIDs = []int64{99}

	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: consultant},
		testDate,
	)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrConsultantNotAtOffice)
}

func TestExecute_InactiveConsultant(t *testing.T) {
	consultant := testConsultant()
	consultant.IsActive = false

	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: consultant},
		testDate,
	)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrConsultantInactive)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate.AddDate(0, 0, 1), // "сейчас" на день позже запрошенной даты
	)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondAdvanceBookingLimit(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{config: &domain.ScheduleConfig{
			ID:                     5,
			OfficeID:               testOfficeID,
			SlotIntervalMinutes:    30,
			DefaultDurationMinutes: 60,
			AdvanceBookingDays:     7,
		}},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		testDate,
	)

	req := defaultRequest()
	req.Date = testDate.AddDate(0, 0, 8)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_MidDayNowMarksMorningPast(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeAvailabilityRepo{},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant()},
		time.Date(2025, 11, 10, 12, 15, 0, 0, time.UTC),
	)

	req := defaultRequest()
	req.ShowUnavailable = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	byStart := make(map[types.TimeString]string, len(resp.Slots))
	for _, s := range resp.Slots {
		byStart[s.StartTime] = s.Status
	}

	assert.Equal(t, string(domain.SlotStatusPast), byStart["09:00"])
	assert.Equal(t, string(domain.SlotStatusPast), byStart["12:00"])
	assert.Equal(t, string(domain.SlotStatusUnavailable), byStart["12:30"]) // перерыв
	assert.Equal(t, string(domain.SlotStatusAvailable), byStart["13:00"])
}
