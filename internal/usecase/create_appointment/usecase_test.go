package create_appointment

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
	testLeadID       = int64(11)
	testUserID       = int64(42)
)

// testDate понедельник
var testDate = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

type fakeAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
	nextID   int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	created := *appointment
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByConsultantWithFilter(_ context.Context, _ domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeAvailabilityRepo struct {
	window *domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) GetByConsultantAndDate(_ context.Context, _ int64, _ time.Time) (*domain.AvailabilityWindow, error) {
	if f.window == nil {
		return nil, availabilityRepo.ErrWindowNotFound
	}
	return f.window, nil
}

type fakeConfigRepo struct {
	config *domain.ScheduleConfig
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeCRMClient struct {
	office     *crmservice.Office
	consultant *crmservice.Consultant
	lead       *crmservice.Lead
	leadErr    error
}

func (f *fakeCRMClient) GetOffice(_ context.Context, _ int64) (*crmservice.Office, error) {
	return f.office, nil
}

func (f *fakeCRMClient) GetConsultant(_ context.Context, _ int64) (*crmservice.Consultant, error) {
	return f.consultant, nil
}

func (f *fakeCRMClient) GetLead(_ context.Context, _ int64) (*crmservice.Lead, error) {
	if f.leadErr != nil {
		return nil, f.leadErr
	}
	return f.lead, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("18:00"),
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

func testLead() *crmservice.Lead {
	return &crmservice.Lead{
		ID:    testLeadID,
		Name:  "Ali Raza",
		Phone: ptr.Ptr("+923001234567"),
	}
}

func newTestUseCase(appointments *fakeAppointmentRepo, availability *fakeAvailabilityRepo, configs *fakeConfigRepo, crm *fakeCRMClient, now time.Time) *UseCase {
	uc := NewUseCase(appointments, availability, configs, crm, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func defaultRequest() *Request {
	return &Request{
		CreatedByUserID: testUserID,
		LeadID:          testLeadID,
		ConsultantID:    testConsultantID,
		OfficeID:        testOfficeID,
		Date:            testDate,
		StartTime:       types.TimeString("10:00"),
	}
}

func TestExecute_CreatesAppointmentWithDenormalizedData(t *testing.T) {
	appointments := &fakeAppointmentRepo{nextID: 101}
	uc := newTestUseCase(appointments, &fakeAvailabilityRepo{}, &fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()}, testDate)

	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes) // Длительность по умолчанию
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, "Ali Raza", resp.LeadName)
	require.NotNil(t, resp.LeadPhone)
	assert.Equal(t, "+923001234567", *resp.LeadPhone)
	assert.Equal(t, "Sarah Ahmed", resp.ConsultantName)

	require.NotNil(t, appointments.created)
	assert.Equal(t, testUserID, appointments.created.CreatedByUserID)
}

func TestExecute_ConflictingSlotRejected(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		nextID: 101,
		existing: []*domain.Appointment{
			{
				ID:              1,
				ConsultantID:    testConsultantID,
				Date:            testDate,
				StartTime:       types.TimeString("10:00"),
				DurationMinutes: 60,
				Status:          domain.StatusScheduled,
			},
		},
	}
	uc := newTestUseCase(appointments, &fakeAvailabilityRepo{}, &fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()}, testDate)

	req := defaultRequest()
	req.StartTime = types.TimeString("10:30") // Пересекается с записью 10:00-11:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, appointments.created)
}

func TestExecute_LimitedSlotIsBookable(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		nextID: 101,
		existing: []*domain.Appointment{
			{
				ID:              1,
				ConsultantID:    testConsultantID,
				Date:            testDate,
				StartTime:       types.TimeString("10:30"),
				DurationMinutes: 60,
				Status:          domain.StatusScheduled,
			},
		},
	}
	uc := newTestUseCase(appointments, &fakeAvailabilityRepo{}, &fakeConfigRepo{config: &domain.ScheduleConfig{
		ID:                     5,
		OfficeID:               testOfficeID,
		SlotIntervalMinutes:    30,
		DefaultDurationMinutes: 30,
	}}, &fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()}, testDate)

	// Слот 10:00-10:30 примыкает к записи 10:30 - limited, но доступен для записи
	resp, err := uc.Execute(context.Background(), defaultRequest())
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_OffGridStartTimeRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{nextID: 101}, &fakeAvailabilityRepo{}, &fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()}, testDate)

	req := defaultRequest()
	req.StartTime = types.TimeString("10:15")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{nextID: 101}, &fakeAvailabilityRepo{}, &fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()}, testDate)

	req := defaultRequest()
	req.Date = time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC) // Суббота

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOfficeClosed)
}

func TestExecute_BlockedDayRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{nextID: 101},
		&fakeAvailabilityRepo{window: &domain.AvailabilityWindow{
			ConsultantID: testConsultantID,
			Date:         testDate,
			IsAvailable:  false,
		}},
		&fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()}, testDate)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_MinNoticeEnforcedForToday(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{nextID: 101}, &fakeAvailabilityRepo{},
		&fakeConfigRepo{config: &domain.ScheduleConfig{
			ID:                     5,
			OfficeID:               testOfficeID,
			SlotIntervalMinutes:    30,
			DefaultDurationMinutes: 60,
			MinNoticeMinutes:       120,
		}},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()},
		time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC))

	// 10:00 при "сейчас" 09:00 и минимальном уведомлении 120 минут
	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_LeadNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{nextID: 101}, &fakeAvailabilityRepo{}, &fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), leadErr: crmservice.ErrLeadNotFound}, testDate)

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{nextID: 101}, &fakeAvailabilityRepo{}, &fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()},
		testDate.AddDate(0, 0, 1))

	_, err := uc.Execute(context.Background(), defaultRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{nextID: 101}, &fakeAvailabilityRepo{}, &fakeConfigRepo{},
		&fakeCRMClient{office: testOffice(), consultant: testConsultant(), lead: testLead()}, testDate)

	req := defaultRequest()
	req.LeadID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
