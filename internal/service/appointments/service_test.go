package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	appointmentRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/appointment"
	crmClient "github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/appointments/models"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	list        []*domain.Appointment

	gotFilter       *domain.ConsultantAppointmentsFilter
	cancelledID     int64
	cancelledStatus domain.AppointmentStatus
	cancelledReason string
	updatedStatus   domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = &filter
	return f.list, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	f.updatedStatus = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return nil
}

type fakeCRMClient struct {
	consultant *crmClient.Consultant
}

func (f *fakeCRMClient) GetConsultant(ctx context.Context, consultantID int64) (*crmClient.Consultant, error) {
	if f.consultant == nil || f.consultant.ID != consultantID {
		return nil, crmClient.ErrConsultantNotFound
	}
	return f.consultant, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	start, _ := types.NewTimeStringFromString("10:00")
	return &domain.Appointment{
		ID:              42,
		LeadID:          5,
		ConsultantID:    7,
		OfficeID:        3,
		CreatedByUserID: 100,
		Date:            time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: 60,
		Status:          status,
		LeadName:        "Ali Raza",
		ConsultantName:  "Sarah Ahmed",
	}
}

func TestService_GetByID_CreatorHasAccess(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 42, 100)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-11-10", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "scheduled", resp.Status)
}

func TestService_GetByID_ConsultantHasAccess(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 7)

	require.NoError(t, err)
}

func TestService_GetByID_StrangerDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 999)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeCRMClient{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 100)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_GetConsultantAppointments_BuildsFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{list: []*domain.Appointment{testAppointment(domain.StatusConfirmed)}}
	crm := &fakeCRMClient{consultant: &crmClient.Consultant{ID: 7, Name: "Sarah Ahmed", OfficeIDs: []int64{3}, IsActive: true}}
	svc := NewService(repo, crm, nopLogger{})

	officeID := int64(3)
	status := "confirmed"
	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetConsultantAppointments(context.Background(), &models.GetConsultantAppointmentsRequest{
		UserID:       100,
		ConsultantID: 7,
		OfficeID:     &officeID,
		StartDate:    &start,
		EndDate:      &end,
		Status:       &status,
	})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)

	require.NotNil(t, repo.gotFilter)
	assert.Equal(t, int64(7), repo.gotFilter.ConsultantID)
	assert.Equal(t, officeID, *repo.gotFilter.OfficeID)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)
	assert.False(t, repo.gotFilter.IncludeInactive)
}

func TestService_GetConsultantAppointments_UnknownConsultant(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeCRMClient{}, nopLogger{})

	_, err := svc.GetConsultantAppointments(context.Background(), &models.GetConsultantAppointmentsRequest{
		UserID:       100,
		ConsultantID: 7,
	})

	assert.ErrorIs(t, err, ErrConsultantNotFound)
}

func TestService_GetConsultantAppointments_InvalidStatusFilter(t *testing.T) {
	crm := &fakeCRMClient{consultant: &crmClient.Consultant{ID: 7, OfficeIDs: []int64{3}, IsActive: true}}
	svc := NewService(&fakeAppointmentRepo{}, crm, nopLogger{})

	status := "postponed"
	_, err := svc.GetConsultantAppointments(context.Background(), &models.GetConsultantAppointmentsRequest{
		UserID:       100,
		ConsultantID: 7,
		Status:       &status,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel_ByLead(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{
		UserID:             100,
		CancelledBy:        "lead",
		CancellationReason: "перенос на другую неделю",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelledByLead, repo.cancelledStatus)
	assert.Equal(t, "перенос на другую неделю", repo.cancelledReason)
}

func TestService_Cancel_ByOffice(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusConfirmed)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{
		UserID:      100,
		CancelledBy: "office",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByOffice, repo.cancelledStatus)
}

func TestService_Cancel_CompletedRejected(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusCompleted)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{
		UserID:      100,
		CancelledBy: "office",
	})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Zero(t, repo.cancelledID)
}

func TestService_Cancel_InvalidInitiator(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{
		UserID:      100,
		CancelledBy: "manager",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus_Completed(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusConfirmed)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
}

func TestService_UpdateStatus_CancellationMustUseCancel(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := NewService(repo, &fakeCRMClient{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		UserID: 100,
		Status: "cancelled_by_lead",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.updatedStatus)
}
