package appointments_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/appointments"
	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhir/practitioners"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhirtest"
)

type fixture struct {
	appointments  appointments.AppointmentFhirRepository
	patients      patients.PatientFhirRepository
	practitioners practitioners.PractitionerFhirRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)

	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	patientRepo := patients.NewPatientFhirRepository(client, zap.NewNop())
	practitionerRepo := practitioners.NewPractitionerFhirRepository(client, zap.NewNop())
	return &fixture{
		appointments:  appointments.NewAppointmentFhirRepository(client, patientRepo, practitionerRepo, zap.NewNop()),
		patients:      patientRepo,
		practitioners: practitionerRepo,
	}
}

func (f *fixture) seedParties(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := f.patients.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "kvinna", "", "")
	require.NoError(t, err)
	_, err = f.practitioners.CreatePractitioner(ctx, "DOC-1", "Erik", "Larsson", "")
	require.NoError(t, err)
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	starts := time.Date(2030, 6, 1, 10, 0, 0, 0, time.Local)
	ends := starts.Add(30 * time.Minute)

	created, err := f.appointments.CreateAppointment(ctx, "APT-1", "19900101-1234", "DOC-1", starts, ends, "Yearly check-up")
	require.NoError(t, err)
	assert.Equal(t, constvars.FhirAppointmentStatusBooked, created.Status)
	assert.Equal(t, "Yearly check-up", created.Description)
	require.Len(t, created.Participant, 2)
	for _, participant := range created.Participant {
		assert.Equal(t, constvars.FhirParticipantStatusAccepted, participant.Status)
	}

	found, err := f.appointments.FindByID(ctx, "APT-1")
	require.NoError(t, err)
	assert.Equal(t, "APT-1", f.appointments.AppointmentID(found))
}

func TestCreateAppointmentEndMustBeAfterStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	starts := time.Date(2030, 6, 1, 10, 0, 0, 0, time.Local)

	_, err := f.appointments.CreateAppointment(ctx, "APT-1", "19900101-1234", "DOC-1", starts, starts, "")
	require.Error(t, err)
	assert.True(t, exceptions.IsInvalidArgument(err), "equal instants are rejected")

	_, err = f.appointments.CreateAppointment(ctx, "APT-1", "19900101-1234", "DOC-1", starts, starts.Add(-time.Hour), "")
	assert.True(t, exceptions.IsInvalidArgument(err))
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.practitioners.CreatePractitioner(ctx, "DOC-1", "Erik", "Larsson", "")
	require.NoError(t, err)

	starts := time.Date(2030, 6, 1, 10, 0, 0, 0, time.Local)
	_, err = f.appointments.CreateAppointment(ctx, "APT-1", "00000000-0000", "DOC-1", starts, starts.Add(time.Hour), "")
	assert.True(t, exceptions.IsNotFound(err))
}

func TestListAppointmentsByParty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	starts := time.Date(2030, 6, 1, 10, 0, 0, 0, time.Local)
	for _, id := range []string{"APT-1", "APT-2"} {
		_, err := f.appointments.CreateAppointment(ctx, id, "19900101-1234", "DOC-1", starts, starts.Add(time.Hour), "")
		require.NoError(t, err)
		starts = starts.Add(24 * time.Hour)
	}

	byPatient, err := f.appointments.ListByPatient(ctx, "19900101-1234")
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)

	byPractitioner, err := f.appointments.ListByPractitioner(ctx, "DOC-1")
	require.NoError(t, err)
	assert.Len(t, byPractitioner, 2)
}

func TestListAppointmentsEmptyIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	_, err := f.appointments.ListByPatient(ctx, "19900101-1234")
	assert.True(t, exceptions.IsNotFound(err))
}

func TestGetAppointmentDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	starts := time.Date(2030, 6, 1, 10, 0, 0, 0, time.Local)
	_, err := f.appointments.CreateAppointment(ctx, "APT-1", "19900101-1234", "DOC-1", starts, starts.Add(time.Hour), "Yearly check-up")
	require.NoError(t, err)

	details, err := f.appointments.GetAppointmentDetails(ctx, "APT-1")
	require.NoError(t, err)
	assert.Contains(t, details, "Appointment ID: APT-1")
	assert.Contains(t, details, "Status: Booked")
	assert.Contains(t, details, "Reason: Yearly check-up")
	assert.Contains(t, details, "Patient: Anna Svensson")
	assert.Contains(t, details, "Practitioner: Dr. Erik Larsson")
}

func TestUpdateAppointmentRecheckInterval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	starts := time.Date(2030, 6, 1, 10, 0, 0, 0, time.Local)
	ends := starts.Add(time.Hour)
	_, err := f.appointments.CreateAppointment(ctx, "APT-1", "19900101-1234", "DOC-1", starts, ends, "")
	require.NoError(t, err)

	// Moving the end before the existing start is rejected post-mutation.
	badEnd := starts.Add(-time.Hour)
	_, err = f.appointments.UpdateAppointment(ctx, "APT-1", nil, &badEnd, "")
	assert.True(t, exceptions.IsInvalidArgument(err))

	newEnd := starts.Add(2 * time.Hour)
	updated, err := f.appointments.UpdateAppointment(ctx, "APT-1", nil, &newEnd, "Extended")
	require.NoError(t, err)
	assert.Equal(t, "Extended", updated.Description)
}

func TestDeleteAppointmentFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	starts := time.Date(2030, 6, 1, 10, 0, 0, 0, time.Local)
	_, err := f.appointments.CreateAppointment(ctx, "APT-1", "19900101-1234", "DOC-1", starts, starts.Add(time.Hour), "")
	require.NoError(t, err)

	warning, err := f.appointments.DeleteAppointment(ctx, "APT-1", false)
	require.NoError(t, err)
	assert.Contains(t, warning, "WARNING: Deleting appointment APT-1")

	result, err := f.appointments.DeleteAppointment(ctx, "APT-1", true)
	require.NoError(t, err)
	assert.Contains(t, result, "Successfully deleted appointment APT-1")

	_, err = f.appointments.FindByID(ctx, "APT-1")
	assert.True(t, exceptions.IsNotFound(err))
}
