package observations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/observations"
	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhirtest"
)

func newRepos(t *testing.T) (observations.ObservationFhirRepository, patients.PatientFhirRepository) {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)

	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	patientRepo := patients.NewPatientFhirRepository(client, zap.NewNop())
	return observations.NewObservationFhirRepository(client, patientRepo, zap.NewNop()), patientRepo
}

func TestCreateObservation(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	effective := time.Date(2030, 6, 1, 9, 0, 0, 0, time.Local)
	created, err := repo.CreateObservation(ctx, "OBS-1", "19900101-1234", "Blood pressure 120/80", effective)
	require.NoError(t, err)
	assert.Equal(t, constvars.FhirObservationStatusFinal, created.Status)
	assert.Equal(t, "Blood pressure 120/80", created.ValueString)

	found, err := repo.FindByID(ctx, "OBS-1")
	require.NoError(t, err)
	assert.Equal(t, "OBS-1", repo.ObservationID(found))
}

func TestCreateObservationUnknownPatient(t *testing.T) {
	repo, _ := newRepos(t)

	_, err := repo.CreateObservation(context.Background(), "OBS-1", "00000000-0000", "text", time.Now())
	assert.True(t, exceptions.IsNotFound(err))
}

func TestListObservationsByPatient(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	effective := time.Date(2030, 6, 1, 9, 0, 0, 0, time.Local)
	for _, id := range []string{"OBS-1", "OBS-2", "OBS-3"} {
		_, err := repo.CreateObservation(ctx, id, "19900101-1234", "note for "+id, effective)
		require.NoError(t, err)
	}

	found, err := repo.ListByPatient(ctx, "19900101-1234")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestListObservationsEmptyIsNotFound(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	_, err = repo.ListByPatient(ctx, "19900101-1234")
	assert.True(t, exceptions.IsNotFound(err))
}

func TestGetObservationDetails(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	effective := time.Date(2030, 6, 1, 9, 0, 0, 0, time.Local)
	_, err = repo.CreateObservation(ctx, "OBS-1", "19900101-1234", "Blood pressure 120/80", effective)
	require.NoError(t, err)

	details, err := repo.GetObservationDetails(ctx, "OBS-1")
	require.NoError(t, err)
	assert.Contains(t, details, "Observation ID: OBS-1")
	assert.Contains(t, details, "Patient: Anna Svensson")
	assert.Contains(t, details, "Description: Blood pressure 120/80")
}

func TestUpdateAndDeleteObservation(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	effective := time.Date(2030, 6, 1, 9, 0, 0, 0, time.Local)
	_, err = repo.CreateObservation(ctx, "OBS-1", "19900101-1234", "initial", effective)
	require.NoError(t, err)

	updated, err := repo.UpdateObservation(ctx, "OBS-1", "revised", nil)
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.ValueString)

	warning, err := repo.DeleteObservation(ctx, "OBS-1", false)
	require.NoError(t, err)
	assert.Contains(t, warning, "WARNING: Deleting observation OBS-1")

	_, err = repo.DeleteObservation(ctx, "OBS-1", true)
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, "OBS-1")
	assert.True(t, exceptions.IsNotFound(err))
}
