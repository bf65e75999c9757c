package conditions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/conditions"
	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/codes"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhirtest"
)

func newRepos(t *testing.T) (conditions.ConditionFhirRepository, patients.PatientFhirRepository) {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)

	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	patientRepo := patients.NewPatientFhirRepository(client, zap.NewNop())
	return conditions.NewConditionFhirRepository(client, patientRepo, zap.NewNop()), patientRepo
}

func TestCreateCondition(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	created, err := repo.CreateCondition(ctx, "CON-1", "19900101-1234", "Pollen allergy", codes.SeverityLow)
	require.NoError(t, err)
	assert.Equal(t, constvars.FhirConditionClinicalStatusActive, created.ClinicalStatus.Text)
	assert.Equal(t, "Låg", created.Severity.Text)
	assert.Equal(t, "Pollen allergy", created.Code.Text)

	found, err := repo.FindByID(ctx, "CON-1")
	require.NoError(t, err)
	assert.Equal(t, "CON-1", repo.ConditionID(found))
}

func TestCreateConditionRejectsUnknownSeverity(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	_, err = repo.CreateCondition(ctx, "CON-1", "19900101-1234", "details", codes.Severity("Extreme"))
	assert.True(t, exceptions.IsInvalidArgument(err))
}

func TestListConditionsBySeverity(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	_, err = repo.CreateCondition(ctx, "CON-1", "19900101-1234", "Pollen allergy", codes.SeverityLow)
	require.NoError(t, err)
	_, err = repo.CreateCondition(ctx, "CON-2", "19900101-1234", "Hypertension", codes.SeverityHigh)
	require.NoError(t, err)
	_, err = repo.CreateCondition(ctx, "CON-3", "19900101-1234", "Asthma", codes.SeverityHigh)
	require.NoError(t, err)

	all, err := repo.ListByPatient(ctx, "19900101-1234")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	high, err := repo.ListByPatientAndSeverity(ctx, "19900101-1234", codes.SeverityHigh)
	require.NoError(t, err)
	require.Len(t, high, 2)
	for _, condition := range high {
		assert.Equal(t, "Hög", condition.Severity.Text)
	}

	_, err = repo.ListByPatientAndSeverity(ctx, "19900101-1234", codes.SeverityMedium)
	assert.True(t, exceptions.IsNotFound(err), "no medium conditions exist")
}

func TestGetConditionDetails(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	_, err = repo.CreateCondition(ctx, "CON-1", "19900101-1234", "Pollen allergy", codes.SeverityMedium)
	require.NoError(t, err)

	details, err := repo.GetConditionDetails(ctx, "CON-1")
	require.NoError(t, err)
	assert.Contains(t, details, "Condition ID: CON-1")
	assert.Contains(t, details, "Patient: Anna Svensson")
	assert.Contains(t, details, "Severity: Medel")
	assert.Contains(t, details, "Clinical Status: active")
	assert.Contains(t, details, "Details: Pollen allergy")
}

func TestUpdateAndDeleteCondition(t *testing.T) {
	repo, patientRepo := newRepos(t)
	ctx := context.Background()

	_, err := patientRepo.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "", "", "")
	require.NoError(t, err)

	_, err = repo.CreateCondition(ctx, "CON-1", "19900101-1234", "Pollen allergy", codes.SeverityLow)
	require.NoError(t, err)

	updated, err := repo.UpdateCondition(ctx, "CON-1", "", codes.SeverityHigh)
	require.NoError(t, err)
	assert.Equal(t, "Hög", updated.Severity.Text)
	assert.Equal(t, "Pollen allergy", updated.Code.Text, "details untouched when left blank")

	warning, err := repo.DeleteCondition(ctx, "CON-1", false)
	require.NoError(t, err)
	assert.Contains(t, warning, "WARNING: Deleting condition CON-1")

	_, err = repo.DeleteCondition(ctx, "CON-1", true)
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, "CON-1")
	assert.True(t, exceptions.IsNotFound(err))
}
