package practitioners_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/practitioners"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhirtest"
)

func newRepo(t *testing.T) practitioners.PractitionerFhirRepository {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)
	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	return practitioners.NewPractitionerFhirRepository(client, zap.NewNop())
}

func TestCreatePractitionerAndFindByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.CreatePractitioner(ctx, "DOC-1", "Erik", "Larsson", "0859012345")
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, constvars.SystemDoctorID, created.Identifier[0].System)
	assert.Equal(t, constvars.FhirContactPointUseWork, created.Telecom[0].Use)

	found, err := repo.FindByID(ctx, "DOC-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "DOC-1", repo.DoctorID(found))
}

func TestFindPractitionerNotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByID(context.Background(), "DOC-404")
	assert.True(t, exceptions.IsNotFound(err))
}

func TestGetPractitionerSummary(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.CreatePractitioner(ctx, "DOC-1", "Erik", "Larsson", "0859012345")
	require.NoError(t, err)

	summary, err := repo.GetPractitionerSummary(ctx, "DOC-1")
	require.NoError(t, err)
	assert.Contains(t, summary, "Practitioner: Dr. Erik Larsson (ID: DOC-1)")
	assert.Contains(t, summary, "Phone: 0859012345")
}

func TestGetPractitionerSummaryWithoutPhone(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.CreatePractitioner(ctx, "DOC-2", "Karin", "Nilsson", "")
	require.NoError(t, err)

	summary, err := repo.GetPractitionerSummary(ctx, "DOC-2")
	require.NoError(t, err)
	assert.Contains(t, summary, "Phone: N/A")
}

func TestDeletePractitionerFlow(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.CreatePractitioner(ctx, "DOC-1", "Erik", "Larsson", "")
	require.NoError(t, err)

	warning, err := repo.DeletePractitioner(ctx, "DOC-1", false)
	require.NoError(t, err)
	assert.Contains(t, warning, "WARNING: Deleting Dr. Erik Larsson (ID: DOC-1)")

	result, err := repo.DeletePractitioner(ctx, "DOC-1", true)
	require.NoError(t, err)
	assert.Contains(t, result, "Successfully deleted Dr. Erik Larsson (ID: DOC-1)")

	_, err = repo.FindByID(ctx, "DOC-1")
	assert.True(t, exceptions.IsNotFound(err))
}
