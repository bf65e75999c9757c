package communications_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/communications"
	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhir/practitioners"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhirtest"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishMessageSent(_ context.Context, communicationID, _, _ string) error {
	p.events = append(p.events, communicationID)
	return nil
}

type fixture struct {
	communications communications.CommunicationFhirRepository
	patients       patients.PatientFhirRepository
	practitioners  practitioners.PractitionerFhirRepository
	publisher      *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)

	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	patientRepo := patients.NewPatientFhirRepository(client, zap.NewNop())
	practitionerRepo := practitioners.NewPractitionerFhirRepository(client, zap.NewNop())
	publisher := &recordingPublisher{}
	return &fixture{
		communications: communications.NewCommunicationFhirRepository(client, patientRepo, practitionerRepo, publisher, zap.NewNop()),
		patients:       patientRepo,
		practitioners:  practitionerRepo,
		publisher:      publisher,
	}
}

func (f *fixture) seedParties(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := f.patients.CreatePatient(ctx, "19900101-1234", "Anna", "Svensson", "kvinna", "", "")
	require.NoError(t, err)
	_, err = f.practitioners.CreatePractitioner(ctx, "DOC-1", "Erik", "Larsson", "")
	require.NoError(t, err)
}

func TestSendMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	created, err := f.communications.SendMessage(ctx, "MSG-1",
		communications.Party{PatientPN: "19900101-1234"},
		communications.Party{StaffID: "DOC-1"},
		"Hello doctor")
	require.NoError(t, err)
	assert.Equal(t, constvars.FhirCommunicationStatusCompleted, created.Status)
	assert.NotEmpty(t, created.Sent)
	require.NotNil(t, created.Sender)
	assert.Contains(t, created.Sender.Reference, "Patient/")
	require.Len(t, created.Recipient, 1)
	assert.Contains(t, created.Recipient[0].Reference, "Practitioner/")
	require.Len(t, created.Payload, 1)
	assert.Equal(t, "Hello doctor", created.Payload[0].ContentString)

	assert.Equal(t, []string{"MSG-1"}, f.publisher.events, "a sent message is announced on the queue")
}

func TestSendMessagePartyValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	// Neither field set.
	_, err := f.communications.SendMessage(ctx, "MSG-1",
		communications.Party{},
		communications.Party{StaffID: "DOC-1"},
		"text")
	assert.True(t, exceptions.IsInvalidArgument(err))

	// Both fields set.
	_, err = f.communications.SendMessage(ctx, "MSG-1",
		communications.Party{PatientPN: "19900101-1234", StaffID: "DOC-1"},
		communications.Party{StaffID: "DOC-1"},
		"text")
	assert.True(t, exceptions.IsInvalidArgument(err))

	// Blank text.
	_, err = f.communications.SendMessage(ctx, "MSG-1",
		communications.Party{PatientPN: "19900101-1234"},
		communications.Party{StaffID: "DOC-1"},
		"  ")
	assert.True(t, exceptions.IsInvalidArgument(err))
}

func TestGetMyMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)
	_, err := f.patients.CreatePatient(ctx, "19851231-5678", "Bo", "Nilsson", "man", "", "")
	require.NoError(t, err)

	anna := communications.Party{PatientPN: "19900101-1234"}
	bo := communications.Party{PatientPN: "19851231-5678"}
	doctor := communications.Party{StaffID: "DOC-1"}

	_, err = f.communications.SendMessage(ctx, "MSG-1", anna, doctor, "from anna")
	require.NoError(t, err)
	_, err = f.communications.SendMessage(ctx, "MSG-2", doctor, anna, "to anna")
	require.NoError(t, err)
	_, err = f.communications.SendMessage(ctx, "MSG-3", bo, doctor, "from bo")
	require.NoError(t, err)

	mine, err := f.communications.GetMyMessages(ctx, anna)
	require.NoError(t, err)
	assert.Len(t, mine, 2, "sender and first-recipient matches both count")

	all, err := f.communications.GetMyMessages(ctx, doctor)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetMessagesBetween(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)
	_, err := f.patients.CreatePatient(ctx, "19851231-5678", "Bo", "Nilsson", "man", "", "")
	require.NoError(t, err)

	anna := communications.Party{PatientPN: "19900101-1234"}
	bo := communications.Party{PatientPN: "19851231-5678"}
	doctor := communications.Party{StaffID: "DOC-1"}

	_, err = f.communications.SendMessage(ctx, "MSG-1", anna, doctor, "hello")
	require.NoError(t, err)
	_, err = f.communications.SendMessage(ctx, "MSG-2", doctor, anna, "hi")
	require.NoError(t, err)
	_, err = f.communications.SendMessage(ctx, "MSG-3", bo, doctor, "other thread")
	require.NoError(t, err)

	conversation, err := f.communications.GetMessagesBetween(ctx, anna, doctor)
	require.NoError(t, err)
	assert.Len(t, conversation, 2, "both directions are included")

	_, err = f.communications.GetMessagesBetween(ctx, anna, bo)
	assert.True(t, exceptions.IsNotFound(err))
}

func TestGetCommunicationDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedParties(t, ctx)

	_, err := f.communications.SendMessage(ctx, "MSG-1",
		communications.Party{PatientPN: "19900101-1234"},
		communications.Party{StaffID: "DOC-1"},
		"Hello doctor")
	require.NoError(t, err)

	details, err := f.communications.GetCommunicationDetails(ctx, "MSG-1")
	require.NoError(t, err)
	assert.Contains(t, details, "Communication ID: MSG-1")
	assert.Contains(t, details, "Sender: Patient Anna Svensson")
	assert.Contains(t, details, "Recipient: Dr. Erik Larsson")
	assert.Contains(t, details, "Message: Hello doctor")
}
