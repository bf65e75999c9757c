package communications

import (
	"context"

	"clinrec-service/internal/pkg/fhir_dto"
)

// Party identifies one side of a message. Exactly one of the two fields
// must be set: PatientPN for a patient, StaffID for a practitioner.
type Party struct {
	PatientPN string
	StaffID   string
}

type CommunicationFhirRepository interface {
	// SendMessage creates a completed communication from sender to
	// recipient carrying the given text, stamped with the current instant.
	SendMessage(ctx context.Context, communicationID string, sender, recipient Party, text string) (*fhir_dto.Communication, error)
	FindByID(ctx context.Context, communicationID string) (*fhir_dto.Communication, error)
	// GetMyMessages returns every communication where the party appears as
	// the sender or as the first recipient. An empty result is reported as
	// not found.
	GetMyMessages(ctx context.Context, party Party) ([]fhir_dto.Communication, error)
	// GetMessagesBetween returns the conversation between the two parties,
	// matching sender and first recipient in either direction.
	GetMessagesBetween(ctx context.Context, first, second Party) ([]fhir_dto.Communication, error)
	GetCommunicationDetails(ctx context.Context, communicationID string) (string, error)
	DeleteCommunication(ctx context.Context, communicationID string, confirmed bool) (string, error)
	// CommunicationID extracts the business id from a fetched communication,
	// falling back to "N/A" when the identifier is absent.
	CommunicationID(communication *fhir_dto.Communication) string
}

// MessagePublisher receives an event after each successfully sent message.
// The queue is advisory; publish failures are logged and never fail the send.
type MessagePublisher interface {
	PublishMessageSent(ctx context.Context, communicationID, senderRef, recipientRef string) error
}
