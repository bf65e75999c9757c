package practitioners

import (
	"context"

	"clinrec-service/internal/pkg/fhir_dto"
)

type PractitionerFhirRepository interface {
	CreatePractitioner(ctx context.Context, doctorID, firstName, lastName, phoneNumber string) (*fhir_dto.Practitioner, error)
	// FindByID resolves a staff id to the stored practitioner; the first
	// identifier match is authoritative.
	FindByID(ctx context.Context, doctorID string) (*fhir_dto.Practitioner, error)
	SearchByName(ctx context.Context, firstName, lastName string) ([]fhir_dto.Practitioner, error)
	GetPractitionerSummary(ctx context.Context, doctorID string) (string, error)
	UpdatePractitioner(ctx context.Context, doctorID, firstName, lastName, phoneNumber string) (*fhir_dto.Practitioner, error)
	DeletePractitioner(ctx context.Context, doctorID string, confirmed bool) (string, error)
	// DoctorID extracts the staff id from a fetched practitioner, falling
	// back to "N/A" when the identifier is absent.
	DoctorID(practitioner *fhir_dto.Practitioner) string
}
