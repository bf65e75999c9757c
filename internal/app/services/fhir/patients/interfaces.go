package patients

import (
	"context"

	"clinrec-service/internal/pkg/fhir_dto"
)

type PatientFhirRepository interface {
	// CreatePatient registers a new patient keyed by personal number. Sex,
	// phone number and primary doctor store id are optional.
	CreatePatient(ctx context.Context, patientPN, firstName, lastName, sex, phoneNumber, primaryDoctorID string) (*fhir_dto.Patient, error)
	// FindByPN resolves a personal number to the stored patient; the first
	// identifier match is authoritative.
	FindByPN(ctx context.Context, patientPN string) (*fhir_dto.Patient, error)
	SearchByName(ctx context.Context, firstName, lastName string) ([]fhir_dto.Patient, error)
	GetPatientSummary(ctx context.Context, patientPN string) (string, error)
	// UpdatePatient replaces only the non-blank fields; name and phone
	// replace the whole respective collection.
	UpdatePatient(ctx context.Context, patientPN, firstName, lastName, sex, phoneNumber, primaryDoctorID string) (*fhir_dto.Patient, error)
	// DeletePatient returns a warning string without deleting when
	// confirmed is false.
	DeletePatient(ctx context.Context, patientPN string, confirmed bool) (string, error)
	// GetPrimaryDoctorID returns the store id of the patient's primary
	// practitioner, or "" when unset.
	GetPrimaryDoctorID(patient *fhir_dto.Patient) string
	// GetPrimaryDoctorIdentifier resolves the primary practitioner to its
	// staff id; "" when unset or unresolvable.
	GetPrimaryDoctorIdentifier(ctx context.Context, patient *fhir_dto.Patient) string
	// PatientPN extracts the personal number from a fetched patient,
	// falling back to "N/A" when the identifier is absent.
	PatientPN(patient *fhir_dto.Patient) string
}
