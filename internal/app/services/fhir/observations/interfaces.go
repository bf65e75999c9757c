package observations

import (
	"context"
	"time"

	"clinrec-service/internal/pkg/fhir_dto"
)

type ObservationFhirRepository interface {
	// CreateObservation records a free-text observation for the patient at
	// the given effective time. Status is always final on creation.
	CreateObservation(ctx context.Context, observationID, patientPN, description string, effective time.Time) (*fhir_dto.Observation, error)
	FindByID(ctx context.Context, observationID string) (*fhir_dto.Observation, error)
	// ListByPatient returns every observation recorded for the patient. An
	// empty result is reported as not found.
	ListByPatient(ctx context.Context, patientPN string) ([]fhir_dto.Observation, error)
	GetObservationDetails(ctx context.Context, observationID string) (string, error)
	UpdateObservation(ctx context.Context, observationID, newDescription string, newEffective *time.Time) (*fhir_dto.Observation, error)
	DeleteObservation(ctx context.Context, observationID string, confirmed bool) (string, error)
	// ObservationID extracts the business id from a fetched observation,
	// falling back to "N/A" when the identifier is absent.
	ObservationID(observation *fhir_dto.Observation) string
}
