package conditions

import (
	"context"

	"clinrec-service/internal/pkg/codes"
	"clinrec-service/internal/pkg/fhir_dto"
)

type ConditionFhirRepository interface {
	// CreateCondition records a diagnosis for the patient. Clinical status
	// defaults to active and severity carries the canonical Swedish label.
	CreateCondition(ctx context.Context, conditionID, patientPN, details string, severity codes.Severity) (*fhir_dto.Condition, error)
	FindByID(ctx context.Context, conditionID string) (*fhir_dto.Condition, error)
	// ListByPatient returns every condition recorded for the patient. An
	// empty result is reported as not found.
	ListByPatient(ctx context.Context, patientPN string) ([]fhir_dto.Condition, error)
	// ListByPatientAndSeverity fetches the patient's conditions and keeps
	// only those whose severity text equals the canonical label.
	ListByPatientAndSeverity(ctx context.Context, patientPN string, severity codes.Severity) ([]fhir_dto.Condition, error)
	GetConditionDetails(ctx context.Context, conditionID string) (string, error)
	UpdateCondition(ctx context.Context, conditionID, newDetails string, newSeverity codes.Severity) (*fhir_dto.Condition, error)
	DeleteCondition(ctx context.Context, conditionID string, confirmed bool) (string, error)
	// ConditionID extracts the business id from a fetched condition, falling
	// back to "N/A" when the identifier is absent.
	ConditionID(condition *fhir_dto.Condition) string
}
