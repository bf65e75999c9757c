package appointments

import (
	"context"
	"time"

	"clinrec-service/internal/pkg/fhir_dto"
)

type AppointmentFhirRepository interface {
	// CreateAppointment books an appointment between a patient (by personal
	// number) and a practitioner (by staff id). End must be strictly after
	// start.
	CreateAppointment(ctx context.Context, appointmentID, patientPN, doctorID string, starts, ends time.Time, reason string) (*fhir_dto.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*fhir_dto.Appointment, error)
	// ListByPatient returns every appointment the patient participates in.
	// An empty result is reported as not found.
	ListByPatient(ctx context.Context, patientPN string) ([]fhir_dto.Appointment, error)
	// ListByPractitioner returns every appointment of the practitioner. An
	// empty result is reported as not found.
	ListByPractitioner(ctx context.Context, doctorID string) ([]fhir_dto.Appointment, error)
	GetAppointmentDetails(ctx context.Context, appointmentID string) (string, error)
	// UpdateAppointment applies the non-nil/non-blank fields and re-checks
	// that end stays strictly after start.
	UpdateAppointment(ctx context.Context, appointmentID string, newStarts, newEnds *time.Time, newReason string) (*fhir_dto.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string, confirmed bool) (string, error)
	// AppointmentID extracts the business id from a fetched appointment,
	// falling back to "N/A" when the identifier is absent.
	AppointmentID(appointment *fhir_dto.Appointment) string
}
