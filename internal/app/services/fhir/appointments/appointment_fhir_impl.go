package appointments

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhir/practitioners"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/utils"
)

type appointmentFhirRepository struct {
	Client           *fhirstore.Client
	PatientRepo      patients.PatientFhirRepository
	PractitionerRepo practitioners.PractitionerFhirRepository
	Log              *zap.Logger
}

func NewAppointmentFhirRepository(
	client *fhirstore.Client,
	patientRepo patients.PatientFhirRepository,
	practitionerRepo practitioners.PractitionerFhirRepository,
	logger *zap.Logger,
) AppointmentFhirRepository {
	return &appointmentFhirRepository{
		Client:           client,
		PatientRepo:      patientRepo,
		PractitionerRepo: practitionerRepo,
		Log:              logger,
	}
}

func (r *appointmentFhirRepository) CreateAppointment(ctx context.Context, appointmentID, patientPN, doctorID string, starts, ends time.Time, reason string) (*fhir_dto.Appointment, error) {
	r.Log.Info("appointmentFhirRepository.CreateAppointment called",
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingPatientPNKey, patientPN),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if utils.IsBlank(appointmentID) {
		return nil, exceptions.ErrBlankField("appointmentID")
	}
	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}
	if utils.IsBlank(doctorID) {
		return nil, exceptions.ErrBlankField("doctorID")
	}
	if starts.IsZero() || ends.IsZero() {
		return nil, exceptions.ErrBlankField("starts and ends")
	}
	if !ends.After(starts) {
		return nil, exceptions.ErrEndNotAfterStart()
	}

	patient, err := r.PatientRepo.FindByPN(ctx, patientPN)
	if err != nil {
		return nil, err
	}
	practitioner, err := r.PractitionerRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	appointment := &fhir_dto.Appointment{
		ResourceType: constvars.ResourceAppointment,
		Identifier: []fhir_dto.Identifier{
			{System: constvars.SystemAppointmentID, Value: appointmentID},
		},
		Status: constvars.FhirAppointmentStatusBooked,
		Start:  utils.FormatInstant(starts),
		End:    utils.FormatInstant(ends),
		Participant: []fhir_dto.AppointmentParticipant{
			{
				Actor:  fhir_dto.Reference{Reference: fmt.Sprintf("%s/%s", constvars.ResourcePatient, patient.ID)},
				Status: constvars.FhirParticipantStatusAccepted,
			},
			{
				Actor:  fhir_dto.Reference{Reference: fmt.Sprintf("%s/%s", constvars.ResourcePractitioner, practitioner.ID)},
				Status: constvars.FhirParticipantStatusAccepted,
			},
		},
	}

	if !utils.IsBlank(reason) {
		appointment.Description = reason
	}

	created := new(fhir_dto.Appointment)
	if err := r.Client.Create(ctx, constvars.ResourceAppointment, appointment, created); err != nil {
		r.Log.Error("appointmentFhirRepository.CreateAppointment failed",
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("appointmentFhirRepository.CreateAppointment succeeded",
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStoreIDKey, created.ID),
	)
	return created, nil
}

func (r *appointmentFhirRepository) FindByID(ctx context.Context, appointmentID string) (*fhir_dto.Appointment, error) {
	if utils.IsBlank(appointmentID) {
		return nil, exceptions.ErrBlankField("appointmentID")
	}

	params := url.Values{}
	params.Set(constvars.SearchParamIdentifier, fmt.Sprintf("%s|%s", constvars.SystemAppointmentID, appointmentID))

	bundle, err := r.Client.Search(ctx, constvars.ResourceAppointment, params)
	if err != nil {
		return nil, err
	}
	if len(bundle.Entry) == 0 {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceAppointment, appointmentID)
	}

	appointment := new(fhir_dto.Appointment)
	if err := json.Unmarshal(bundle.Entry[0].Resource, appointment); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceAppointment)
	}
	return appointment, nil
}

func (r *appointmentFhirRepository) ListByPatient(ctx context.Context, patientPN string) ([]fhir_dto.Appointment, error) {
	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}

	patient, err := r.PatientRepo.FindByPN(ctx, patientPN)
	if err != nil {
		return nil, err
	}

	appointmentsFound, err := r.listByParticipant(ctx, constvars.SearchParamPatient, patient.ID)
	if err != nil {
		return nil, err
	}
	if len(appointmentsFound) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourceAppointment, fmt.Sprintf("patient %s", patientPN))
	}
	return appointmentsFound, nil
}

func (r *appointmentFhirRepository) ListByPractitioner(ctx context.Context, doctorID string) ([]fhir_dto.Appointment, error) {
	if utils.IsBlank(doctorID) {
		return nil, exceptions.ErrBlankField("doctorID")
	}

	practitioner, err := r.PractitionerRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	appointmentsFound, err := r.listByParticipant(ctx, constvars.SearchParamPractitioner, practitioner.ID)
	if err != nil {
		return nil, err
	}
	if len(appointmentsFound) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourceAppointment, fmt.Sprintf("practitioner %s", doctorID))
	}
	return appointmentsFound, nil
}

func (r *appointmentFhirRepository) listByParticipant(ctx context.Context, param, storeID string) ([]fhir_dto.Appointment, error) {
	cursor := fhirstore.NewCursor[fhir_dto.Appointment](r.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		params := url.Values{}
		params.Set(param, storeID)
		return r.Client.Search(ctx, constvars.ResourceAppointment, params)
	})
	return fhirstore.CollectAll(ctx, cursor)
}

func (r *appointmentFhirRepository) GetAppointmentDetails(ctx context.Context, appointmentID string) (string, error) {
	appointment, err := r.FindByID(ctx, appointmentID)
	if err != nil {
		return "", err
	}

	reason := appointment.Description
	if utils.IsBlank(reason) {
		reason = constvars.FhirIdentifierMissing
	}

	details := fmt.Sprintf("Appointment ID: %s\n", r.AppointmentID(appointment))
	details += fmt.Sprintf("Status: %s\n", statusDisplay(appointment.Status))
	details += fmt.Sprintf("Start: %s\n", localDisplay(appointment.Start))
	details += fmt.Sprintf("End: %s\n", localDisplay(appointment.End))
	details += fmt.Sprintf("Reason: %s\n", reason)
	details += "Participants:\n"

	for _, participant := range appointment.Participant {
		actorType, actorID := utils.SplitReference(participant.Actor.Reference)

		switch actorType {
		case constvars.ResourcePatient:
			patient := new(fhir_dto.Patient)
			if err := r.Client.Read(ctx, constvars.ResourcePatient, actorID, patient); err != nil {
				return "", err
			}
			details += fmt.Sprintf("  - Patient: %s\n", utils.FullName(patient.Name))
		case constvars.ResourcePractitioner:
			practitioner := new(fhir_dto.Practitioner)
			if err := r.Client.Read(ctx, constvars.ResourcePractitioner, actorID, practitioner); err != nil {
				return "", err
			}
			details += fmt.Sprintf("  - Practitioner: Dr. %s\n", utils.FullName(practitioner.Name))
		}
	}

	return details, nil
}

func (r *appointmentFhirRepository) UpdateAppointment(ctx context.Context, appointmentID string, newStarts, newEnds *time.Time, newReason string) (*fhir_dto.Appointment, error) {
	if utils.IsBlank(appointmentID) {
		return nil, exceptions.ErrBlankField("appointmentID")
	}

	appointment, err := r.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if newStarts != nil {
		appointment.Start = utils.FormatInstant(*newStarts)
	}
	if newEnds != nil {
		appointment.End = utils.FormatInstant(*newEnds)
	}
	if !utils.IsBlank(newReason) {
		appointment.Description = newReason
	}

	finalStart, err := utils.ParseInstant(appointment.Start)
	if err != nil {
		return nil, err
	}
	finalEnd, err := utils.ParseInstant(appointment.End)
	if err != nil {
		return nil, err
	}
	if !finalEnd.After(finalStart) {
		return nil, exceptions.ErrEndNotAfterStart()
	}

	if err := r.Client.Update(ctx, constvars.ResourceAppointment, appointment.ID, appointment, nil); err != nil {
		r.Log.Error("appointmentFhirRepository.UpdateAppointment failed",
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("appointmentFhirRepository.UpdateAppointment succeeded",
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStoreIDKey, appointment.ID),
	)
	return appointment, nil
}

func (r *appointmentFhirRepository) DeleteAppointment(ctx context.Context, appointmentID string, confirmed bool) (string, error) {
	appointment, err := r.FindByID(ctx, appointmentID)
	if err != nil {
		return "", err
	}
	id := r.AppointmentID(appointment)

	if !confirmed {
		warning := fmt.Sprintf("WARNING: Deleting appointment %s\n\n", id)
		warning += "This will delete the appointment from the records server.\n"
		warning += "Call again with confirmed=true to proceed"
		return warning, nil
	}

	if err := r.Client.Delete(ctx, constvars.ResourceAppointment, appointment.ID); err != nil {
		return "", err
	}

	r.Log.Info("appointmentFhirRepository.DeleteAppointment succeeded",
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStoreIDKey, appointment.ID),
	)
	return fmt.Sprintf("Successfully deleted appointment %s", id), nil
}

func (r *appointmentFhirRepository) AppointmentID(appointment *fhir_dto.Appointment) string {
	if value := utils.IdentifierValue(appointment.Identifier, constvars.SystemAppointmentID); value != "" {
		return value
	}
	return constvars.FhirIdentifierMissing
}

func statusDisplay(status string) string {
	if status == "" {
		return constvars.FhirIdentifierMissing
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

func localDisplay(instant string) string {
	parsed, err := utils.ParseInstant(instant)
	if err != nil {
		return instant
	}
	return utils.FormatLocal(parsed)
}
