package observations

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/utils"
)

type observationFhirRepository struct {
	Client      *fhirstore.Client
	PatientRepo patients.PatientFhirRepository
	Log         *zap.Logger
}

func NewObservationFhirRepository(client *fhirstore.Client, patientRepo patients.PatientFhirRepository, logger *zap.Logger) ObservationFhirRepository {
	return &observationFhirRepository{
		Client:      client,
		PatientRepo: patientRepo,
		Log:         logger,
	}
}

func (r *observationFhirRepository) CreateObservation(ctx context.Context, observationID, patientPN, description string, effective time.Time) (*fhir_dto.Observation, error) {
	r.Log.Info("observationFhirRepository.CreateObservation called",
		zap.String(constvars.LoggingObservationIDKey, observationID),
		zap.String(constvars.LoggingPatientPNKey, patientPN),
	)

	if utils.IsBlank(observationID) {
		return nil, exceptions.ErrBlankField("observationID")
	}
	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}
	if utils.IsBlank(description) {
		return nil, exceptions.ErrBlankField("description")
	}
	if effective.IsZero() {
		return nil, exceptions.ErrBlankField("effective")
	}

	patient, err := r.PatientRepo.FindByPN(ctx, patientPN)
	if err != nil {
		return nil, err
	}

	observation := &fhir_dto.Observation{
		ResourceType: constvars.ResourceObservation,
		Identifier: []fhir_dto.Identifier{
			{System: constvars.SystemObservationID, Value: observationID},
		},
		Status: constvars.FhirObservationStatusFinal,
		Subject: fhir_dto.Reference{
			Reference: fmt.Sprintf("%s/%s", constvars.ResourcePatient, patient.ID),
		},
		EffectiveDateTime: utils.FormatInstant(effective),
		ValueString:       description,
	}

	created := new(fhir_dto.Observation)
	if err := r.Client.Create(ctx, constvars.ResourceObservation, observation, created); err != nil {
		r.Log.Error("observationFhirRepository.CreateObservation failed",
			zap.String(constvars.LoggingObservationIDKey, observationID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("observationFhirRepository.CreateObservation succeeded",
		zap.String(constvars.LoggingObservationIDKey, observationID),
		zap.String(constvars.LoggingStoreIDKey, created.ID),
	)
	return created, nil
}

func (r *observationFhirRepository) FindByID(ctx context.Context, observationID string) (*fhir_dto.Observation, error) {
	if utils.IsBlank(observationID) {
		return nil, exceptions.ErrBlankField("observationID")
	}

	params := url.Values{}
	params.Set(constvars.SearchParamIdentifier, fmt.Sprintf("%s|%s", constvars.SystemObservationID, observationID))

	bundle, err := r.Client.Search(ctx, constvars.ResourceObservation, params)
	if err != nil {
		return nil, err
	}
	if len(bundle.Entry) == 0 {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceObservation, observationID)
	}

	observation := new(fhir_dto.Observation)
	if err := json.Unmarshal(bundle.Entry[0].Resource, observation); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
	}
	return observation, nil
}

func (r *observationFhirRepository) ListByPatient(ctx context.Context, patientPN string) ([]fhir_dto.Observation, error) {
	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}

	patient, err := r.PatientRepo.FindByPN(ctx, patientPN)
	if err != nil {
		return nil, err
	}

	cursor := fhirstore.NewCursor[fhir_dto.Observation](r.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		params := url.Values{}
		params.Set(constvars.SearchParamPatient, patient.ID)
		return r.Client.Search(ctx, constvars.ResourceObservation, params)
	})

	observationsFound, err := fhirstore.CollectAll(ctx, cursor)
	if err != nil {
		return nil, err
	}
	if len(observationsFound) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourceObservation, fmt.Sprintf("patient %s", patientPN))
	}

	r.Log.Info("observationFhirRepository.ListByPatient succeeded",
		zap.String(constvars.LoggingPatientPNKey, patientPN),
		zap.Int(constvars.LoggingResultCountKey, len(observationsFound)),
	)
	return observationsFound, nil
}

func (r *observationFhirRepository) GetObservationDetails(ctx context.Context, observationID string) (string, error) {
	observation, err := r.FindByID(ctx, observationID)
	if err != nil {
		return "", err
	}

	patientName := constvars.FhirIdentifierMissing
	if _, patientStoreID := utils.SplitReference(observation.Subject.Reference); patientStoreID != "" {
		patient := new(fhir_dto.Patient)
		if err := r.Client.Read(ctx, constvars.ResourcePatient, patientStoreID, patient); err == nil {
			patientName = utils.FullName(patient.Name)
		}
	}

	effective := observation.EffectiveDateTime
	if parsed, err := utils.ParseInstant(effective); err == nil {
		effective = utils.FormatLocal(parsed)
	}

	details := fmt.Sprintf("Observation ID: %s\n", r.ObservationID(observation))
	details += fmt.Sprintf("Status: %s\n", observation.Status)
	details += fmt.Sprintf("Patient: %s\n", patientName)
	details += fmt.Sprintf("Date: %s\n", effective)
	details += fmt.Sprintf("Description: %s", observation.ValueString)
	return details, nil
}

func (r *observationFhirRepository) UpdateObservation(ctx context.Context, observationID, newDescription string, newEffective *time.Time) (*fhir_dto.Observation, error) {
	observation, err := r.FindByID(ctx, observationID)
	if err != nil {
		return nil, err
	}

	if !utils.IsBlank(newDescription) {
		observation.ValueString = newDescription
	}
	if newEffective != nil {
		observation.EffectiveDateTime = utils.FormatInstant(*newEffective)
	}

	if err := r.Client.Update(ctx, constvars.ResourceObservation, observation.ID, observation, nil); err != nil {
		r.Log.Error("observationFhirRepository.UpdateObservation failed",
			zap.String(constvars.LoggingObservationIDKey, observationID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("observationFhirRepository.UpdateObservation succeeded",
		zap.String(constvars.LoggingObservationIDKey, observationID),
		zap.String(constvars.LoggingStoreIDKey, observation.ID),
	)
	return observation, nil
}

func (r *observationFhirRepository) DeleteObservation(ctx context.Context, observationID string, confirmed bool) (string, error) {
	observation, err := r.FindByID(ctx, observationID)
	if err != nil {
		return "", err
	}
	id := r.ObservationID(observation)

	if !confirmed {
		warning := fmt.Sprintf("WARNING: Deleting observation %s\n\n", id)
		warning += "This will delete the observation from the records server.\n"
		warning += "Call again with confirmed=true to proceed"
		return warning, nil
	}

	if err := r.Client.Delete(ctx, constvars.ResourceObservation, observation.ID); err != nil {
		return "", err
	}

	r.Log.Info("observationFhirRepository.DeleteObservation succeeded",
		zap.String(constvars.LoggingObservationIDKey, observationID),
		zap.String(constvars.LoggingStoreIDKey, observation.ID),
	)
	return fmt.Sprintf("Successfully deleted observation %s", id), nil
}

func (r *observationFhirRepository) ObservationID(observation *fhir_dto.Observation) string {
	if value := utils.IdentifierValue(observation.Identifier, constvars.SystemObservationID); value != "" {
		return value
	}
	return constvars.FhirIdentifierMissing
}
