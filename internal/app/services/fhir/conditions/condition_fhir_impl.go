package conditions

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/codes"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/utils"
)

type conditionFhirRepository struct {
	Client      *fhirstore.Client
	PatientRepo patients.PatientFhirRepository
	Log         *zap.Logger
}

func NewConditionFhirRepository(client *fhirstore.Client, patientRepo patients.PatientFhirRepository, logger *zap.Logger) ConditionFhirRepository {
	return &conditionFhirRepository{
		Client:      client,
		PatientRepo: patientRepo,
		Log:         logger,
	}
}

func (r *conditionFhirRepository) CreateCondition(ctx context.Context, conditionID, patientPN, details string, severity codes.Severity) (*fhir_dto.Condition, error) {
	r.Log.Info("conditionFhirRepository.CreateCondition called",
		zap.String(constvars.LoggingConditionIDKey, conditionID),
		zap.String(constvars.LoggingPatientPNKey, patientPN),
	)

	if utils.IsBlank(conditionID) {
		return nil, exceptions.ErrBlankField("conditionID")
	}
	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}
	if utils.IsBlank(details) {
		return nil, exceptions.ErrBlankField("details")
	}
	if !severity.Valid() {
		return nil, exceptions.ErrBlankField("severity")
	}

	patient, err := r.PatientRepo.FindByPN(ctx, patientPN)
	if err != nil {
		return nil, err
	}

	condition := &fhir_dto.Condition{
		ResourceType: constvars.ResourceCondition,
		Identifier: []fhir_dto.Identifier{
			{System: constvars.SystemConditionID, Value: conditionID},
		},
		ClinicalStatus: &fhir_dto.CodeableConcept{Text: constvars.FhirConditionClinicalStatusActive},
		Severity:       &fhir_dto.CodeableConcept{Text: severity.Label()},
		Code:           &fhir_dto.CodeableConcept{Text: details},
		Subject: fhir_dto.Reference{
			Reference: fmt.Sprintf("%s/%s", constvars.ResourcePatient, patient.ID),
		},
	}

	created := new(fhir_dto.Condition)
	if err := r.Client.Create(ctx, constvars.ResourceCondition, condition, created); err != nil {
		r.Log.Error("conditionFhirRepository.CreateCondition failed",
			zap.String(constvars.LoggingConditionIDKey, conditionID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("conditionFhirRepository.CreateCondition succeeded",
		zap.String(constvars.LoggingConditionIDKey, conditionID),
		zap.String(constvars.LoggingStoreIDKey, created.ID),
	)
	return created, nil
}

func (r *conditionFhirRepository) FindByID(ctx context.Context, conditionID string) (*fhir_dto.Condition, error) {
	if utils.IsBlank(conditionID) {
		return nil, exceptions.ErrBlankField("conditionID")
	}

	params := url.Values{}
	params.Set(constvars.SearchParamIdentifier, fmt.Sprintf("%s|%s", constvars.SystemConditionID, conditionID))

	bundle, err := r.Client.Search(ctx, constvars.ResourceCondition, params)
	if err != nil {
		return nil, err
	}
	if len(bundle.Entry) == 0 {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceCondition, conditionID)
	}

	condition := new(fhir_dto.Condition)
	if err := json.Unmarshal(bundle.Entry[0].Resource, condition); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceCondition)
	}
	return condition, nil
}

func (r *conditionFhirRepository) ListByPatient(ctx context.Context, patientPN string) ([]fhir_dto.Condition, error) {
	conditionsFound, err := r.fetchByPatient(ctx, patientPN)
	if err != nil {
		return nil, err
	}
	if len(conditionsFound) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourceCondition, fmt.Sprintf("patient %s", patientPN))
	}

	r.Log.Info("conditionFhirRepository.ListByPatient succeeded",
		zap.String(constvars.LoggingPatientPNKey, patientPN),
		zap.Int(constvars.LoggingResultCountKey, len(conditionsFound)),
	)
	return conditionsFound, nil
}

func (r *conditionFhirRepository) ListByPatientAndSeverity(ctx context.Context, patientPN string, severity codes.Severity) ([]fhir_dto.Condition, error) {
	if !severity.Valid() {
		return nil, exceptions.ErrBlankField("severity")
	}

	conditionsFound, err := r.fetchByPatient(ctx, patientPN)
	if err != nil {
		return nil, err
	}

	// The store offers no severity search parameter for plain-text
	// severities, so the filter runs client-side on severity.text.
	matched := make([]fhir_dto.Condition, 0, len(conditionsFound))
	for _, condition := range conditionsFound {
		if condition.Severity != nil && condition.Severity.Text == severity.Label() {
			matched = append(matched, condition)
		}
	}
	if len(matched) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourceCondition,
			fmt.Sprintf("patient %s with severity %s", patientPN, severity.Label()))
	}
	return matched, nil
}

func (r *conditionFhirRepository) fetchByPatient(ctx context.Context, patientPN string) ([]fhir_dto.Condition, error) {
	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}

	patient, err := r.PatientRepo.FindByPN(ctx, patientPN)
	if err != nil {
		return nil, err
	}

	cursor := fhirstore.NewCursor[fhir_dto.Condition](r.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		params := url.Values{}
		params.Set(constvars.SearchParamPatient, patient.ID)
		return r.Client.Search(ctx, constvars.ResourceCondition, params)
	})
	return fhirstore.CollectAll(ctx, cursor)
}

func (r *conditionFhirRepository) GetConditionDetails(ctx context.Context, conditionID string) (string, error) {
	condition, err := r.FindByID(ctx, conditionID)
	if err != nil {
		return "", err
	}

	patientName := constvars.FhirIdentifierMissing
	if _, patientStoreID := utils.SplitReference(condition.Subject.Reference); patientStoreID != "" {
		patient := new(fhir_dto.Patient)
		if err := r.Client.Read(ctx, constvars.ResourcePatient, patientStoreID, patient); err == nil {
			patientName = utils.FullName(patient.Name)
		}
	}

	severity := constvars.FhirIdentifierMissing
	if condition.Severity != nil && condition.Severity.Text != "" {
		severity = condition.Severity.Text
	}
	clinicalStatus := constvars.FhirIdentifierMissing
	if condition.ClinicalStatus != nil && condition.ClinicalStatus.Text != "" {
		clinicalStatus = condition.ClinicalStatus.Text
	}
	details := constvars.FhirIdentifierMissing
	if condition.Code != nil && condition.Code.Text != "" {
		details = condition.Code.Text
	}

	out := fmt.Sprintf("Condition ID: %s\n", r.ConditionID(condition))
	out += fmt.Sprintf("Patient: %s\n", patientName)
	out += fmt.Sprintf("Severity: %s\n", severity)
	out += fmt.Sprintf("Clinical Status: %s\n", clinicalStatus)
	out += fmt.Sprintf("Details: %s", details)
	return out, nil
}

func (r *conditionFhirRepository) UpdateCondition(ctx context.Context, conditionID, newDetails string, newSeverity codes.Severity) (*fhir_dto.Condition, error) {
	condition, err := r.FindByID(ctx, conditionID)
	if err != nil {
		return nil, err
	}

	if !utils.IsBlank(newDetails) {
		condition.Code = &fhir_dto.CodeableConcept{Text: newDetails}
	}
	if newSeverity != "" {
		if !newSeverity.Valid() {
			return nil, exceptions.ErrBlankField("severity")
		}
		condition.Severity = &fhir_dto.CodeableConcept{Text: newSeverity.Label()}
	}

	if err := r.Client.Update(ctx, constvars.ResourceCondition, condition.ID, condition, nil); err != nil {
		r.Log.Error("conditionFhirRepository.UpdateCondition failed",
			zap.String(constvars.LoggingConditionIDKey, conditionID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("conditionFhirRepository.UpdateCondition succeeded",
		zap.String(constvars.LoggingConditionIDKey, conditionID),
		zap.String(constvars.LoggingStoreIDKey, condition.ID),
	)
	return condition, nil
}

func (r *conditionFhirRepository) DeleteCondition(ctx context.Context, conditionID string, confirmed bool) (string, error) {
	condition, err := r.FindByID(ctx, conditionID)
	if err != nil {
		return "", err
	}
	id := r.ConditionID(condition)

	if !confirmed {
		warning := fmt.Sprintf("WARNING: Deleting condition %s\n\n", id)
		warning += "This will delete the condition from the records server.\n"
		warning += "Call again with confirmed=true to proceed"
		return warning, nil
	}

	if err := r.Client.Delete(ctx, constvars.ResourceCondition, condition.ID); err != nil {
		return "", err
	}

	r.Log.Info("conditionFhirRepository.DeleteCondition succeeded",
		zap.String(constvars.LoggingConditionIDKey, conditionID),
		zap.String(constvars.LoggingStoreIDKey, condition.ID),
	)
	return fmt.Sprintf("Successfully deleted condition %s", id), nil
}

func (r *conditionFhirRepository) ConditionID(condition *fhir_dto.Condition) string {
	if value := utils.IdentifierValue(condition.Identifier, constvars.SystemConditionID); value != "" {
		return value
	}
	return constvars.FhirIdentifierMissing
}
