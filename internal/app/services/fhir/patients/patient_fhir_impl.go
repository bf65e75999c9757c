package patients

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/codes"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/utils"
)

type patientFhirRepository struct {
	Client *fhirstore.Client
	Log    *zap.Logger
}

func NewPatientFhirRepository(client *fhirstore.Client, logger *zap.Logger) PatientFhirRepository {
	return &patientFhirRepository{
		Client: client,
		Log:    logger,
	}
}

func (r *patientFhirRepository) CreatePatient(ctx context.Context, patientPN, firstName, lastName, sex, phoneNumber, primaryDoctorID string) (*fhir_dto.Patient, error) {
	r.Log.Info("patientFhirRepository.CreatePatient called",
		zap.String(constvars.LoggingPatientPNKey, patientPN),
	)

	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}
	if utils.IsBlank(firstName) {
		return nil, exceptions.ErrBlankField("firstName")
	}
	if utils.IsBlank(lastName) {
		return nil, exceptions.ErrBlankField("lastName")
	}

	patient := &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient,
		Identifier: []fhir_dto.Identifier{
			{System: constvars.SystemPersonnummer, Value: patientPN},
		},
		Name: []fhir_dto.HumanName{
			{Family: lastName, Given: []string{firstName}},
		},
		Gender: codes.MapGender(sex),
		Active: true,
	}

	if !utils.IsBlank(phoneNumber) {
		patient.Telecom = []fhir_dto.ContactPoint{{
			System: constvars.FhirContactPointSystemPhone,
			Value:  phoneNumber,
			Use:    constvars.FhirContactPointUseMobile,
		}}
	}

	if !utils.IsBlank(primaryDoctorID) {
		patient.GeneralPractitioner = []fhir_dto.Reference{{
			Reference: fmt.Sprintf("%s/%s", constvars.ResourcePractitioner, primaryDoctorID),
		}}
	}

	created := new(fhir_dto.Patient)
	if err := r.Client.Create(ctx, constvars.ResourcePatient, patient, created); err != nil {
		r.Log.Error("patientFhirRepository.CreatePatient failed",
			zap.String(constvars.LoggingPatientPNKey, patientPN),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("patientFhirRepository.CreatePatient succeeded",
		zap.String(constvars.LoggingPatientPNKey, patientPN),
		zap.String(constvars.LoggingStoreIDKey, created.ID),
	)
	return created, nil
}

func (r *patientFhirRepository) FindByPN(ctx context.Context, patientPN string) (*fhir_dto.Patient, error) {
	if utils.IsBlank(patientPN) {
		return nil, exceptions.ErrBlankField("patientPN")
	}

	params := url.Values{}
	params.Set(constvars.SearchParamIdentifier, fmt.Sprintf("%s|%s", constvars.SystemPersonnummer, patientPN))

	bundle, err := r.Client.Search(ctx, constvars.ResourcePatient, params)
	if err != nil {
		return nil, err
	}
	if len(bundle.Entry) == 0 {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourcePatient, patientPN)
	}

	patient := new(fhir_dto.Patient)
	if err := json.Unmarshal(bundle.Entry[0].Resource, patient); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
	}
	return patient, nil
}

func (r *patientFhirRepository) SearchByName(ctx context.Context, firstName, lastName string) ([]fhir_dto.Patient, error) {
	if utils.IsBlank(firstName) || utils.IsBlank(lastName) {
		return nil, exceptions.ErrBlankField("firstName and lastName")
	}

	cursor := fhirstore.NewCursor[fhir_dto.Patient](r.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		params := url.Values{}
		params.Set(constvars.SearchParamFamily, lastName)
		params.Set(constvars.SearchParamGiven, firstName)
		return r.Client.Search(ctx, constvars.ResourcePatient, params)
	})

	patients, err := fhirstore.CollectAll(ctx, cursor)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourcePatient, fmt.Sprintf("name %s %s", firstName, lastName))
	}

	r.Log.Info("patientFhirRepository.SearchByName succeeded",
		zap.Int(constvars.LoggingResultCountKey, len(patients)),
	)
	return patients, nil
}

func (r *patientFhirRepository) GetPatientSummary(ctx context.Context, patientPN string) (string, error) {
	patient, err := r.FindByPN(ctx, patientPN)
	if err != nil {
		return "", err
	}

	firstName := utils.GivenName(patient.Name)
	lastName := utils.FamilyName(patient.Name)
	gender := codes.GenderDisplay(patient.Gender)
	pn := r.PatientPN(patient)

	doctorInfo := "No primary doctor assigned"
	if doctorStoreID := r.GetPrimaryDoctorID(patient); doctorStoreID != "" {
		practitioner := new(fhir_dto.Practitioner)
		if err := r.Client.Read(ctx, constvars.ResourcePractitioner, doctorStoreID, practitioner); err != nil {
			// Display degrades; the patient summary is still useful.
			doctorInfo = fmt.Sprintf("Doctor ID: %s (details unavailable)", doctorStoreID)
		} else {
			doctorInfo = fmt.Sprintf("Dr. %s %s (ID: %s)",
				utils.GivenName(practitioner.Name), utils.FamilyName(practitioner.Name), doctorStoreID)
		}
	}

	summary := fmt.Sprintf("Patient: %s %s (PN: %s, Sex: %s)\n", firstName, lastName, pn, gender)
	summary += "Primary Doctor: " + doctorInfo
	return summary, nil
}

func (r *patientFhirRepository) UpdatePatient(ctx context.Context, patientPN, firstName, lastName, sex, phoneNumber, primaryDoctorID string) (*fhir_dto.Patient, error) {
	patient, err := r.FindByPN(ctx, patientPN)
	if err != nil {
		return nil, err
	}

	if !utils.IsBlank(firstName) && !utils.IsBlank(lastName) {
		patient.Name = []fhir_dto.HumanName{
			{Family: lastName, Given: []string{firstName}},
		}
	}

	if !utils.IsBlank(sex) {
		patient.Gender = codes.MapGender(sex)
	}

	if !utils.IsBlank(phoneNumber) {
		patient.Telecom = []fhir_dto.ContactPoint{{
			System: constvars.FhirContactPointSystemPhone,
			Value:  phoneNumber,
			Use:    constvars.FhirContactPointUseMobile,
		}}
	}

	if !utils.IsBlank(primaryDoctorID) {
		patient.GeneralPractitioner = []fhir_dto.Reference{{
			Reference: fmt.Sprintf("%s/%s", constvars.ResourcePractitioner, primaryDoctorID),
		}}
	}

	if err := r.Client.Update(ctx, constvars.ResourcePatient, patient.ID, patient, nil); err != nil {
		r.Log.Error("patientFhirRepository.UpdatePatient failed",
			zap.String(constvars.LoggingPatientPNKey, patientPN),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("patientFhirRepository.UpdatePatient succeeded",
		zap.String(constvars.LoggingPatientPNKey, patientPN),
		zap.String(constvars.LoggingStoreIDKey, patient.ID),
	)
	return patient, nil
}

func (r *patientFhirRepository) DeletePatient(ctx context.Context, patientPN string, confirmed bool) (string, error) {
	patient, err := r.FindByPN(ctx, patientPN)
	if err != nil {
		return "", err
	}

	firstName := utils.GivenName(patient.Name)
	lastName := utils.FamilyName(patient.Name)

	if !confirmed {
		warning := fmt.Sprintf("WARNING: Deleting %s %s (PN: %s)\n\n", firstName, lastName, patientPN)
		warning += "This will delete the patient from the records server.\n"
		warning += "Call again with confirmed=true to proceed"
		return warning, nil
	}

	if err := r.Client.Delete(ctx, constvars.ResourcePatient, patient.ID); err != nil {
		return "", err
	}

	r.Log.Info("patientFhirRepository.DeletePatient succeeded",
		zap.String(constvars.LoggingPatientPNKey, patientPN),
		zap.String(constvars.LoggingStoreIDKey, patient.ID),
	)
	return fmt.Sprintf("Successfully deleted %s %s (PN: %s)", firstName, lastName, patientPN), nil
}

func (r *patientFhirRepository) GetPrimaryDoctorID(patient *fhir_dto.Patient) string {
	if len(patient.GeneralPractitioner) == 0 {
		return ""
	}
	return utils.ReferenceID(patient.GeneralPractitioner[0].Reference)
}

func (r *patientFhirRepository) GetPrimaryDoctorIdentifier(ctx context.Context, patient *fhir_dto.Patient) string {
	doctorStoreID := r.GetPrimaryDoctorID(patient)
	if doctorStoreID == "" {
		return ""
	}

	practitioner := new(fhir_dto.Practitioner)
	if err := r.Client.Read(ctx, constvars.ResourcePractitioner, doctorStoreID, practitioner); err != nil {
		return ""
	}
	return utils.IdentifierValue(practitioner.Identifier, constvars.SystemDoctorID)
}

func (r *patientFhirRepository) PatientPN(patient *fhir_dto.Patient) string {
	if value := utils.IdentifierValue(patient.Identifier, constvars.SystemPersonnummer); value != "" {
		return value
	}
	return constvars.FhirIdentifierMissing
}
