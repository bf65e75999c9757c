package practitioners

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/utils"
)

type practitionerFhirRepository struct {
	Client *fhirstore.Client
	Log    *zap.Logger
}

func NewPractitionerFhirRepository(client *fhirstore.Client, logger *zap.Logger) PractitionerFhirRepository {
	return &practitionerFhirRepository{
		Client: client,
		Log:    logger,
	}
}

func (r *practitionerFhirRepository) CreatePractitioner(ctx context.Context, doctorID, firstName, lastName, phoneNumber string) (*fhir_dto.Practitioner, error) {
	r.Log.Info("practitionerFhirRepository.CreatePractitioner called",
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if utils.IsBlank(doctorID) {
		return nil, exceptions.ErrBlankField("doctorID")
	}
	if utils.IsBlank(firstName) {
		return nil, exceptions.ErrBlankField("firstName")
	}
	if utils.IsBlank(lastName) {
		return nil, exceptions.ErrBlankField("lastName")
	}

	practitioner := &fhir_dto.Practitioner{
		ResourceType: constvars.ResourcePractitioner,
		Identifier: []fhir_dto.Identifier{
			{System: constvars.SystemDoctorID, Value: doctorID},
		},
		Name: []fhir_dto.HumanName{
			{Family: lastName, Given: []string{firstName}},
		},
		Active: true,
	}

	if !utils.IsBlank(phoneNumber) {
		practitioner.Telecom = []fhir_dto.ContactPoint{{
			System: constvars.FhirContactPointSystemPhone,
			Value:  phoneNumber,
			Use:    constvars.FhirContactPointUseWork,
		}}
	}

	created := new(fhir_dto.Practitioner)
	if err := r.Client.Create(ctx, constvars.ResourcePractitioner, practitioner, created); err != nil {
		r.Log.Error("practitionerFhirRepository.CreatePractitioner failed",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("practitionerFhirRepository.CreatePractitioner succeeded",
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingStoreIDKey, created.ID),
	)
	return created, nil
}

func (r *practitionerFhirRepository) FindByID(ctx context.Context, doctorID string) (*fhir_dto.Practitioner, error) {
	if utils.IsBlank(doctorID) {
		return nil, exceptions.ErrBlankField("doctorID")
	}

	params := url.Values{}
	params.Set(constvars.SearchParamIdentifier, fmt.Sprintf("%s|%s", constvars.SystemDoctorID, doctorID))

	bundle, err := r.Client.Search(ctx, constvars.ResourcePractitioner, params)
	if err != nil {
		return nil, err
	}
	if len(bundle.Entry) == 0 {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourcePractitioner, doctorID)
	}

	practitioner := new(fhir_dto.Practitioner)
	if err := json.Unmarshal(bundle.Entry[0].Resource, practitioner); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}
	return practitioner, nil
}

func (r *practitionerFhirRepository) SearchByName(ctx context.Context, firstName, lastName string) ([]fhir_dto.Practitioner, error) {
	if utils.IsBlank(firstName) || utils.IsBlank(lastName) {
		return nil, exceptions.ErrBlankField("firstName and lastName")
	}

	cursor := fhirstore.NewCursor[fhir_dto.Practitioner](r.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		params := url.Values{}
		params.Set(constvars.SearchParamFamily, lastName)
		params.Set(constvars.SearchParamGiven, firstName)
		return r.Client.Search(ctx, constvars.ResourcePractitioner, params)
	})

	practitionersFound, err := fhirstore.CollectAll(ctx, cursor)
	if err != nil {
		return nil, err
	}
	if len(practitionersFound) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourcePractitioner, fmt.Sprintf("name %s %s", firstName, lastName))
	}

	r.Log.Info("practitionerFhirRepository.SearchByName succeeded",
		zap.Int(constvars.LoggingResultCountKey, len(practitionersFound)),
	)
	return practitionersFound, nil
}

func (r *practitionerFhirRepository) GetPractitionerSummary(ctx context.Context, doctorID string) (string, error) {
	practitioner, err := r.FindByID(ctx, doctorID)
	if err != nil {
		return "", err
	}

	firstName := utils.GivenName(practitioner.Name)
	lastName := utils.FamilyName(practitioner.Name)
	id := r.DoctorID(practitioner)

	phone := constvars.FhirIdentifierMissing
	if len(practitioner.Telecom) > 0 {
		phone = practitioner.Telecom[0].Value
	}

	summary := fmt.Sprintf("Practitioner: Dr. %s %s (ID: %s)\n", firstName, lastName, id)
	summary += "Phone: " + phone
	return summary, nil
}

func (r *practitionerFhirRepository) UpdatePractitioner(ctx context.Context, doctorID, firstName, lastName, phoneNumber string) (*fhir_dto.Practitioner, error) {
	practitioner, err := r.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if !utils.IsBlank(firstName) && !utils.IsBlank(lastName) {
		practitioner.Name = []fhir_dto.HumanName{
			{Family: lastName, Given: []string{firstName}},
		}
	}

	if !utils.IsBlank(phoneNumber) {
		practitioner.Telecom = []fhir_dto.ContactPoint{{
			System: constvars.FhirContactPointSystemPhone,
			Value:  phoneNumber,
			Use:    constvars.FhirContactPointUseWork,
		}}
	}

	if err := r.Client.Update(ctx, constvars.ResourcePractitioner, practitioner.ID, practitioner, nil); err != nil {
		r.Log.Error("practitionerFhirRepository.UpdatePractitioner failed",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}

	r.Log.Info("practitionerFhirRepository.UpdatePractitioner succeeded",
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingStoreIDKey, practitioner.ID),
	)
	return practitioner, nil
}

func (r *practitionerFhirRepository) DeletePractitioner(ctx context.Context, doctorID string, confirmed bool) (string, error) {
	practitioner, err := r.FindByID(ctx, doctorID)
	if err != nil {
		return "", err
	}

	firstName := utils.GivenName(practitioner.Name)
	lastName := utils.FamilyName(practitioner.Name)

	if !confirmed {
		warning := fmt.Sprintf("WARNING: Deleting Dr. %s %s (ID: %s)\n\n", firstName, lastName, doctorID)
		warning += "This will delete the practitioner from the records server.\n"
		warning += "Call again with confirmed=true to proceed"
		return warning, nil
	}

	if err := r.Client.Delete(ctx, constvars.ResourcePractitioner, practitioner.ID); err != nil {
		return "", err
	}

	r.Log.Info("practitionerFhirRepository.DeletePractitioner succeeded",
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingStoreIDKey, practitioner.ID),
	)
	return fmt.Sprintf("Successfully deleted Dr. %s %s (ID: %s)", firstName, lastName, doctorID), nil
}

func (r *practitionerFhirRepository) DoctorID(practitioner *fhir_dto.Practitioner) string {
	if value := utils.IdentifierValue(practitioner.Identifier, constvars.SystemDoctorID); value != "" {
		return value
	}
	return constvars.FhirIdentifierMissing
}
