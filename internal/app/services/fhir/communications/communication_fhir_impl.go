package communications

import (
	"context"
	"fmt"
	"net/url"
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

type communicationFhirRepository struct {
	Client           *fhirstore.Client
	PatientRepo      patients.PatientFhirRepository
	PractitionerRepo practitioners.PractitionerFhirRepository
	Publisher        MessagePublisher
	Log              *zap.Logger
}

func NewCommunicationFhirRepository(
	client *fhirstore.Client,
	patientRepo patients.PatientFhirRepository,
	practitionerRepo practitioners.PractitionerFhirRepository,
	publisher MessagePublisher,
	logger *zap.Logger,
) CommunicationFhirRepository {
	return &communicationFhirRepository{
		Client:           client,
		PatientRepo:      patientRepo,
		PractitionerRepo: practitionerRepo,
		Publisher:        publisher,
		Log:              logger,
	}
}

// resolveParty turns a business-level party into a typed store reference
// such as "Patient/42" or "Practitioner/7".
func (r *communicationFhirRepository) resolveParty(ctx context.Context, role string, party Party) (string, error) {
	hasPN := !utils.IsBlank(party.PatientPN)
	hasStaff := !utils.IsBlank(party.StaffID)
	if hasPN == hasStaff {
		return "", exceptions.ErrExactlyOneParty(role)
	}

	if hasPN {
		patient, err := r.PatientRepo.FindByPN(ctx, party.PatientPN)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s/%s", constvars.ResourcePatient, patient.ID), nil
	}

	practitioner, err := r.PractitionerRepo.FindByID(ctx, party.StaffID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", constvars.ResourcePractitioner, practitioner.ID), nil
}

func (r *communicationFhirRepository) SendMessage(ctx context.Context, communicationID string, sender, recipient Party, text string) (*fhir_dto.Communication, error) {
	r.Log.Info("communicationFhirRepository.SendMessage called",
		zap.String(constvars.LoggingCommunicationKey, communicationID),
	)

	if utils.IsBlank(communicationID) {
		return nil, exceptions.ErrBlankField("communicationID")
	}
	if utils.IsBlank(text) {
		return nil, exceptions.ErrBlankField("text")
	}

	senderRef, err := r.resolveParty(ctx, "sender", sender)
	if err != nil {
		return nil, err
	}
	recipientRef, err := r.resolveParty(ctx, "recipient", recipient)
	if err != nil {
		return nil, err
	}

	communication := &fhir_dto.Communication{
		ResourceType: constvars.ResourceCommunication,
		Identifier: []fhir_dto.Identifier{
			{System: constvars.SystemCommunicationID, Value: communicationID},
		},
		Status:    constvars.FhirCommunicationStatusCompleted,
		Sender:    &fhir_dto.Reference{Reference: senderRef},
		Recipient: []fhir_dto.Reference{{Reference: recipientRef}},
		Payload:   []fhir_dto.CommunicationPayload{{ContentString: text}},
		Sent:      utils.FormatInstant(time.Now()),
	}

	created := new(fhir_dto.Communication)
	if err := r.Client.Create(ctx, constvars.ResourceCommunication, communication, created); err != nil {
		r.Log.Error("communicationFhirRepository.SendMessage failed",
			zap.String(constvars.LoggingCommunicationKey, communicationID),
			zap.Error(err),
		)
		return nil, err
	}

	if r.Publisher != nil {
		if err := r.Publisher.PublishMessageSent(ctx, communicationID, senderRef, recipientRef); err != nil {
			r.Log.Warn("communicationFhirRepository.SendMessage publish failed",
				zap.String(constvars.LoggingCommunicationKey, communicationID),
				zap.Error(err),
			)
		}
	}

	r.Log.Info("communicationFhirRepository.SendMessage succeeded",
		zap.String(constvars.LoggingCommunicationKey, communicationID),
		zap.String(constvars.LoggingStoreIDKey, created.ID),
	)
	return created, nil
}

func (r *communicationFhirRepository) FindByID(ctx context.Context, communicationID string) (*fhir_dto.Communication, error) {
	if utils.IsBlank(communicationID) {
		return nil, exceptions.ErrBlankField("communicationID")
	}

	params := url.Values{}
	params.Set(constvars.SearchParamIdentifier, fmt.Sprintf("%s|%s", constvars.SystemCommunicationID, communicationID))

	bundle, err := r.Client.Search(ctx, constvars.ResourceCommunication, params)
	if err != nil {
		return nil, err
	}
	if len(bundle.Entry) == 0 {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceCommunication, communicationID)
	}

	communication := new(fhir_dto.Communication)
	if err := json.Unmarshal(bundle.Entry[0].Resource, communication); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceCommunication)
	}
	return communication, nil
}

// fetchAll pages through every stored communication. The store indexes no
// party search parameters for these references, so callers filter locally.
func (r *communicationFhirRepository) fetchAll(ctx context.Context) ([]fhir_dto.Communication, error) {
	cursor := fhirstore.NewCursor[fhir_dto.Communication](r.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return r.Client.Search(ctx, constvars.ResourceCommunication, url.Values{})
	})
	return fhirstore.CollectAll(ctx, cursor)
}

func senderRef(communication fhir_dto.Communication) string {
	if communication.Sender == nil {
		return ""
	}
	return communication.Sender.Reference
}

func firstRecipientRef(communication fhir_dto.Communication) string {
	if len(communication.Recipient) == 0 {
		return ""
	}
	return communication.Recipient[0].Reference
}

func (r *communicationFhirRepository) GetMyMessages(ctx context.Context, party Party) ([]fhir_dto.Communication, error) {
	partyRef, err := r.resolveParty(ctx, "party", party)
	if err != nil {
		return nil, err
	}

	all, err := r.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]fhir_dto.Communication, 0)
	for _, communication := range all {
		if senderRef(communication) == partyRef || firstRecipientRef(communication) == partyRef {
			mine = append(mine, communication)
		}
	}
	if len(mine) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourceCommunication, fmt.Sprintf("party %s", partyRef))
	}

	r.Log.Info("communicationFhirRepository.GetMyMessages succeeded",
		zap.Int(constvars.LoggingResultCountKey, len(mine)),
	)
	return mine, nil
}

func (r *communicationFhirRepository) GetMessagesBetween(ctx context.Context, first, second Party) ([]fhir_dto.Communication, error) {
	firstRef, err := r.resolveParty(ctx, "first party", first)
	if err != nil {
		return nil, err
	}
	secondRef, err := r.resolveParty(ctx, "second party", second)
	if err != nil {
		return nil, err
	}

	all, err := r.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	conversation := make([]fhir_dto.Communication, 0)
	for _, communication := range all {
		from := senderRef(communication)
		to := firstRecipientRef(communication)
		if (from == firstRef && to == secondRef) || (from == secondRef && to == firstRef) {
			conversation = append(conversation, communication)
		}
	}
	if len(conversation) == 0 {
		return nil, exceptions.ErrNoResourcesFound(constvars.ResourceCommunication,
			fmt.Sprintf("between %s and %s", firstRef, secondRef))
	}
	return conversation, nil
}

func (r *communicationFhirRepository) GetCommunicationDetails(ctx context.Context, communicationID string) (string, error) {
	communication, err := r.FindByID(ctx, communicationID)
	if err != nil {
		return "", err
	}

	text := constvars.FhirIdentifierMissing
	if len(communication.Payload) > 0 && communication.Payload[0].ContentString != "" {
		text = communication.Payload[0].ContentString
	}

	sent := communication.Sent
	if parsed, err := utils.ParseInstant(sent); err == nil {
		sent = utils.FormatLocal(parsed)
	}

	details := fmt.Sprintf("Communication ID: %s\n", r.CommunicationID(communication))
	details += fmt.Sprintf("Status: %s\n", communication.Status)
	details += fmt.Sprintf("Sent: %s\n", sent)
	details += fmt.Sprintf("Message: %s\n", text)
	details += fmt.Sprintf("Sender: %s\n", r.partyDisplay(ctx, senderRef(*communication)))
	details += fmt.Sprintf("Recipient: %s", r.partyDisplay(ctx, firstRecipientRef(*communication)))
	return details, nil
}

// partyDisplay resolves a typed reference to a human name. Failures
// degrade to the raw reference rather than failing the whole details call.
func (r *communicationFhirRepository) partyDisplay(ctx context.Context, ref string) string {
	if ref == "" {
		return constvars.FhirIdentifierMissing
	}

	refType, storeID := utils.SplitReference(ref)
	switch refType {
	case constvars.ResourcePatient:
		patient := new(fhir_dto.Patient)
		if err := r.Client.Read(ctx, constvars.ResourcePatient, storeID, patient); err == nil {
			return "Patient " + utils.FullName(patient.Name)
		}
	case constvars.ResourcePractitioner:
		practitioner := new(fhir_dto.Practitioner)
		if err := r.Client.Read(ctx, constvars.ResourcePractitioner, storeID, practitioner); err == nil {
			return "Dr. " + utils.FullName(practitioner.Name)
		}
	}
	return ref
}

func (r *communicationFhirRepository) DeleteCommunication(ctx context.Context, communicationID string, confirmed bool) (string, error) {
	communication, err := r.FindByID(ctx, communicationID)
	if err != nil {
		return "", err
	}
	id := r.CommunicationID(communication)

	if !confirmed {
		warning := fmt.Sprintf("WARNING: Deleting message %s\n\n", id)
		warning += "This will delete the message from the records server.\n"
		warning += "Call again with confirmed=true to proceed"
		return warning, nil
	}

	if err := r.Client.Delete(ctx, constvars.ResourceCommunication, communication.ID); err != nil {
		return "", err
	}

	r.Log.Info("communicationFhirRepository.DeleteCommunication succeeded",
		zap.String(constvars.LoggingCommunicationKey, communicationID),
		zap.String(constvars.LoggingStoreIDKey, communication.ID),
	)
	return fmt.Sprintf("Successfully deleted message %s", id), nil
}

func (r *communicationFhirRepository) CommunicationID(communication *fhir_dto.Communication) string {
	if value := utils.IdentifierValue(communication.Identifier, constvars.SystemCommunicationID); value != "" {
		return value
	}
	return constvars.FhirIdentifierMissing
}
