package constvars

const (
	ResourcePatient       = "Patient"
	ResourcePractitioner  = "Practitioner"
	ResourceAppointment   = "Appointment"
	ResourceObservation   = "Observation"
	ResourceCondition     = "Condition"
	ResourceCommunication = "Communication"
	ResourceBundle        = "Bundle"
)

// Identifier systems owned by this client. Business ids (personnummer,
// staff id, appointment id, ...) are namespaced by exactly one of these.
const (
	SystemPersonnummer    = "http://electronichealth.se/identifier/personnummer"
	SystemDoctorID        = "http://kth.se/clinic/doctor-id"
	SystemAppointmentID   = "http://kth.se/clinic/appointment-id"
	SystemObservationID   = "http://kth.se/clinic/observation-id"
	SystemConditionID     = "http://kth.se/clinic/condition-id"
	SystemCommunicationID = "http://kth.se/clinic/communication-id"
)

const (
	FhirAppointmentStatusBooked    = "booked"
	FhirAppointmentStatusProposed  = "proposed"
	FhirAppointmentStatusPending   = "pending"
	FhirAppointmentStatusFulfilled = "fulfilled"
	FhirAppointmentStatusCancelled = "cancelled"
)

const (
	FhirParticipantStatusAccepted  = "accepted"
	FhirParticipantStatusDeclined  = "declined"
	FhirParticipantStatusTentative = "tentative"
)

const (
	FhirObservationStatusFinal       = "final"
	FhirObservationStatusPreliminary = "preliminary"
)

const (
	FhirCommunicationStatusCompleted  = "completed"
	FhirCommunicationStatusInProgress = "in-progress"
)

const (
	FhirGenderMale    = "male"
	FhirGenderFemale  = "female"
	FhirGenderOther   = "other"
	FhirGenderUnknown = "unknown"
)

const (
	FhirContactPointSystemPhone = "phone"
	FhirContactPointUseMobile   = "mobile"
	FhirContactPointUseWork     = "work"
)

const (
	FhirConditionClinicalStatusActive = "active"
)

const FhirBundleLinkNext = "next"

// Value returned by the business-id extractors when a fetched resource
// carries no identifier in the expected system.
const FhirIdentifierMissing = "N/A"

const (
	SearchParamIdentifier   = "identifier"
	SearchParamFamily       = "family"
	SearchParamGiven        = "given"
	SearchParamPatient      = "patient"
	SearchParamPractitioner = "practitioner"
)
