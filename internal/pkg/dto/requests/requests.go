package requests

type Register struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=patient practitioner admin"`
	PatientPN string `json:"patient_pn" validate:"required_if=Role patient"`
	DoctorID  string `json:"doctor_id" validate:"required_if=Role practitioner"`
}

type Login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreatePatient struct {
	PatientPN       string `json:"patient_pn" validate:"required"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Sex             string `json:"sex"`
	PhoneNumber     string `json:"phone_number"`
	PrimaryDoctorID string `json:"primary_doctor_id"`
}

type CreatePractitioner struct {
	DoctorID    string `json:"doctor_id" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
}

type CreateAppointment struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
	PatientPN     string `json:"patient_pn" validate:"required"`
	DoctorID      string `json:"doctor_id" validate:"required"`
	// Local wall-clock times, layout 2006-01-02T15:04.
	Starts string `json:"starts" validate:"required"`
	Ends   string `json:"ends" validate:"required"`
	Reason string `json:"reason"`
}

type CreateObservation struct {
	ObservationID string `json:"observation_id" validate:"required"`
	PatientPN     string `json:"patient_pn" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Effective     string `json:"effective" validate:"required"`
}

type CreateCondition struct {
	ConditionID string `json:"condition_id" validate:"required"`
	PatientPN   string `json:"patient_pn" validate:"required"`
	Details     string `json:"details" validate:"required"`
	Severity    string `json:"severity" validate:"required"`
}

type SendMessage struct {
	CommunicationID    string `json:"communication_id" validate:"required"`
	SenderPatientPN    string `json:"sender_patient_pn"`
	SenderDoctorID     string `json:"sender_doctor_id"`
	RecipientPatientPN string `json:"recipient_patient_pn"`
	RecipientDoctorID  string `json:"recipient_doctor_id"`
	Text               string `json:"text" validate:"required"`
}
