package requests_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinrec-service/internal/pkg/dto/requests"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/utils"
)

func TestRegisterValidation(t *testing.T) {
	valid := requests.Register{
		Username:  "anna",
		Password:  "hunter22",
		Role:      "patient",
		PatientPN: "19900101-1234",
	}
	assert.NoError(t, utils.ValidateStruct(valid))

	missingPN := valid
	missingPN.PatientPN = ""
	assert.True(t, exceptions.IsInvalidArgument(utils.ValidateStruct(missingPN)),
		"patient role requires a personal number")

	practitioner := requests.Register{Username: "erik", Password: "hunter22", Role: "practitioner"}
	assert.True(t, exceptions.IsInvalidArgument(utils.ValidateStruct(practitioner)),
		"practitioner role requires a doctor id")

	badRole := valid
	badRole.Role = "superuser"
	assert.True(t, exceptions.IsInvalidArgument(utils.ValidateStruct(badRole)))

	shortPassword := valid
	shortPassword.Password = "abc"
	assert.True(t, exceptions.IsInvalidArgument(utils.ValidateStruct(shortPassword)))
}

func TestCreateRequestsRequireIdentifiers(t *testing.T) {
	testCases := []struct {
		name    string
		request interface{}
	}{
		{"patient without personal number", requests.CreatePatient{FirstName: "Anna", LastName: "Svensson"}},
		{"practitioner without doctor id", requests.CreatePractitioner{FirstName: "Erik", LastName: "Larsson"}},
		{"appointment without patient", requests.CreateAppointment{AppointmentID: "AP-1", DoctorID: "DOC-1", Starts: "2030-01-01T10:00", Ends: "2030-01-01T11:00"}},
		{"observation without description", requests.CreateObservation{ObservationID: "OBS-1", PatientPN: "19900101-1234", Effective: "2030-01-01T10:00"}},
		{"condition without severity", requests.CreateCondition{ConditionID: "CON-1", PatientPN: "19900101-1234", Details: "Asthma"}},
		{"message without text", requests.SendMessage{CommunicationID: "MSG-1", SenderPatientPN: "19900101-1234", RecipientDoctorID: "DOC-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, exceptions.IsInvalidArgument(utils.ValidateStruct(tc.request)))
		})
	}
}

func TestCreateRequestsAcceptOptionalFields(t *testing.T) {
	assert.NoError(t, utils.ValidateStruct(requests.CreatePatient{
		PatientPN: "19900101-1234",
		FirstName: "Anna",
		LastName:  "Svensson",
	}), "sex, phone and primary doctor are optional")

	assert.NoError(t, utils.ValidateStruct(requests.SendMessage{
		CommunicationID:    "MSG-1",
		SenderDoctorID:     "DOC-1",
		RecipientPatientPN: "19900101-1234",
		Text:               "Hello",
	}))
}
