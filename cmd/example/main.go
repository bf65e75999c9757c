package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"clinrec-service/internal/app/config"
	"clinrec-service/internal/app/drivers/logger"
	"clinrec-service/internal/app/services/fhir/appointments"
	"clinrec-service/internal/app/services/fhir/communications"
	"clinrec-service/internal/app/services/fhir/conditions"
	"clinrec-service/internal/app/services/fhir/observations"
	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhir/practitioners"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/codes"
	"clinrec-service/internal/pkg/fhir_dto"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

// Scripted walkthrough of the typed repositories against the configured
// records server. Everything it creates is deleted again at the end.
func main() {
	fmt.Printf("Version: %s, Tag: %s\n", Version, Tag)

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	client := fhirstore.NewClient(internalConfig.FHIR.BaseUrl, zapLogger)
	patientRepo := patients.NewPatientFhirRepository(client, zapLogger)
	practitionerRepo := practitioners.NewPractitionerFhirRepository(client, zapLogger)
	appointmentRepo := appointments.NewAppointmentFhirRepository(client, patientRepo, practitionerRepo, zapLogger)
	observationRepo := observations.NewObservationFhirRepository(client, patientRepo, zapLogger)
	conditionRepo := conditions.NewConditionFhirRepository(client, patientRepo, zapLogger)
	communicationRepo := communications.NewCommunicationFhirRepository(client, patientRepo, practitionerRepo, nil, zapLogger)

	ctx := context.Background()

	practitioner, err := practitionerRepo.CreatePractitioner(ctx, "DOC-EX-1", "Erik", "Larsson", "08-123456")
	must(err)
	fmt.Printf("Created practitioner: %s\n", practitioner.ID)

	patient, err := patientRepo.CreatePatient(ctx, "19710930-7905", "John", "Doe", "man", "070-1234567", practitioner.ID)
	must(err)
	fmt.Printf("Created patient: %s\n", patient.ID)

	summary, err := patientRepo.GetPatientSummary(ctx, "19710930-7905")
	must(err)
	fmt.Println(summary)

	starts := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	_, err = appointmentRepo.CreateAppointment(ctx, "AP-EX-1", "19710930-7905", "DOC-EX-1", starts, starts.Add(time.Hour), "Checkup")
	must(err)
	details, err := appointmentRepo.GetAppointmentDetails(ctx, "AP-EX-1")
	must(err)
	fmt.Println(details)

	_, err = observationRepo.CreateObservation(ctx, "OBS-EX-1", "19710930-7905", "Blood pressure 120/80", time.Now())
	must(err)
	_, err = conditionRepo.CreateCondition(ctx, "CON-EX-1", "19710930-7905", "Seasonal allergy", codes.SeverityLow)
	must(err)

	_, err = communicationRepo.SendMessage(ctx, "MSG-EX-1",
		communications.Party{PatientPN: "19710930-7905"},
		communications.Party{StaffID: "DOC-EX-1"},
		"Hello doctor")
	must(err)
	messageDetails, err := communicationRepo.GetCommunicationDetails(ctx, "MSG-EX-1")
	must(err)
	fmt.Println(messageDetails)

	listPatients(ctx, client)

	// Tear down in reverse order.
	for _, cleanup := range []func() (string, error){
		func() (string, error) { return communicationRepo.DeleteCommunication(ctx, "MSG-EX-1", true) },
		func() (string, error) { return conditionRepo.DeleteCondition(ctx, "CON-EX-1", true) },
		func() (string, error) { return observationRepo.DeleteObservation(ctx, "OBS-EX-1", true) },
		func() (string, error) { return appointmentRepo.DeleteAppointment(ctx, "AP-EX-1", true) },
		func() (string, error) { return patientRepo.DeletePatient(ctx, "19710930-7905", true) },
		func() (string, error) { return practitionerRepo.DeletePractitioner(ctx, "DOC-EX-1", true) },
	} {
		message, err := cleanup()
		must(err)
		fmt.Println(message)
	}
}

// listPatients walks every result page through the bundle cursor.
func listPatients(ctx context.Context, client *fhirstore.Client) {
	cursor := fhirstore.NewCursor[fhir_dto.Patient](client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return client.Search(ctx, "Patient", url.Values{"_count": []string{"10"}})
	})
	count := 0
	for cursor.Next(ctx) {
		fmt.Printf("Patient ID: %s\n", cursor.Resource().ID)
		count++
	}
	must(cursor.Err())
	fmt.Printf("Total patients listed: %d\n", count)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
