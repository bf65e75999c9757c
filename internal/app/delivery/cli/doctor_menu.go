package cli

import (
	"context"
	"time"

	"clinrec-service/internal/app/services/fhir/communications"
	"clinrec-service/internal/pkg/codes"
	"clinrec-service/internal/pkg/dto/requests"
	"clinrec-service/internal/pkg/utils"
)

func (c *CLI) doctorMenu(ctx context.Context) {
	options := []string{
		"My summary",
		"Patients",
		"Appointments",
		"Clinical records",
		"Messages",
		"Logout",
	}

	switch c.prompt.choose("Practitioner Menu", options) {
	case 0:
		summary, err := c.PractitionerRepo.GetPractitionerSummary(ctx, c.session.DoctorID)
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(summary)
	case 1:
		c.doctorPatientsMenu(ctx)
	case 2:
		c.doctorAppointmentsMenu(ctx)
	case 3:
		c.doctorRecordsMenu(ctx)
	case 4:
		c.messagingMenu(ctx, communications.Party{StaffID: c.session.DoctorID})
	case 5:
		c.logout(ctx)
	}
}

func (c *CLI) doctorPatientsMenu(ctx context.Context) {
	options := []string{
		"Register patient",
		"Search patients by name",
		"Patient summary",
		"Update patient",
		"Delete patient",
		"Back",
	}

	switch c.prompt.choose("Patients", options) {
	case 0:
		request := requests.CreatePatient{
			PatientPN:       c.prompt.ask("Personal number"),
			FirstName:       c.prompt.ask("First name"),
			LastName:        c.prompt.ask("Last name"),
			Sex:             c.prompt.askOptional("Sex"),
			PhoneNumber:     c.prompt.askOptional("Phone number"),
			PrimaryDoctorID: c.prompt.askOptional("Primary doctor store id"),
		}
		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return
		}

		if _, err := c.PatientRepo.CreatePatient(ctx, request.PatientPN, request.FirstName, request.LastName,
			request.Sex, request.PhoneNumber, request.PrimaryDoctorID); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Patient registered")
	case 1:
		patientsFound, err := c.PatientRepo.SearchByName(ctx, c.prompt.ask("First name"), c.prompt.ask("Last name"))
		if err != nil {
			c.showError(err)
			return
		}
		for _, patient := range patientsFound {
			c.prompt.printf("- %s: %s\n", c.PatientRepo.PatientPN(&patient), utils.FullName(patient.Name))
		}
	case 2:
		summary, err := c.PatientRepo.GetPatientSummary(ctx, c.prompt.ask("Personal number"))
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(summary)
	case 3:
		patientPN := c.prompt.ask("Personal number")
		firstName := c.prompt.askOptional("New first name")
		lastName := c.prompt.askOptional("New last name")
		sex := c.prompt.askOptional("New sex")
		phone := c.prompt.askOptional("New phone number")
		primaryDoctorID := c.prompt.askOptional("New primary doctor store id")

		if _, err := c.PatientRepo.UpdatePatient(ctx, patientPN, firstName, lastName, sex, phone, primaryDoctorID); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Patient updated")
	case 4:
		patientPN := c.prompt.ask("Personal number")
		warning, err := c.PatientRepo.DeletePatient(ctx, patientPN, false)
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(warning)
		if c.prompt.confirm("Proceed?") {
			result, err := c.PatientRepo.DeletePatient(ctx, patientPN, true)
			if err != nil {
				c.showError(err)
				return
			}
			c.prompt.println(result)
		}
	}
}

func (c *CLI) doctorAppointmentsMenu(ctx context.Context) {
	options := []string{
		"Book appointment",
		"My appointments",
		"Appointment details",
		"Update appointment",
		"Cancel appointment",
		"Back",
	}

	switch c.prompt.choose("Appointments", options) {
	case 0:
		request := requests.CreateAppointment{
			AppointmentID: c.prompt.ask("Appointment ID"),
			PatientPN:     c.prompt.ask("Patient personal number"),
			DoctorID:      c.session.DoctorID,
		}

		var ok bool
		if request.Starts, ok = c.askLocalTime("Starts"); !ok {
			return
		}
		if request.Ends, ok = c.askLocalTime("Ends"); !ok {
			return
		}
		request.Reason = c.prompt.askOptional("Reason")

		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return
		}
		starts, _ := utils.ParseLocalDateTime(request.Starts)
		ends, _ := utils.ParseLocalDateTime(request.Ends)

		if _, err := c.AppointmentRepo.CreateAppointment(ctx, request.AppointmentID, request.PatientPN,
			request.DoctorID, starts, ends, request.Reason); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Appointment booked")
	case 1:
		appointmentsFound, err := c.AppointmentRepo.ListByPractitioner(ctx, c.session.DoctorID)
		if err != nil {
			c.showError(err)
			return
		}
		for _, appointment := range appointmentsFound {
			c.prompt.printf("- %s (%s) %s\n",
				c.AppointmentRepo.AppointmentID(&appointment), appointment.Status, appointment.Start)
		}
	case 2:
		details, err := c.AppointmentRepo.GetAppointmentDetails(ctx, c.prompt.ask("Appointment ID"))
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(details)
	case 3:
		appointmentID := c.prompt.ask("Appointment ID")

		var newStarts, newEnds *time.Time
		if raw, ok := c.askLocalTime("New start"); ok {
			parsed, _ := utils.ParseLocalDateTime(raw)
			newStarts = &parsed
		}
		if raw, ok := c.askLocalTime("New end"); ok {
			parsed, _ := utils.ParseLocalDateTime(raw)
			newEnds = &parsed
		}
		newReason := c.prompt.askOptional("New reason")

		if _, err := c.AppointmentRepo.UpdateAppointment(ctx, appointmentID, newStarts, newEnds, newReason); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Appointment updated")
	case 4:
		appointmentID := c.prompt.ask("Appointment ID")
		warning, err := c.AppointmentRepo.DeleteAppointment(ctx, appointmentID, false)
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(warning)
		if c.prompt.confirm("Proceed?") {
			result, err := c.AppointmentRepo.DeleteAppointment(ctx, appointmentID, true)
			if err != nil {
				c.showError(err)
				return
			}
			c.prompt.println(result)
		}
	}
}

func (c *CLI) doctorRecordsMenu(ctx context.Context) {
	options := []string{
		"Record observation",
		"Observation details",
		"Record condition",
		"Condition details",
		"Patient conditions by severity",
		"Back",
	}

	switch c.prompt.choose("Clinical records", options) {
	case 0:
		request := requests.CreateObservation{
			ObservationID: c.prompt.ask("Observation ID"),
			PatientPN:     c.prompt.ask("Patient personal number"),
			Description:   c.prompt.ask("Description"),
		}

		var ok bool
		if request.Effective, ok = c.askLocalTime("Effective"); !ok {
			return
		}
		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return
		}
		effective, _ := utils.ParseLocalDateTime(request.Effective)

		if _, err := c.ObservationRepo.CreateObservation(ctx, request.ObservationID, request.PatientPN,
			request.Description, effective); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Observation recorded")
	case 1:
		details, err := c.ObservationRepo.GetObservationDetails(ctx, c.prompt.ask("Observation ID"))
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(details)
	case 2:
		request := requests.CreateCondition{
			ConditionID: c.prompt.ask("Condition ID"),
			PatientPN:   c.prompt.ask("Patient personal number"),
			Details:     c.prompt.ask("Details"),
			Severity:    c.prompt.ask("Severity (Hög/Medel/Låg)"),
		}
		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return
		}
		severity, ok := codes.ParseSeverity(request.Severity)
		if !ok {
			c.prompt.println("Unknown severity")
			return
		}

		if _, err := c.ConditionRepo.CreateCondition(ctx, request.ConditionID, request.PatientPN, request.Details, severity); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Condition recorded")
	case 3:
		details, err := c.ConditionRepo.GetConditionDetails(ctx, c.prompt.ask("Condition ID"))
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(details)
	case 4:
		patientPN := c.prompt.ask("Patient personal number")
		severity, ok := codes.ParseSeverity(c.prompt.ask("Severity (Hög/Medel/Låg)"))
		if !ok {
			c.prompt.println("Unknown severity")
			return
		}

		conditionsFound, err := c.ConditionRepo.ListByPatientAndSeverity(ctx, patientPN, severity)
		if err != nil {
			c.showError(err)
			return
		}
		for _, condition := range conditionsFound {
			text := ""
			if condition.Code != nil {
				text = condition.Code.Text
			}
			c.prompt.printf("- %s: %s\n", c.ConditionRepo.ConditionID(&condition), text)
		}
	}
}
