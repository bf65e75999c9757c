package cli

import (
	"context"

	"clinrec-service/internal/app/services/fhir/communications"
)

func (c *CLI) patientMenu(ctx context.Context) {
	options := []string{
		"My summary",
		"My appointments",
		"Appointment details",
		"My observations",
		"My conditions",
		"Messages",
		"Logout",
	}

	switch c.prompt.choose("Patient Menu", options) {
	case 0:
		summary, err := c.PatientRepo.GetPatientSummary(ctx, c.session.PatientPN)
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(summary)
	case 1:
		appointmentsFound, err := c.AppointmentRepo.ListByPatient(ctx, c.session.PatientPN)
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
		observationsFound, err := c.ObservationRepo.ListByPatient(ctx, c.session.PatientPN)
		if err != nil {
			c.showError(err)
			return
		}
		for _, observation := range observationsFound {
			c.prompt.printf("- %s (%s) %s\n",
				c.ObservationRepo.ObservationID(&observation), observation.EffectiveDateTime, observation.ValueString)
		}
	case 4:
		conditionsFound, err := c.ConditionRepo.ListByPatient(ctx, c.session.PatientPN)
		if err != nil {
			c.showError(err)
			return
		}
		for _, condition := range conditionsFound {
			severity := ""
			if condition.Severity != nil {
				severity = condition.Severity.Text
			}
			details := ""
			if condition.Code != nil {
				details = condition.Code.Text
			}
			c.prompt.printf("- %s [%s] %s\n", c.ConditionRepo.ConditionID(&condition), severity, details)
		}
	case 5:
		c.messagingMenu(ctx, communications.Party{PatientPN: c.session.PatientPN})
	case 6:
		c.logout(ctx)
	}
}
