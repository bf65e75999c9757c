package cli

import (
	"context"

	"clinrec-service/internal/pkg/dto/requests"
	"clinrec-service/internal/pkg/utils"
)

func (c *CLI) adminMenu(ctx context.Context) {
	options := []string{
		"Register practitioner",
		"Search practitioners by name",
		"Practitioner summary",
		"Update practitioner",
		"Delete practitioner",
		"Export patients to datalake",
		"Export appointments to datalake",
		"Gender statistics",
		"Appointment status statistics",
		"Logout",
	}

	switch c.prompt.choose("Admin Menu", options) {
	case 0:
		request := requests.CreatePractitioner{
			DoctorID:    c.prompt.ask("Doctor ID"),
			FirstName:   c.prompt.ask("First name"),
			LastName:    c.prompt.ask("Last name"),
			PhoneNumber: c.prompt.askOptional("Phone number"),
		}
		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return
		}

		if _, err := c.PractitionerRepo.CreatePractitioner(ctx, request.DoctorID, request.FirstName,
			request.LastName, request.PhoneNumber); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Practitioner registered")
	case 1:
		practitionersFound, err := c.PractitionerRepo.SearchByName(ctx, c.prompt.ask("First name"), c.prompt.ask("Last name"))
		if err != nil {
			c.showError(err)
			return
		}
		for _, practitioner := range practitionersFound {
			c.prompt.printf("- %s: Dr. %s %s\n",
				c.PractitionerRepo.DoctorID(&practitioner),
				utils.GivenName(practitioner.Name),
				utils.FamilyName(practitioner.Name))
		}
	case 2:
		summary, err := c.PractitionerRepo.GetPractitionerSummary(ctx, c.prompt.ask("Doctor ID"))
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(summary)
	case 3:
		doctorID := c.prompt.ask("Doctor ID")
		firstName := c.prompt.askOptional("New first name")
		lastName := c.prompt.askOptional("New last name")
		phone := c.prompt.askOptional("New phone number")

		if _, err := c.PractitionerRepo.UpdatePractitioner(ctx, doctorID, firstName, lastName, phone); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Practitioner updated")
	case 4:
		doctorID := c.prompt.ask("Doctor ID")
		warning, err := c.PractitionerRepo.DeletePractitioner(ctx, doctorID, false)
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(warning)
		if c.prompt.confirm("Proceed?") {
			result, err := c.PractitionerRepo.DeletePractitioner(ctx, doctorID, true)
			if err != nil {
				c.showError(err)
				return
			}
			c.prompt.println(result)
		}
	case 5:
		objectName, err := c.Datalake.ExportPatients(ctx)
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Exported to", objectName)
	case 6:
		objectName, err := c.Datalake.ExportAppointments(ctx)
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Exported to", objectName)
	case 7:
		stats, err := c.Datalake.GenderStats(ctx)
		if err != nil {
			c.showError(err)
			return
		}
		for gender, count := range stats {
			c.prompt.printf("%s: %d\n", gender, count)
		}
	case 8:
		stats, err := c.Datalake.AppointmentStatusStats(ctx)
		if err != nil {
			c.showError(err)
			return
		}
		for status, count := range stats {
			c.prompt.printf("%s: %d\n", status, count)
		}
	case 9:
		c.logout(ctx)
	}
}
