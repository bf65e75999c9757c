package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"clinrec-service/internal/app/services/auth"
	"clinrec-service/internal/app/services/datalake"
	"clinrec-service/internal/app/services/fhir/appointments"
	"clinrec-service/internal/app/services/fhir/communications"
	"clinrec-service/internal/app/services/fhir/conditions"
	"clinrec-service/internal/app/services/fhir/observations"
	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhir/practitioners"
	"clinrec-service/internal/app/services/shared/sessions"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/dto/requests"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/utils"
)

type CLI struct {
	Auth             auth.AuthUsecase
	PatientRepo      patients.PatientFhirRepository
	PractitionerRepo practitioners.PractitionerFhirRepository
	AppointmentRepo  appointments.AppointmentFhirRepository
	ObservationRepo  observations.ObservationFhirRepository
	ConditionRepo    conditions.ConditionFhirRepository
	CommunicationRepo communications.CommunicationFhirRepository
	Datalake         datalake.DatalakeService
	Log              *logrus.Logger

	prompt  *prompter
	session *sessions.Session
}

func NewCLI(
	authUsecase auth.AuthUsecase,
	patientRepo patients.PatientFhirRepository,
	practitionerRepo practitioners.PractitionerFhirRepository,
	appointmentRepo appointments.AppointmentFhirRepository,
	observationRepo observations.ObservationFhirRepository,
	conditionRepo conditions.ConditionFhirRepository,
	communicationRepo communications.CommunicationFhirRepository,
	datalakeService datalake.DatalakeService,
	logger *logrus.Logger,
	in io.Reader,
	out io.Writer,
) *CLI {
	return &CLI{
		Auth:              authUsecase,
		PatientRepo:       patientRepo,
		PractitionerRepo:  practitionerRepo,
		AppointmentRepo:   appointmentRepo,
		ObservationRepo:   observationRepo,
		ConditionRepo:     conditionRepo,
		CommunicationRepo: communicationRepo,
		Datalake:          datalakeService,
		Log:               logger,
		prompt:            newPrompter(in, out),
	}
}

// Run drives the top-level menu loop until the user exits.
func (c *CLI) Run(ctx context.Context) {
	c.prompt.println("Clinical Records CLI")

	for {
		if c.session == nil {
			if done := c.authMenu(ctx); done {
				return
			}
			continue
		}

		switch c.session.Role {
		case constvars.RolePatient:
			c.patientMenu(ctx)
		case constvars.RolePractitioner:
			c.doctorMenu(ctx)
		case constvars.RoleAdmin:
			c.adminMenu(ctx)
		default:
			c.prompt.println("Unknown role, logging out")
			c.logout(ctx)
		}
	}
}

// showError prints the user-facing side of an error and logs the rest.
func (c *CLI) showError(err error) {
	c.Log.WithError(err).Warn("operation failed")
	c.prompt.println("Error:", exceptions.ClientMessage(err))
}

func (c *CLI) authMenu(ctx context.Context) bool {
	switch c.prompt.choose("Welcome", []string{"Login", "Register", "Exit"}) {
	case 0:
		request := requests.Login{
			Username: c.prompt.ask("Username"),
			Password: c.prompt.ask("Password"),
		}
		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return false
		}

		sessionID, err := c.Auth.Login(ctx, request.Username, request.Password)
		if err != nil {
			c.showError(err)
			return false
		}
		session, err := c.Auth.CurrentUser(ctx, sessionID)
		if err != nil {
			c.showError(err)
			return false
		}
		c.session = session
		c.prompt.printf("Logged in as %s (%s)\n", session.Username, session.Role)
	case 1:
		request := requests.Register{
			Username: c.prompt.ask("Username"),
			Password: c.prompt.ask("Password"),
			Role:     c.prompt.ask("Role (patient/practitioner/admin)"),
		}
		switch request.Role {
		case constvars.RolePatient:
			request.PatientPN = c.prompt.ask("Personal number")
		case constvars.RolePractitioner:
			request.DoctorID = c.prompt.ask("Doctor ID")
		}
		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return false
		}

		if _, err := c.Auth.Register(ctx, request.Username, request.Password, request.Role, request.PatientPN, request.DoctorID); err != nil {
			c.showError(err)
			return false
		}
		c.prompt.println("Account created, please log in")
	case 2:
		return true
	}
	return false
}

func (c *CLI) logout(ctx context.Context) {
	if c.session == nil {
		return
	}
	if err := c.Auth.Logout(ctx, c.session.SessionID); err != nil {
		c.showError(err)
	}
	c.session = nil
	c.prompt.println("Logged out")
}

// askLocalTime keeps prompting until the user supplies a parseable local
// wall-clock time or gives up with an empty answer.
func (c *CLI) askLocalTime(label string) (string, bool) {
	for {
		answer := c.prompt.ask(label + " (" + utils.LocalDateTimeLayout + ")")
		if answer == "" {
			return "", false
		}
		if _, err := utils.ParseLocalDateTime(answer); err == nil {
			return answer, true
		}
		c.prompt.println("Invalid time, try again or press enter to cancel")
	}
}
