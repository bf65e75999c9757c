package cli

import (
	"context"

	"clinrec-service/internal/app/services/fhir/communications"
	"clinrec-service/internal/pkg/dto/requests"
	"clinrec-service/internal/pkg/utils"
)

// askParty reads one side of a conversation: a personal number for a
// patient, a doctor id for a practitioner. Exactly one should be given.
func (c *CLI) askParty(label string) communications.Party {
	c.prompt.println(label + " (fill exactly one)")
	return communications.Party{
		PatientPN: c.prompt.askOptional("Personal number"),
		StaffID:   c.prompt.askOptional("Doctor ID"),
	}
}

func (c *CLI) messagingMenu(ctx context.Context, me communications.Party) {
	options := []string{
		"My messages",
		"Send message",
		"Conversation with...",
		"Message details",
		"Back",
	}

	switch c.prompt.choose("Messages", options) {
	case 0:
		messages, err := c.CommunicationRepo.GetMyMessages(ctx, me)
		if err != nil {
			c.showError(err)
			return
		}
		for _, message := range messages {
			text := ""
			if len(message.Payload) > 0 {
				text = message.Payload[0].ContentString
			}
			c.prompt.printf("- %s (%s) %s\n",
				c.CommunicationRepo.CommunicationID(&message), message.Sent, text)
		}
	case 1:
		communicationID := c.prompt.ask("Message ID")
		recipient := c.askParty("Recipient")

		request := requests.SendMessage{
			CommunicationID:    communicationID,
			SenderPatientPN:    me.PatientPN,
			SenderDoctorID:     me.StaffID,
			RecipientPatientPN: recipient.PatientPN,
			RecipientDoctorID:  recipient.StaffID,
			Text:               c.prompt.ask("Message"),
		}
		if err := utils.ValidateStruct(request); err != nil {
			c.showError(err)
			return
		}

		if _, err := c.CommunicationRepo.SendMessage(ctx, request.CommunicationID, me, recipient, request.Text); err != nil {
			c.showError(err)
			return
		}
		c.prompt.println("Message sent")
	case 2:
		other := c.askParty("Other party")
		messages, err := c.CommunicationRepo.GetMessagesBetween(ctx, me, other)
		if err != nil {
			c.showError(err)
			return
		}
		for _, message := range messages {
			from := ""
			if message.Sender != nil {
				from = message.Sender.Reference
			}
			text := ""
			if len(message.Payload) > 0 {
				text = message.Payload[0].ContentString
			}
			sent := message.Sent
			if parsed, err := utils.ParseInstant(sent); err == nil {
				sent = utils.FormatLocal(parsed)
			}
			c.prompt.printf("[%s] %s: %s\n", sent, from, text)
		}
	case 3:
		details, err := c.CommunicationRepo.GetCommunicationDetails(ctx, c.prompt.ask("Message ID"))
		if err != nil {
			c.showError(err)
			return
		}
		c.prompt.println(details)
	}
}
