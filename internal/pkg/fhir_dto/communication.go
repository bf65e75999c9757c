package fhir_dto

type Communication struct {
	ResourceType string                 `json:"resourceType"`
	ID           string                 `json:"id,omitempty"`
	Meta         *Meta                  `json:"meta,omitempty"`
	Identifier   []Identifier           `json:"identifier,omitempty"`
	Status       string                 `json:"status"`
	Sender       *Reference             `json:"sender,omitempty"`
	Recipient    []Reference            `json:"recipient,omitempty"`
	Payload      []CommunicationPayload `json:"payload,omitempty"`
	Sent         string                 `json:"sent,omitempty"`
}

type CommunicationPayload struct {
	ContentString string `json:"contentString,omitempty"`
}
