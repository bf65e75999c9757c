package fhir_dto

type Patient struct {
	ResourceType        string         `json:"resourceType"`
	ID                  string         `json:"id,omitempty"`
	Meta                *Meta          `json:"meta,omitempty"`
	Identifier          []Identifier   `json:"identifier"`
	Active              bool           `json:"active,omitempty"`
	Name                []HumanName    `json:"name,omitempty"`
	Telecom             []ContactPoint `json:"telecom,omitempty"`
	Gender              string         `json:"gender,omitempty"`
	BirthDate           string         `json:"birthDate,omitempty"`
	GeneralPractitioner []Reference    `json:"generalPractitioner,omitempty"`
}
