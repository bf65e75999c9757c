package codes

import (
	"strings"

	"clinrec-service/internal/pkg/constvars"
)

// MapGender normalises free-text sex input (Swedish or English, any case)
// into the administrative-gender code the store expects. Unrecognised or
// empty input maps to "unknown".
func MapGender(sex string) string {
	switch strings.ToUpper(strings.TrimSpace(sex)) {
	case "MAN", "MALE", "M":
		return constvars.FhirGenderMale
	case "KVINNA", "FEMALE", "F":
		return constvars.FhirGenderFemale
	case "ÖVRIGT", "OTHER", "O":
		return constvars.FhirGenderOther
	default:
		return constvars.FhirGenderUnknown
	}
}

// GenderDisplay renders a gender code the way summaries print it.
func GenderDisplay(gender string) string {
	switch gender {
	case constvars.FhirGenderMale:
		return "Male"
	case constvars.FhirGenderFemale:
		return "Female"
	case constvars.FhirGenderOther:
		return "Other"
	default:
		return "Unknown"
	}
}
