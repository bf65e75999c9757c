package utils

import (
	"strings"

	"clinrec-service/internal/pkg/fhir_dto"
)

// IdentifierValue returns the value of the first identifier in the given
// system, or "" when none matches.
func IdentifierValue(identifiers []fhir_dto.Identifier, system string) string {
	for _, id := range identifiers {
		if id.System == system {
			return id.Value
		}
	}
	return ""
}

// FullName joins the first name entry's given parts and family name,
// matching how the store renders a HumanName as a single string.
func FullName(names []fhir_dto.HumanName) string {
	if len(names) == 0 {
		return ""
	}
	parts := append([]string{}, names[0].Given...)
	if names[0].Family != "" {
		parts = append(parts, names[0].Family)
	}
	return strings.Join(parts, " ")
}

// GivenName returns the first name entry's given parts as a single string.
func GivenName(names []fhir_dto.HumanName) string {
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names[0].Given, " ")
}

// FamilyName returns the first name entry's family name.
func FamilyName(names []fhir_dto.HumanName) string {
	if len(names) == 0 {
		return ""
	}
	return names[0].Family
}

// SplitReference splits "Patient/abc123" into its resource type and store
// id. Either part may come back empty for malformed references.
func SplitReference(reference string) (resourceType, storeID string) {
	idx := strings.LastIndex(reference, "/")
	if idx < 0 {
		return "", reference
	}
	return reference[:idx], reference[idx+1:]
}

// ReferenceID returns only the store-id part of a reference string.
func ReferenceID(reference string) string {
	_, id := SplitReference(reference)
	return id
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
