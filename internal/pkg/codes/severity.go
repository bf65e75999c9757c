package codes

import "strings"

// Severity of a condition. The canonical labels are the exact strings
// stored in severity.text; listing-by-severity compares on them verbatim.
type Severity string

const (
	SeverityHigh   Severity = "Hög"
	SeverityMedium Severity = "Medel"
	SeverityLow    Severity = "Låg"
)

func (s Severity) Label() string { return string(s) }

func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// ParseSeverity accepts Swedish and English spellings case-insensitively.
// The second return is false when the input matches no severity.
func ParseSeverity(input string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "HÖG", "HOG", "HIGH", "H":
		return SeverityHigh, true
	case "MEDEL", "MEDIUM", "M":
		return SeverityMedium, true
	case "LÅG", "LAG", "LOW", "L":
		return SeverityLow, true
	default:
		return "", false
	}
}
