package codes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinrec-service/internal/pkg/codes"
	"clinrec-service/internal/pkg/constvars"
)

func TestMapGender(t *testing.T) {
	cases := map[string]string{
		"MAN":     constvars.FhirGenderMale,
		"male":    constvars.FhirGenderMale,
		"m":       constvars.FhirGenderMale,
		"KVINNA":  constvars.FhirGenderFemale,
		"Female":  constvars.FhirGenderFemale,
		"f":       constvars.FhirGenderFemale,
		"ÖVRIGT":  constvars.FhirGenderOther,
		"other":   constvars.FhirGenderOther,
		"o":       constvars.FhirGenderOther,
		"":        constvars.FhirGenderUnknown,
		"unknown": constvars.FhirGenderUnknown,
		"banana":  constvars.FhirGenderUnknown,
		" man ":   constvars.FhirGenderMale,
	}
	for input, want := range cases {
		assert.Equal(t, want, codes.MapGender(input), "input %q", input)
	}
}

func TestParseSeverity(t *testing.T) {
	for _, input := range []string{"Hög", "HOG", "high", "h"} {
		severity, ok := codes.ParseSeverity(input)
		assert.True(t, ok, "input %q", input)
		assert.Equal(t, codes.SeverityHigh, severity)
	}

	severity, ok := codes.ParseSeverity("medel")
	assert.True(t, ok)
	assert.Equal(t, codes.SeverityMedium, severity)

	severity, ok = codes.ParseSeverity("låg")
	assert.True(t, ok)
	assert.Equal(t, codes.SeverityLow, severity)

	_, ok = codes.ParseSeverity("extreme")
	assert.False(t, ok)
}

func TestSeverityLabels(t *testing.T) {
	assert.Equal(t, "Hög", codes.SeverityHigh.Label())
	assert.Equal(t, "Medel", codes.SeverityMedium.Label())
	assert.Equal(t, "Låg", codes.SeverityLow.Label())
	assert.False(t, codes.Severity("High").Valid())
}
