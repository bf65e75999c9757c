package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/utils"
)

func TestIdentifierValue(t *testing.T) {
	identifiers := []fhir_dto.Identifier{
		{System: "http://other", Value: "nope"},
		{System: constvars.SystemPersonnummer, Value: "19900101-1234"},
	}

	assert.Equal(t, "19900101-1234", utils.IdentifierValue(identifiers, constvars.SystemPersonnummer))
	assert.Equal(t, "", utils.IdentifierValue(identifiers, constvars.SystemDoctorID))
	assert.Equal(t, "", utils.IdentifierValue(nil, constvars.SystemPersonnummer))
}

func TestHumanNameHelpers(t *testing.T) {
	names := []fhir_dto.HumanName{
		{Family: "Svensson", Given: []string{"Anna", "Maria"}},
	}

	assert.Equal(t, "Anna Maria Svensson", utils.FullName(names))
	assert.Equal(t, "Anna Maria", utils.GivenName(names))
	assert.Equal(t, "Svensson", utils.FamilyName(names))
	assert.Equal(t, "", utils.FullName(nil))
}

func TestSplitReference(t *testing.T) {
	resourceType, storeID := utils.SplitReference("Patient/abc123")
	assert.Equal(t, "Patient", resourceType)
	assert.Equal(t, "abc123", storeID)

	resourceType, storeID = utils.SplitReference("abc123")
	assert.Equal(t, "", resourceType)
	assert.Equal(t, "abc123", storeID)

	assert.Equal(t, "abc123", utils.ReferenceID("Practitioner/abc123"))
}

func TestParseLocalDateTime(t *testing.T) {
	parsed, err := utils.ParseLocalDateTime("2030-06-01T14:30")
	require.NoError(t, err)
	assert.Equal(t, 14, parsed.Hour())
	assert.Equal(t, time.Local, parsed.Location())

	_, err = utils.ParseLocalDateTime("not a time")
	assert.Error(t, err)
}

func TestInstantRoundTrip(t *testing.T) {
	instant := time.Date(2030, 6, 1, 12, 30, 0, 0, time.UTC)
	encoded := utils.FormatInstant(instant)

	decoded, err := utils.ParseInstant(encoded)
	require.NoError(t, err)
	assert.True(t, instant.Equal(decoded))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, utils.IsBlank(""))
	assert.True(t, utils.IsBlank("   "))
	assert.False(t, utils.IsBlank("x"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("hunter22", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}
