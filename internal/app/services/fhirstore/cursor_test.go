package fhirstore_test

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/fhirtest"
)

func TestCursorFollowsAllPages(t *testing.T) {
	server := fhirtest.NewServer()
	defer server.Close()
	server.PageSize = 3

	for i := 0; i < 8; i++ {
		server.Seed(constvars.ResourcePatient, fmt.Sprintf(`{
			"resourceType": "Patient",
			"identifier": [{"system": "%s", "value": "pn-%02d"}],
			"name": [{"family": "Svensson"}]
		}`, constvars.SystemPersonnummer, i))
	}

	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	cursor := fhirstore.NewCursor[fhir_dto.Patient](client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return client.Search(ctx, constvars.ResourcePatient, url.Values{
			constvars.SearchParamFamily: {"Svensson"},
		})
	})

	patients, err := fhirstore.CollectAll(context.Background(), cursor)
	require.NoError(t, err)
	require.Len(t, patients, 8)

	// Page-internal and cross-page order matches insertion order.
	for i, patient := range patients {
		assert.Equal(t, fmt.Sprintf("pn-%02d", i), patient.Identifier[0].Value)
	}
}

func TestCursorEmptyResult(t *testing.T) {
	server := fhirtest.NewServer()
	defer server.Close()

	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	cursor := fhirstore.NewCursor[fhir_dto.Patient](client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return client.Search(ctx, constvars.ResourcePatient, url.Values{})
	})

	assert.False(t, cursor.Next(context.Background()))
	assert.NoError(t, cursor.Err())
}

func TestCursorPropagatesFetchError(t *testing.T) {
	server := fhirtest.NewServer()
	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	server.Close()

	cursor := fhirstore.NewCursor[fhir_dto.Patient](client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return client.Search(ctx, constvars.ResourcePatient, url.Values{})
	})

	assert.False(t, cursor.Next(context.Background()))
	assert.Error(t, cursor.Err())
}

func TestCursorIsNotRestartable(t *testing.T) {
	server := fhirtest.NewServer()
	defer server.Close()
	server.Seed(constvars.ResourcePatient, `{"resourceType": "Patient"}`)

	client := fhirstore.NewClient(server.URL(), zap.NewNop())
	cursor := fhirstore.NewCursor[fhir_dto.Patient](client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return client.Search(ctx, constvars.ResourcePatient, url.Values{})
	})

	ctx := context.Background()
	assert.True(t, cursor.Next(ctx))
	assert.False(t, cursor.Next(ctx))
	assert.False(t, cursor.Next(ctx), "an exhausted cursor stays exhausted")
}
