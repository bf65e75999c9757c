package fhirstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
)

// Client is the handle to the remote HL7-R4 resource store. It exposes the
// generic interaction set every repository builds on: create, read, update,
// delete, search and next-page loading. A single Client is constructed at
// startup and injected into each repository; it is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        logger,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Create POSTs the resource and decodes the server's copy into out. The
// store must answer 201; anything else is a creation failure.
func (c *Client) Create(ctx context.Context, resourceType string, resource, out interface{}) error {
	requestJSON, err := json.Marshal(resource)
	if err != nil {
		c.log.Error("fhirstore.Create error marshaling JSON",
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	resp, err := c.do(ctx, constvars.MethodPost, c.resourceURL(resourceType), bytes.NewBuffer(requestJSON))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusCreated {
		if outcomeErr := c.outcomeError(resp, "create", resourceType); outcomeErr != nil {
			return outcomeErr
		}
		return exceptions.ErrCreateNotConfirmed(resourceType)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("fhirstore.Create error decoding response",
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, resourceType)
	}
	return nil
}

// Read GETs a single resource by its opaque store id.
func (c *Client) Read(ctx context.Context, resourceType, storeID string, out interface{}) error {
	resp, err := c.do(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.resourceURL(resourceType), storeID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound || resp.StatusCode == constvars.StatusGone {
		return exceptions.ErrNoResourcesFound(resourceType, storeID)
	}
	if resp.StatusCode != constvars.StatusOK {
		if outcomeErr := c.outcomeError(resp, "read", resourceType); outcomeErr != nil {
			return outcomeErr
		}
		return exceptions.ErrStoreOperation(nil, "read", resourceType)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("fhirstore.Read error decoding response",
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.String(constvars.LoggingStoreIDKey, storeID),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, resourceType)
	}
	return nil
}

// Update PUTs the resource at its store id and decodes the stored copy into
// out. out may be nil when the caller keeps its own copy.
func (c *Client) Update(ctx context.Context, resourceType, storeID string, resource, out interface{}) error {
	requestJSON, err := json.Marshal(resource)
	if err != nil {
		c.log.Error("fhirstore.Update error marshaling JSON",
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	resp, err := c.do(ctx, constvars.MethodPut, fmt.Sprintf("%s/%s", c.resourceURL(resourceType), storeID), bytes.NewBuffer(requestJSON))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		if outcomeErr := c.outcomeError(resp, "update", resourceType); outcomeErr != nil {
			return outcomeErr
		}
		return exceptions.ErrStoreOperation(nil, "update", resourceType)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("fhirstore.Update error decoding response",
			zap.String(constvars.LoggingResourceTypeKey, resourceType),
			zap.String(constvars.LoggingStoreIDKey, storeID),
			zap.Error(err),
		)
		return exceptions.ErrDecodeResponse(err, resourceType)
	}
	return nil
}

// Delete removes a resource by its store id.
func (c *Client) Delete(ctx context.Context, resourceType, storeID string) error {
	resp, err := c.do(ctx, constvars.MethodDelete, fmt.Sprintf("%s/%s", c.resourceURL(resourceType), storeID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case constvars.StatusOK, constvars.StatusNoContent:
		return nil
	}
	if outcomeErr := c.outcomeError(resp, "delete", resourceType); outcomeErr != nil {
		return outcomeErr
	}
	return exceptions.ErrStoreOperation(nil, "delete", resourceType)
}

// Search GETs the resource type with the given query params and returns the
// first page of the result bundle.
func (c *Client) Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.Bundle, error) {
	searchURL := c.resourceURL(resourceType)
	if len(params) > 0 {
		searchURL = fmt.Sprintf("%s?%s", searchURL, params.Encode())
	}
	return c.fetchBundle(ctx, resourceType, searchURL)
}

// LoadNext follows the bundle's next link and returns the following page.
// Callers check Bundle.NextLink before calling.
func (c *Client) LoadNext(ctx context.Context, bundle *fhir_dto.Bundle) (*fhir_dto.Bundle, error) {
	next := bundle.NextLink()
	if next == "" {
		return nil, exceptions.ErrBundleMissingNextLink()
	}
	return c.fetchBundle(ctx, constvars.ResourceBundle, next)
}

func (c *Client) fetchBundle(ctx context.Context, resourceType, fetchURL string) (*fhir_dto.Bundle, error) {
	resp, err := c.do(ctx, constvars.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		if outcomeErr := c.outcomeError(resp, "search", resourceType); outcomeErr != nil {
			return nil, outcomeErr
		}
		return nil, exceptions.ErrStoreOperation(nil, "search", resourceType)
	}

	bundle := new(fhir_dto.Bundle)
	if err := json.NewDecoder(resp.Body).Decode(bundle); err != nil {
		c.log.Error("fhirstore.fetchBundle error decoding bundle",
			zap.String(constvars.LoggingFhirURLKey, fetchURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
	}
	return bundle, nil
}

func (c *Client) do(ctx context.Context, method, requestURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		c.log.Error("fhirstore error creating HTTP request",
			zap.String(constvars.LoggingFhirURLKey, requestURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("fhirstore error sending HTTP request",
			zap.String(constvars.LoggingFhirURLKey, requestURL),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	return resp, nil
}

// outcomeError reads an OperationOutcome from an error response and turns
// its first issue into a store error. Returns nil when the body carries no
// usable diagnostics, so callers can fall back to a generic error.
func (c *Client) outcomeError(resp *http.Response, operation, resourceType string) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return exceptions.ErrStoreOperation(err, operation, resourceType)
	}

	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(bodyBytes, &outcome); err != nil || len(outcome.Issue) == 0 {
		return nil
	}

	issueErr := fmt.Errorf("%s", outcome.Issue[0].Diagnostics)
	c.log.Error("fhirstore FHIR error",
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Error(issueErr),
	)
	return exceptions.ErrStoreOperation(issueErr, operation, resourceType)
}

func (c *Client) resourceURL(resourceType string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, resourceType)
}
