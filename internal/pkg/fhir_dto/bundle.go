package fhir_dto

import (
	"github.com/goccy/go-json"

	"clinrec-service/internal/pkg/constvars"
)

type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type,omitempty"`
	Total        int           `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

// NextLink returns the URL of the bundle's "next" page link, or "" when the
// bundle is the last page.
func (b *Bundle) NextLink() string {
	for _, link := range b.Link {
		if link.Relation == constvars.FhirBundleLinkNext {
			return link.URL
		}
	}
	return ""
}
