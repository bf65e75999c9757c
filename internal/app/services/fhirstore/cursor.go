package fhirstore

import (
	"context"

	"github.com/goccy/go-json"

	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
)

// FetchFunc produces the first page of a search. Subsequent pages are
// loaded by following the bundle's next link.
type FetchFunc func(ctx context.Context) (*fhir_dto.Bundle, error)

// Cursor is a lazy pull iterator over a paginated search result. Pages are
// fetched on demand, at most one page ahead of the consumer; order within a
// page is preserved. A cursor is finite and cannot be restarted.
//
// Usage follows the driver-cursor convention:
//
//	cur := fhirstore.NewCursor[fhir_dto.Patient](client, fetch)
//	for cur.Next(ctx) {
//		p := cur.Resource()
//		...
//	}
//	if err := cur.Err(); err != nil { ... }
type Cursor[T any] struct {
	client  *Client
	fetch   FetchFunc
	bundle  *fhir_dto.Bundle
	entries []fhir_dto.BundleEntry
	pos     int
	current T
	err     error
	done    bool
}

func NewCursor[T any](client *Client, fetch FetchFunc) *Cursor[T] {
	return &Cursor[T]{client: client, fetch: fetch}
}

// Next advances the cursor, fetching the next page when the current one is
// exhausted. It returns false at the end of the sequence or on error; the
// two cases are distinguished by Err.
func (c *Cursor[T]) Next(ctx context.Context) bool {
	if c.done || c.err != nil {
		return false
	}

	for c.pos >= len(c.entries) {
		var (
			page *fhir_dto.Bundle
			err  error
		)
		switch {
		case c.bundle == nil:
			page, err = c.fetch(ctx)
		case c.bundle.NextLink() != "":
			page, err = c.client.LoadNext(ctx, c.bundle)
		default:
			c.done = true
			return false
		}
		if err != nil {
			c.err = err
			return false
		}
		c.bundle = page
		c.entries = page.Entry
		c.pos = 0
	}

	var resource T
	if err := json.Unmarshal(c.entries[c.pos].Resource, &resource); err != nil {
		c.err = exceptions.ErrDecodeResponse(err, c.bundle.ResourceType)
		return false
	}
	c.current = resource
	c.pos++
	return true
}

// Resource returns the element the last successful Next decoded.
func (c *Cursor[T]) Resource() T { return c.current }

// Err reports the first fetch or decode failure; nil after a clean
// exhaustion.
func (c *Cursor[T]) Err() error { return c.err }

// CollectAll drains a cursor into a slice.
func CollectAll[T any](ctx context.Context, cur *Cursor[T]) ([]T, error) {
	var resources []T
	for cur.Next(ctx) {
		resources = append(resources, cur.Resource())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return resources, nil
}
