// Package fhirtest provides an in-memory HL7-R4 resource store backed by
// httptest for exercising the store client and the repositories without a
// network. It implements just enough of the wire contract: create with
// server-assigned ids, read/update/delete by id, and identifier, name and
// party searches with paginated searchset bundles.
package fhirtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

type resource = map[string]interface{}

// Server is a fake resource store. PageSize limits entries per searchset
// page; zero means everything on one page.
type Server struct {
	PageSize int

	mu     sync.Mutex
	nextID int
	// stored resources per type, in insertion order
	data map[string][]resource
	ts   *httptest.Server
}

func NewServer() *Server {
	s := &Server{
		nextID: 1,
		data:   make(map[string][]resource),
	}
	s.ts = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) URL() string { return s.ts.URL }

func (s *Server) Close() { s.ts.Close() }

// Seed stores a resource directly, assigning an id, and returns it.
func (s *Server) Seed(resourceType string, raw string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res resource
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		panic(fmt.Sprintf("fhirtest: bad seed JSON: %v", err))
	}
	id := strconv.Itoa(s.nextID)
	s.nextID++
	res["id"] = id
	s.data[resourceType] = append(s.data[resourceType], res)
	return id
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 1 && r.Method == http.MethodPost:
		s.create(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.search(w, r, parts[0])
	case len(parts) == 2 && r.Method == http.MethodGet:
		s.read(w, parts[0], parts[1])
	case len(parts) == 2 && r.Method == http.MethodPut:
		s.update(w, r, parts[0], parts[1])
	case len(parts) == 2 && r.Method == http.MethodDelete:
		s.delete(w, parts[0], parts[1])
	default:
		s.outcome(w, http.StatusBadRequest, "unsupported request")
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, resourceType string) {
	var res resource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		s.outcome(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	res["id"] = id
	s.data[resourceType] = append(s.data[resourceType], res)
	s.mu.Unlock()

	s.reply(w, http.StatusCreated, res)
}

func (s *Server) read(w http.ResponseWriter, resourceType, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, res := range s.data[resourceType] {
		if res["id"] == id {
			s.reply(w, http.StatusOK, res)
			return
		}
	}
	s.outcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, resourceType, id string) {
	var res resource
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		s.outcome(w, http.StatusBadRequest, "invalid body")
		return
	}
	res["id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.data[resourceType] {
		if existing["id"] == id {
			s.data[resourceType][i] = res
			s.reply(w, http.StatusOK, res)
			return
		}
	}
	s.outcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
}

func (s *Server) delete(w http.ResponseWriter, resourceType, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.data[resourceType]
	for i, existing := range stored {
		if existing["id"] == id {
			s.data[resourceType] = append(stored[:i:i], stored[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	s.outcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, resourceType string) {
	query := r.URL.Query()

	s.mu.Lock()
	var matched []resource
	for _, res := range s.data[resourceType] {
		if s.matches(res, query) {
			matched = append(matched, res)
		}
	}
	s.mu.Unlock()

	page := 0
	if raw := query.Get("_page"); raw != "" {
		page, _ = strconv.Atoi(raw)
	}

	start := 0
	end := len(matched)
	next := ""
	if s.PageSize > 0 {
		start = page * s.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end = start + s.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		if end < len(matched) {
			nextQuery := r.URL.Query()
			nextQuery.Set("_page", strconv.Itoa(page+1))
			next = fmt.Sprintf("%s/%s?%s", s.ts.URL, resourceType, nextQuery.Encode())
		}
	}

	entries := make([]resource, 0, end-start)
	for _, res := range matched[start:end] {
		entries = append(entries, resource{"resource": res})
	}

	bundle := resource{
		"resourceType": "Bundle",
		"type":         "searchset",
		"total":        len(matched),
		"entry":        entries,
	}
	if next != "" {
		bundle["link"] = []resource{{"relation": "next", "url": next}}
	}
	s.reply(w, http.StatusOK, bundle)
}

// matches applies the supported search parameters conjunctively.
func (s *Server) matches(res resource, query map[string][]string) bool {
	for param, values := range query {
		if param == "_page" || len(values) == 0 {
			continue
		}
		value := values[0]

		switch param {
		case "identifier":
			if !matchesIdentifier(res, value) {
				return false
			}
		case "family":
			if !matchesName(res, "family", value) {
				return false
			}
		case "given":
			if !matchesName(res, "given", value) {
				return false
			}
		case "patient":
			if !hasReference(res, "Patient/"+value) {
				return false
			}
		case "practitioner":
			if !hasReference(res, "Practitioner/"+value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func matchesIdentifier(res resource, token string) bool {
	system, value := "", token
	if i := strings.Index(token, "|"); i >= 0 {
		system, value = token[:i], token[i+1:]
	}

	identifiers, _ := res["identifier"].([]interface{})
	for _, raw := range identifiers {
		identifier, _ := raw.(map[string]interface{})
		if identifier == nil {
			continue
		}
		if system != "" && identifier["system"] != system {
			continue
		}
		if identifier["value"] == value {
			return true
		}
	}
	return false
}

func matchesName(res resource, part, value string) bool {
	names, _ := res["name"].([]interface{})
	for _, raw := range names {
		name, _ := raw.(map[string]interface{})
		if name == nil {
			continue
		}
		if part == "family" {
			if family, _ := name["family"].(string); strings.EqualFold(family, value) {
				return true
			}
			continue
		}
		givens, _ := name["given"].([]interface{})
		for _, given := range givens {
			if text, _ := given.(string); strings.EqualFold(text, value) {
				return true
			}
		}
	}
	return false
}

// hasReference walks the decoded resource looking for any "reference"
// field holding the wanted typed reference.
func hasReference(value interface{}, wanted string) bool {
	switch typed := value.(type) {
	case map[string]interface{}:
		for key, nested := range typed {
			if key == "reference" {
				if ref, _ := nested.(string); ref == wanted {
					return true
				}
				continue
			}
			if hasReference(nested, wanted) {
				return true
			}
		}
	case []interface{}:
		for _, nested := range typed {
			if hasReference(nested, wanted) {
				return true
			}
		}
	}
	return false
}

func (s *Server) reply(w http.ResponseWriter, status int, body resource) {
	w.Header().Set("Content-Type", "application/fhir+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) outcome(w http.ResponseWriter, status int, diagnostics string) {
	s.reply(w, status, resource{
		"resourceType": "OperationOutcome",
		"issue": []resource{
			{"severity": "error", "code": "processing", "diagnostics": diagnostics},
		},
	})
}
