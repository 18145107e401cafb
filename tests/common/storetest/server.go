//go:build unit || e2e

package storetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"property-revenue-sync/internal/infra/store"
)

// Write shapes the fake server can be told to reject, mirroring the store's variants.
const (
	ShapeSingularRecord  = "singular/record"
	ShapeSingularRecords = "singular/records"
	ShapePluralRecords   = "plural/records"
	ShapePatchFields     = "patch/fields"
	ShapePatchRecord     = "patch/record"
)

type fieldsBody struct {
	Fields map[string]any `json:"fields"`
}

type writeBody struct {
	Fields  map[string]any `json:"fields"`
	Record  *fieldsBody    `json:"record"`
	Records []fieldsBody   `json:"records"`
}

type wireRecord struct {
	ID          string            `json:"id"`
	Fields      map[string]string `json:"fields"`
	CreatedTime string            `json:"createdTime"`
}

// Server is an HTTP fake of the tabular store backed by Memory.
type Server struct {
	*httptest.Server
	Store *Memory

	mu       sync.Mutex
	tokens   map[string]bool
	rejected map[string]bool
	requests []string
	// FailPages makes GET pages (1-based) answer 500.
	failPages map[int]bool
	// SingleResponse answers creates with a bare {id,...} instead of {records:[...]}.
	SingleResponse bool
}

func NewServer(t *testing.T, tokens ...string) *Server {
	t.Helper()

	s := &Server{
		Store:     NewMemory(),
		tokens:    make(map[string]bool),
		rejected:  make(map[string]bool),
		failPages: make(map[int]bool),
	}
	for _, tok := range tokens {
		s.tokens[tok] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /table/{table}/record", s.list)
	mux.HandleFunc("POST /table/{table}/record", s.createSingular)
	mux.HandleFunc("POST /table/{table}/records", s.createPlural)
	mux.HandleFunc("PATCH /table/{table}/record/{id}", s.patch)
	mux.HandleFunc("DELETE /table/{table}/record/{id}", s.delete)

	s.Server = httptest.NewServer(s.authorize(mux))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Reject(shapes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, shape := range shapes {
		s.rejected[shape] = true
	}
}

func (s *Server) FailPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPages[page] = true
}

// Requests returns "METHOD path?query" for every request that passed authorization.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// CountRequests counts recorded requests starting with prefix.
func (s *Server) CountRequests(prefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !s.tokens[token] {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		s.mu.Lock()
		entry := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			entry += "?" + r.URL.RawQuery
		}
		s.requests = append(s.requests, entry)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) isRejected(shape string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejected[shape]
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	take, _ := strconv.Atoi(r.URL.Query().Get("take"))
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	if take <= 0 {
		take = 100
	}

	// the 1-record token check is not a page
	if take > 1 {
		page := skip/take + 1
		s.mu.Lock()
		fail := s.failPages[page]
		s.mu.Unlock()
		if fail {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "page failed"})
			return
		}
	}

	// the real store pages in insertion order
	all := s.Store.Records(r.PathValue("table"))
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	out := make([]wireRecord, 0, take)
	for i := skip; i < len(all) && len(out) < take; i++ {
		out = append(out, toWire(all[i].ID, all[i].Fields, all[i].CreatedTime))
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

func (s *Server) createSingular(w http.ResponseWriter, r *http.Request) {
	var body writeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad json"})
		return
	}
	switch {
	case body.Record != nil && !s.isRejected(ShapeSingularRecord):
		s.create(w, r.PathValue("table"), body.Record.Fields)
	case len(body.Records) > 0 && !s.isRejected(ShapeSingularRecords):
		s.create(w, r.PathValue("table"), body.Records[0].Fields)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unsupported payload"})
	}
}

func (s *Server) createPlural(w http.ResponseWriter, r *http.Request) {
	var body writeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Records) == 0 || s.isRejected(ShapePluralRecords) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unsupported payload"})
		return
	}
	s.create(w, r.PathValue("table"), body.Records[0].Fields)
}

func (s *Server) create(w http.ResponseWriter, table string, fields map[string]any) {
	created := s.Store.Seed(table, stringFields(fields))[0]
	wire := toWire(created.ID, created.Fields, created.CreatedTime)
	if s.SingleResponse {
		writeJSON(w, http.StatusCreated, wire)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"records": []wireRecord{wire}})
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	var body writeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad json"})
		return
	}

	var fields map[string]any
	switch {
	case body.Fields != nil && !s.isRejected(ShapePatchFields):
		fields = body.Fields
	case body.Record != nil && !s.isRejected(ShapePatchRecord):
		fields = body.Record.Fields
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unsupported payload"})
		return
	}

	if err := s.Store.Update(r.Context(), tableRef(r), r.PathValue("id"), stringFields(fields)); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": r.PathValue("id")})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, rec := range s.Store.Records(r.PathValue("table")) {
		if rec.ID == id {
			_ = s.Store.Delete(r.Context(), tableRef(r), id)
			writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
}

func tableRef(r *http.Request) store.TableRef {
	return store.TableRef{ID: r.PathValue("table")}
}

func toWire(id string, fields map[string]string, created time.Time) wireRecord {
	return wireRecord{ID: id, Fields: fields, CreatedTime: created.Format(time.RFC3339Nano)}
}

func stringFields(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
			out[k] = ""
		default:
			b, _ := json.Marshal(val)
			out[k] = string(b)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
