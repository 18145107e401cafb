//go:build unit || e2e

package sourcetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// Server is an HTTP fake of the booking provider. Populate the exported fields before the
// first request; they are read under the server's lock afterwards.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	token        string
	Listings     []map[string]any
	Reservations []map[string]any
	// Finance holds the calculated-field lines per reservation id.
	Finance     map[string]any
	FailFinance map[string]bool
	// FailOffset makes the reservation page at that offset answer 502; -1 disables it.
	FailOffset int
	pages      int
}

func NewServer(t *testing.T, token string) *Server {
	t.Helper()

	s := &Server{
		token:       token,
		Finance:     map[string]any{},
		FailFinance: map[string]bool{},
		FailOffset:  -1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /listings", s.listings)
	mux.HandleFunc("GET /reservations", s.reservations)
	mux.HandleFunc("GET /financeCalculatedField/reservation/{id}", s.finance)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeResult(w, http.StatusForbidden, nil)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Pages counts reservation page requests.
func (s *Server) Pages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

func (s *Server) listings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeResult(w, http.StatusOK, s.Listings)
}

func (s *Server) reservations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages++
	if offset == s.FailOffset {
		writeResult(w, http.StatusBadGateway, nil)
		return
	}
	end := min(offset+limit, len(s.Reservations))
	page := []map[string]any{}
	if offset < end {
		page = s.Reservations[offset:end]
	}
	writeResult(w, http.StatusOK, page)
}

func (s *Server) finance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("id")
	if s.FailFinance[id] {
		writeResult(w, http.StatusInternalServerError, nil)
		return
	}
	lines, ok := s.Finance[id]
	if !ok {
		lines = []any{}
	}
	writeResult(w, http.StatusOK, lines)
}

// Reservation builds a raw provider payload with loosely typed fields the way the provider
// sends them: numeric ids and a comma-grouped price string.
func Reservation(id int, listingID any, arrival, departure string) map[string]any {
	return map[string]any{
		"id":            id,
		"listingMapId":  listingID,
		"guestName":     fmt.Sprintf("Guest %d", id),
		"arrivalDate":   arrival,
		"departureDate": departure,
		"status":        "new",
		"totalPrice":    "1,000.00",
	}
}

func Listing(id any, name, country string) map[string]any {
	return map[string]any{"id": id, "name": name, "country": country}
}

func writeResult(w http.ResponseWriter, status int, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	state := "success"
	if status >= 300 {
		state = "fail"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"status": state, "result": result})
}
