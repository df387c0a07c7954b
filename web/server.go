// ABOUTME: JSON API server consumed by the browser front end
// ABOUTME: Action-dispatch endpoints for login, contacts, activities, companies, dashboard, calendar
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/crm"
)

// Server holds the request-independent pieces of the gateway. Everything
// request-scoped (identity, remote client, service) is built per request;
// there is no shared mutable state across requests.
type Server struct {
	identity Identity
	allowed  AllowList
	dev      bool

	// storeConfig is read per request so credential rotation takes effect
	// without a restart. Tests swap it for a fixed config.
	storeConfig func() (airtable.Config, error)
}

// NewServer builds a gateway server with cookie identity extraction and
// environment-sourced remote store configuration.
func NewServer(allowed AllowList, dev bool) *Server {
	return &Server{
		identity:    CookieIdentity{},
		allowed:     allowed,
		dev:         dev,
		storeConfig: airtable.FromEnv,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.handleLogout)
	mux.HandleFunc("/api/contacts", s.handleContacts)
	mux.HandleFunc("/api/contacts/get", s.handleContactGet)
	mux.HandleFunc("/api/contacts/update", s.handleContactUpdate)
	mux.HandleFunc("/api/activities", s.handleActivities)
	mux.HandleFunc("/api/activities/create", s.handleActivityCreate)
	mux.HandleFunc("/api/companies", s.handleCompanies)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/calendar", s.handleCalendar)
	return s.withRequestLog(mux)
}

// Start runs the server until it fails.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting CRM gateway at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type ctxKey string

const requestIDKey ctxKey = "request-id"

// withRequestLog tags each request with a short ID so remote-call failures
// can be correlated with their request line in the log.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()[:8]
		log.Printf("[%s] %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return "-"
}

// service builds the request-scoped owner service: identity from the cookie,
// remote client from the current environment.
func (s *Server) service(r *http.Request) (*crm.Service, error) {
	email, err := s.identity.Identity(r)
	if err != nil {
		return nil, err
	}

	cfg, err := s.storeConfig()
	if err != nil {
		return nil, err
	}
	client, err := airtable.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return crm.NewService(client, email), nil
}

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Email string `json:"email"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID(r), &crm.BadRequestError{Reason: "invalid request body"})
		return
	}

	email := crm.NormalizeEmail(req.Email)
	if email == "" {
		writeError(w, requestID(r), &crm.BadRequestError{Reason: "email is required"})
		return
	}
	if !s.allowed.Contains(email) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "email not authorized"})
		return
	}

	setSessionCookie(w, email, s.dev)
	writeJSON(w, http.StatusOK, loginResponse{Email: email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	clearSessionCookie(w, s.dev)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	contacts, err := svc.ListContacts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

func (s *Server) handleContactGet(w http.ResponseWriter, r *http.Request) {
	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	contact, err := svc.GetContact(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

type contactUpdateRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Position    string `json:"position,omitempty"`
	Status      string `json:"status,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	// Notes has no omitempty semantics on the way in: an empty string is a
	// deliberate clear and is always forwarded to the remote store.
	Notes string `json:"notes"`
}

func (s *Server) handleContactUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	var req contactUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID(r), &crm.BadRequestError{Reason: "invalid request body"})
		return
	}
	if req.ID == "" {
		writeError(w, requestID(r), &crm.BadRequestError{Reason: "contact id is required"})
		return
	}

	contact, err := svc.UpdateContact(r.Context(), req.ID, crm.ContactUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Position:    req.Position,
		Status:      req.Status,
		LinkedInURL: req.LinkedInURL,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	activities, err := svc.ListActivities(r.Context(), r.URL.Query().Get("contactId"))
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
}

type activityCreateRequest struct {
	ContactID    string `json:"contactId"`
	Type         string `json:"type"`
	Notes        string `json:"notes"`
	NextFollowUp string `json:"nextFollowUp,omitempty"`
}

func (s *Server) handleActivityCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	var req activityCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID(r), &crm.BadRequestError{Reason: "invalid request body"})
		return
	}

	activity, err := svc.CreateActivity(r.Context(), crm.ActivityInput{
		ContactID:    req.ContactID,
		Type:         req.Type,
		Notes:        req.Notes,
		NextFollowUp: req.NextFollowUp,
	})
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	companies, err := svc.ListCompanies(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	stats, err := svc.DashboardStats(r.Context())
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	svc, err := s.service(r)
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}

	events, err := svc.CalendarEvents(r.Context(), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, requestID(r), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
