// ABOUTME: Translation of service-layer failures into the HTTP error contract
// ABOUTME: Remote statuses pass through with details instead of a generic 500
package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/crm"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps each error kind onto its HTTP status. Remote failures keep
// their original status code and error body; only genuinely unexpected
// failures become a 500, and those are logged server-side.
func writeError(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	case errors.Is(err, crm.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	}

	var badReq *crm.BadRequestError
	if errors.As(err, &badReq) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: badReq.Reason})
		return
	}

	var cfgErr *airtable.ConfigError
	if errors.As(err, &cfgErr) {
		log.Printf("[%s] configuration error: %v", reqID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:  "server misconfigured",
			Detail: cfgErr.Error(),
		})
		return
	}

	var apiErr *airtable.APIError
	if errors.As(err, &apiErr) {
		log.Printf("[%s] remote store error %d: %s", reqID, apiErr.StatusCode, apiErr.Body)
		writeJSON(w, apiErr.StatusCode, errorResponse{
			Error:  "remote store request failed",
			Detail: apiErr.Body,
		})
		return
	}

	log.Printf("[%s] internal error: %v", reqID, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:  "internal error",
		Detail: err.Error(),
	})
}
