// ABOUTME: Tests for owner-scoped contact reads and updates
// ABOUTME: Covers case-insensitive ownership, forbidden access, and the Notes clearing contract
package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/harperreed/tably/airtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactRecord(id, name, owner string) airtable.Record {
	return airtable.Record{
		ID: id,
		Fields: map[string]any{
			"Name":        name,
			"Owner Email": owner,
		},
	}
}

func TestGetContactOwnerCaseInsensitive(t *testing.T) {
	svc := newTestService(t, "A@X.com", func(w http.ResponseWriter, r *http.Request) {
		writeRecord(w, contactRecord("rec1", "Jane", "a@x.com"))
	})

	contact, err := svc.GetContact(context.Background(), "rec1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", contact.Name)
	assert.Equal(t, "a@x.com", contact.OwnerEmail)
}

func TestGetContactForbiddenForOtherOwner(t *testing.T) {
	svc := newTestService(t, "b@x.com", func(w http.ResponseWriter, r *http.Request) {
		writeRecord(w, contactRecord("rec1", "Jane", "a@x.com"))
	})

	_, err := svc.GetContact(context.Background(), "rec1")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGetContactRespectsResponsibleEmailSpelling(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		writeRecord(w, airtable.Record{
			ID:     "rec1",
			Fields: map[string]any{"Name": "Jane", "Responsible Email": "a@x.com"},
		})
	})

	_, err := svc.GetContact(context.Background(), "rec1")
	require.NoError(t, err)
}

func TestGetContactRequiresID(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no remote call expected")
	})

	_, err := svc.GetContact(context.Background(), "")
	var badReq *BadRequestError
	require.ErrorAs(t, err, &badReq)
}

func TestListContactsFiltersByQuery(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("filterByFormula"), "a@x.com")
		writeRecords(w,
			contactRecord("rec1", "Jane Smith", "a@x.com"),
			contactRecord("rec2", "Bob Jones", "a@x.com"),
		)
	})

	contacts, err := svc.ListContacts(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "rec1", contacts[0].ID)
}

func TestUpdateContactAlwaysSendsNotes(t *testing.T) {
	var patched map[string]any
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			var req struct {
				Fields map[string]any `json:"fields"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			patched = req.Fields
			writeRecord(w, airtable.Record{
				ID:     "rec1",
				Fields: map[string]any{"Name": "Jane", "Owner Email": "a@x.com", "Notes": ""},
			})
			return
		}
		writeRecord(w, contactRecord("rec1", "Jane", "a@x.com"))
	})

	_, err := svc.UpdateContact(context.Background(), "rec1", ContactUpdate{
		Phone: "555-1234",
		Notes: "",
	})
	require.NoError(t, err)

	require.NotNil(t, patched)
	require.Contains(t, patched, "Notes", "Notes must be present even when empty")
	assert.Equal(t, "", patched["Notes"])
	assert.Equal(t, "555-1234", patched["Phone"])
	assert.NotContains(t, patched, "Name", "empty fields other than Notes are not sent")
}

func TestUpdateContactForbiddenBeforeWrite(t *testing.T) {
	var wrote bool
	svc := newTestService(t, "b@x.com", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			wrote = true
		}
		writeRecord(w, contactRecord("rec1", "Jane", "a@x.com"))
	})

	_, err := svc.UpdateContact(context.Background(), "rec1", ContactUpdate{Notes: "x"})
	require.ErrorIs(t, err, ErrForbidden)
	assert.False(t, wrote, "ownership is checked before any write happens")
}

func TestGetContactPassesThroughRemoteNotFound(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NOT_FOUND"}`))
	})

	_, err := svc.GetContact(context.Background(), "recGone")
	var apiErr *airtable.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
