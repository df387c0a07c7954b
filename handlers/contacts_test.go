// ABOUTME: Tests for the contact MCP tool handlers
// ABOUTME: Exercises the tools against a fake remote store
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/crm"
	"github.com/harperreed/tably/models"
)

func newTestHandlers(t *testing.T, owner string, handler http.HandlerFunc) *ContactHandlers {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := airtable.NewClient(airtable.Config{
		BaseID:  "appTEST",
		Token:   "key-test",
		BaseURL: ts.URL,
	})
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}
	return NewContactHandlers(crm.NewService(client, owner))
}

func TestFindContacts(t *testing.T) {
	h := newTestHandlers(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"records":[
			{"id":"rec1","fields":{"Name":"Jane Smith","Owner Email":"a@x.com"}},
			{"id":"rec2","fields":{"Name":"Bob Jones","Owner Email":"a@x.com"}}
		]}`)
	})

	_, out, err := h.FindContacts(context.Background(), nil, FindContactsInput{Query: "jane"})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(out.Contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(out.Contacts))
	}
	if out.Contacts[0].Name != "Jane Smith" {
		t.Errorf("Expected Jane Smith, got %q", out.Contacts[0].Name)
	}
}

func TestGetContactRequiresID(t *testing.T) {
	h := newTestHandlers(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		t.Error("No remote call expected")
	})

	_, _, err := h.GetContact(context.Background(), nil, GetContactInput{})
	if err == nil {
		t.Fatal("Expected error for missing ID")
	}
}

func TestGetContactForbidden(t *testing.T) {
	h := newTestHandlers(t, "b@x.com", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"rec1","fields":{"Name":"Jane","Owner Email":"a@x.com"}}`)
	})

	_, contact, err := h.GetContact(context.Background(), nil, GetContactInput{ID: "rec1"})
	if err == nil {
		t.Fatal("Expected forbidden error")
	}
	if contact != (models.Contact{}) {
		t.Errorf("Expected empty contact on error, got %+v", contact)
	}
}

func TestUpdateContactClearsNotes(t *testing.T) {
	h := newTestHandlers(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			fmt.Fprint(w, `{"id":"rec1","fields":{"Name":"Jane","Owner Email":"a@x.com"}}`)
			return
		}
		fmt.Fprint(w, `{"id":"rec1","fields":{"Name":"Jane","Owner Email":"a@x.com","Notes":"old"}}`)
	})

	_, contact, err := h.UpdateContact(context.Background(), nil, UpdateContactInput{ID: "rec1", Notes: ""})
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}
	if contact.Notes != "" {
		t.Errorf("Expected cleared notes, got %q", contact.Notes)
	}
}
