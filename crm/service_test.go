// ABOUTME: Shared test harness for the owner-scoped service layer
// ABOUTME: Runs a fake remote store over httptest and covers the shared helpers
package crm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/tably/airtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService wires a Service for the given owner against a fake remote
// store served by handler.
func newTestService(t *testing.T, owner string, handler http.HandlerFunc) *Service {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := airtable.NewClient(airtable.Config{
		BaseID:  "appTEST",
		Token:   "key-test",
		BaseURL: ts.URL,
	})
	require.NoError(t, err)
	return NewService(client, owner)
}

func writeRecord(w http.ResponseWriter, rec airtable.Record) {
	_ = json.NewEncoder(w).Encode(rec)
}

func writeRecords(w http.ResponseWriter, recs ...airtable.Record) {
	if recs == nil {
		recs = []airtable.Record{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"records": recs})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestOwnerEmailOfFallsBack(t *testing.T) {
	assert.Equal(t, "a@x.com", ownerEmailOf(map[string]any{"Owner Email": "a@x.com"}))
	assert.Equal(t, "b@x.com", ownerEmailOf(map[string]any{"Responsible Email": "b@x.com"}))
	assert.Equal(t, "a@x.com", ownerEmailOf(map[string]any{
		"Owner Email":       "a@x.com",
		"Responsible Email": "b@x.com",
	}), "Owner Email wins when both are present")
	assert.Empty(t, ownerEmailOf(map[string]any{"Name": "no owner"}))
}

func TestOwnerFormulaEscapesQuotes(t *testing.T) {
	f := ownerFormula("o'brien@x.com")
	assert.Contains(t, f, `\'brien`)
	assert.NotContains(t, f, "o'brien@x.com'='")
}

func TestLinkFieldDecoding(t *testing.T) {
	fields := map[string]any{
		"Related Contact": []any{"rec1", "rec2"},
	}
	assert.Equal(t, []string{"rec1", "rec2"}, linkField(fields, "Related Contact"))
	assert.Nil(t, linkField(fields, "Related Company"))
	assert.Nil(t, linkField(map[string]any{"Related Contact": "rec1"}, "Related Contact"))
}
