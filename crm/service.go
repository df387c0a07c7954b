// ABOUTME: Owner-scoped service layer over the remote tabular store
// ABOUTME: Shared record helpers, email normalization, and owner filter formulas
package crm

import (
	"fmt"
	"strings"

	"github.com/harperreed/tably/airtable"
)

// ownerFieldNames are the spellings the owner attribute appears under,
// checked in order. Bases written through older import paths use the second.
var ownerFieldNames = []string{"Owner Email", "Responsible Email"}

// Service runs every read and write on behalf of exactly one caller. It is
// request-scoped: build one per request, no state survives it.
type Service struct {
	store *airtable.Client
	owner string
}

// NewService wraps the remote store client with the caller's owner scope.
// The owner email is normalized here so every comparison downstream is
// against the same spelling.
func NewService(store *airtable.Client, ownerEmail string) *Service {
	return &Service{
		store: store,
		owner: NormalizeEmail(ownerEmail),
	}
}

// Owner returns the normalized email this service is scoped to.
func (s *Service) Owner() string {
	return s.owner
}

// NormalizeEmail converts an email to its canonical comparison form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ownerFormula builds the remote filter predicate selecting the caller's
// records. The remote formula language only does exact matches here;
// anything richer is filtered in memory after draining.
func ownerFormula(owner string) string {
	esc := strings.ReplaceAll(owner, "'", "\\'")
	return fmt.Sprintf("OR(LOWER({Owner Email})='%s',LOWER({Responsible Email})='%s')", esc, esc)
}

// ownerEmailOf reads the owner attribute with its spelling fallbacks.
func ownerEmailOf(fields map[string]any) string {
	return stringField(fields, ownerFieldNames...)
}

// ownsFields checks the record's owner attribute against the caller,
// case-insensitively on trimmed values.
func (s *Service) ownsFields(fields map[string]any) bool {
	return strings.EqualFold(strings.TrimSpace(ownerEmailOf(fields)), s.owner)
}

// stringField returns the first non-empty string value among the candidate
// field names.
func stringField(fields map[string]any, names ...string) string {
	for _, n := range names {
		if s, ok := fields[n].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// linkField reads a link column as a list of record identifiers. Link columns
// decode as []any of strings when the record was written through the API.
func linkField(fields map[string]any, names ...string) []string {
	for _, n := range names {
		raw, ok := fields[n].([]any)
		if !ok {
			continue
		}
		var ids []string
		for _, v := range raw {
			if s, ok := v.(string); ok {
				ids = append(ids, s)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	return nil
}
