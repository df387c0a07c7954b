// ABOUTME: Company listing from the remote store
// ABOUTME: Companies are shared reference data, not owner-scoped
package crm

import (
	"context"
	"strings"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/models"
)

func companyFromRecord(rec *airtable.Record) *models.Company {
	f := rec.Fields
	return &models.Company{
		ID:       rec.ID,
		Name:     stringField(f, "Name", "Company Name"),
		Domain:   stringField(f, "Domain", "Website"),
		Industry: stringField(f, "Industry"),
		Notes:    stringField(f, "Notes", "Notas", "Observaciones", "Comments"),
	}
}

// ListCompanies drains the Companies table. Unlike contacts and activities,
// companies are visible to every authenticated caller.
func (s *Service) ListCompanies(ctx context.Context, query string) ([]models.Company, error) {
	records, err := s.store.ListAll(ctx, airtable.TableCompanies, "", nil)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Company
	for i := range records {
		c := companyFromRecord(&records[i])
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Domain), q) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}
