// ABOUTME: Contact reads and updates scoped to the caller's owned records
// ABOUTME: Maps remote records to Contact models across field-name spellings
package crm

import (
	"context"
	"strings"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/models"
)

func contactFromRecord(rec *airtable.Record) *models.Contact {
	f := rec.Fields
	c := &models.Contact{
		ID:          rec.ID,
		Name:        stringField(f, "Name", "Full Name"),
		Email:       stringField(f, "Email", "Correo", "Email Address"),
		Phone:       stringField(f, "Phone", "Telefono", "Teléfono", "Phone Number"),
		Position:    stringField(f, "Position", "Cargo", "Job Title"),
		Status:      stringField(f, "Status", "Estado", "Lead Status"),
		LinkedInURL: stringField(f, "LinkedIn URL", "LinkedIn", "Linkedin"),
		Notes:       stringField(f, "Notes", "Notas", "Observaciones", "Comments"),
		CompanyName: stringField(f, "Company Name"),
		OwnerEmail:  ownerEmailOf(f),
	}
	if links := linkField(f, "Company", "Related Company"); len(links) > 0 {
		c.CompanyID = links[0]
	}
	return c
}

// GetContact fetches a contact by identifier and rejects it unless the
// caller owns it.
func (s *Service) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	if id == "" {
		return nil, &BadRequestError{Reason: "contact id is required"}
	}

	rec, err := s.store.Get(ctx, airtable.TableContacts, id)
	if err != nil {
		return nil, err
	}
	if !s.ownsFields(rec.Fields) {
		return nil, ErrForbidden
	}

	return contactFromRecord(rec), nil
}

// ListContacts drains the caller's contacts. The optional query narrows the
// result by name or email substring; that match runs in memory because the
// remote filter predicate cannot express it reliably.
func (s *Service) ListContacts(ctx context.Context, query string) ([]models.Contact, error) {
	records, err := s.store.ListAll(ctx, airtable.TableContacts, ownerFormula(s.owner), nil)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Contact
	for i := range records {
		c := contactFromRecord(&records[i])
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

// ContactUpdate carries the writable contact fields. Notes is always sent,
// even when empty: omitting the key used to leave stale notes on the remote
// side, so callers clear notes by passing an explicit empty string.
type ContactUpdate struct {
	Name        string
	Email       string
	Phone       string
	Position    string
	Status      string
	LinkedInURL string
	Notes       string
}

// UpdateContact patches a contact through the fallback writer after checking
// ownership. Empty fields other than Notes are left untouched on the record.
func (s *Service) UpdateContact(ctx context.Context, id string, upd ContactUpdate) (*models.Contact, error) {
	if _, err := s.GetContact(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"Notes": upd.Notes,
	}
	if upd.Name != "" {
		fields["Name"] = upd.Name
	}
	if upd.Email != "" {
		fields["Email"] = upd.Email
	}
	if upd.Phone != "" {
		fields["Phone"] = upd.Phone
	}
	if upd.Position != "" {
		fields["Position"] = upd.Position
	}
	if upd.Status != "" {
		fields["Status"] = upd.Status
	}
	if upd.LinkedInURL != "" {
		fields["LinkedIn URL"] = upd.LinkedInURL
	}

	rec, err := s.store.UpdateWithFallback(ctx, airtable.TableContacts, id, fields)
	if err != nil {
		return nil, err
	}
	return contactFromRecord(rec), nil
}
