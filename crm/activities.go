// ABOUTME: Activity creation and listing scoped to the caller's owned records
// ABOUTME: Carries the three-tier contact relation match and descending date sort
package crm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/models"
)

func activityFromRecord(rec *airtable.Record) *models.Activity {
	f := rec.Fields
	a := &models.Activity{
		ID:          rec.ID,
		Type:        stringField(f, "Outcome", "Activity Type"),
		Notes:       stringField(f, "Notes", "Notas", "Observaciones", "Comments"),
		ContactName: stringField(f, "Contact Name"),
		OwnerEmail:  ownerEmailOf(f),
	}
	if d, ok := airtable.NormalizeDate(stringField(f, "Activity Date", "Date")); ok {
		a.Date = d
	}
	if d, ok := airtable.NormalizeDate(stringField(f, "Next Follow-up Date", "Next Follow Up", "Follow-up Date")); ok {
		a.NextFollowUp = d
	}
	if links := linkField(f, "Related Contact"); len(links) > 0 {
		a.ContactID = links[0]
	}
	if links := linkField(f, "Related Company"); len(links) > 0 {
		a.CompanyID = links[0]
	}
	return a
}

// ActivityInput is the caller-facing shape of a new activity.
type ActivityInput struct {
	ContactID    string
	Type         string
	Notes        string
	NextFollowUp string
}

// CreateActivity writes a new activity linked to one of the caller's
// contacts, through the fallback writer. The contact's parent company is
// linked as well when the contact record resolves one. Notes is always sent,
// matching the contact update contract.
func (s *Service) CreateActivity(ctx context.Context, in ActivityInput) (*models.Activity, error) {
	if in.ContactID == "" {
		return nil, &BadRequestError{Reason: "contact id is required"}
	}
	if in.Type == "" {
		return nil, &BadRequestError{Reason: "activity type is required"}
	}

	contact, err := s.GetContact(ctx, in.ContactID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"Outcome":         in.Type,
		"Related Contact": []string{in.ContactID},
		"Activity Date":   time.Now().Format("2006-01-02"),
		"Owner Email":     s.owner,
		"Notes":           in.Notes,
	}
	if contact.CompanyID != "" {
		fields["Related Company"] = []string{contact.CompanyID}
	}
	if norm, ok := airtable.NormalizeDate(in.NextFollowUp); ok {
		fields["Next Follow-up Date"] = norm
	}

	rec, err := s.store.CreateWithFallback(ctx, airtable.TableActivities, fields)
	if err != nil {
		return nil, err
	}

	a := activityFromRecord(rec)
	if a.ContactName == "" {
		a.ContactName = contact.Name
	}
	return a, nil
}

// relatedToContact applies the three relation checks in OR order: identifier
// in the link array, identifier as a substring of the array's serialized
// form, then the contact's display name case-insensitively in that same
// form. The link column's serialization differs between bases written
// through the old import scripts, so the substring tiers stay even though
// they can over-match on short contact names.
func relatedToContact(rec *airtable.Record, contactID, contactName string) bool {
	raw, ok := rec.Fields["Related Contact"]
	if !ok || raw == nil {
		return false
	}

	if links, ok := raw.([]any); ok {
		for _, l := range links {
			if s, ok := l.(string); ok && s == contactID {
				return true
			}
		}
	}

	serialized := fmt.Sprintf("%v", raw)
	if strings.Contains(serialized, contactID) {
		return true
	}
	if contactName != "" && strings.Contains(strings.ToLower(serialized), strings.ToLower(contactName)) {
		return true
	}
	return false
}

// activitySortTime orders activities for display. Records with a missing or
// unparseable date sort as the oldest.
func activitySortTime(a *models.Activity) time.Time {
	if t, err := time.Parse("2006-01-02", a.Date); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// ListActivities drains the caller's activities and keeps the ones related
// to the given contact, newest first.
func (s *Service) ListActivities(ctx context.Context, contactID string) ([]models.Activity, error) {
	if contactID == "" {
		return nil, &BadRequestError{Reason: "contact id is required"}
	}

	contact, err := s.GetContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListAll(ctx, airtable.TableActivities, ownerFormula(s.owner), nil)
	if err != nil {
		return nil, err
	}

	var out []models.Activity
	for i := range records {
		if !relatedToContact(&records[i], contactID, contact.Name) {
			continue
		}
		a := activityFromRecord(&records[i])
		if a.ContactName == "" {
			a.ContactName = contact.Name
		}
		out = append(out, *a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return activitySortTime(&out[i]).After(activitySortTime(&out[j]))
	})
	return out, nil
}

// GetActivity fetches a single activity by identifier with the same owner
// check as contacts.
func (s *Service) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	if id == "" {
		return nil, &BadRequestError{Reason: "activity id is required"}
	}

	rec, err := s.store.Get(ctx, airtable.TableActivities, id)
	if err != nil {
		return nil, err
	}
	if !s.ownsFields(rec.Fields) {
		return nil, ErrForbidden
	}
	return activityFromRecord(rec), nil
}
