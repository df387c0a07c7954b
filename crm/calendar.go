// ABOUTME: Calendar events derived from activity dates and follow-up dates
// ABOUTME: Serves the calendar view over the caller's owned activities
package crm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/models"
)

// CalendarEvents returns the caller's activities and follow-ups falling in
// the inclusive [from, to] date range, sorted ascending by date. Either bound
// may be passed in any spelling NormalizeDate accepts; absent bounds default
// to 30 days back and 60 days ahead of today.
func (s *Service) CalendarEvents(ctx context.Context, from, to string) ([]models.CalendarEvent, error) {
	today := startOfDay(time.Now())

	fromT := today.AddDate(0, 0, -30)
	if norm, ok := airtable.NormalizeDate(from); ok {
		if t, err := time.Parse("2006-01-02", norm); err == nil {
			fromT = t
		}
	}
	toT := today.AddDate(0, 0, 60)
	if norm, ok := airtable.NormalizeDate(to); ok {
		if t, err := time.Parse("2006-01-02", norm); err == nil {
			toT = t
		}
	}
	if toT.Before(fromT) {
		return nil, &BadRequestError{Reason: "calendar range end precedes start"}
	}

	records, err := s.store.ListAll(ctx, airtable.TableActivities, ownerFormula(s.owner), nil)
	if err != nil {
		return nil, err
	}

	inRange := func(date string) bool {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return false
		}
		return !t.Before(fromT) && !t.After(toT)
	}

	var out []models.CalendarEvent
	for i := range records {
		a := activityFromRecord(&records[i])

		if a.Date != "" && inRange(a.Date) {
			out = append(out, models.CalendarEvent{
				ID:          a.ID,
				Title:       eventTitle(a.Type, a.ContactName),
				Date:        a.Date,
				ContactID:   a.ContactID,
				ContactName: a.ContactName,
				Kind:        models.EventKindActivity,
			})
		}

		if a.NextFollowUp != "" && inRange(a.NextFollowUp) {
			out = append(out, models.CalendarEvent{
				ID:          a.ID,
				Title:       eventTitle("Follow up", a.ContactName),
				Date:        a.NextFollowUp,
				ContactID:   a.ContactID,
				ContactName: a.ContactName,
				Kind:        models.EventKindFollowup,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func eventTitle(kind, contactName string) string {
	if contactName == "" {
		return kind
	}
	return fmt.Sprintf("%s: %s", kind, contactName)
}
