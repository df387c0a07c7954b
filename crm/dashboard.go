// ABOUTME: Dashboard statistics computed from the caller's slice of the base
// ABOUTME: Counts contacts by status, recent activities, and follow-ups due
package crm

import (
	"context"
	"time"

	"github.com/harperreed/tably/airtable"
	"github.com/harperreed/tably/models"
)

// DashboardStats drains the caller's contacts and activities and summarizes
// them for the dashboard view. Everything is computed in memory per request;
// the remote store is the only state.
func (s *Service) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	contacts, err := s.ListContacts(ctx, "")
	if err != nil {
		return nil, err
	}

	activities, err := s.store.ListAll(ctx, airtable.TableActivities, ownerFormula(s.owner), nil)
	if err != nil {
		return nil, err
	}

	companies, err := s.store.ListAll(ctx, airtable.TableCompanies, "", nil)
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{
		TotalContacts:    len(contacts),
		ContactsByStatus: make(map[string]int),
		TotalCompanies:   len(companies),
	}
	for i := range contacts {
		status := contacts[i].Status
		if status == "" {
			status = models.StatusNew
		}
		stats.ContactsByStatus[status]++
	}

	today := startOfDay(time.Now())
	weekAgo := today.AddDate(0, 0, -7)
	weekAhead := today.AddDate(0, 0, 7)

	for i := range activities {
		a := activityFromRecord(&activities[i])

		if a.Date != "" {
			if t, err := time.Parse("2006-01-02", a.Date); err == nil {
				if !t.Before(weekAgo) && !t.After(today) {
					stats.ActivitiesLast7d++
				}
			}
		}

		if a.NextFollowUp != "" {
			if t, err := time.Parse("2006-01-02", a.NextFollowUp); err == nil {
				switch {
				case t.Before(today):
					stats.OverdueFollowups++
				case !t.After(weekAhead):
					stats.FollowupsNext7d++
				}
			}
		}
	}

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
