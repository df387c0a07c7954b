// ABOUTME: Tests for the calendar event projection
// ABOUTME: Covers range filtering, follow-up events, and ascending order
package crm

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarEventsWithinRange(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		writeRecords(w,
			activityRecord("act1", "Call", "2025-03-10", []any{"rec1"}),
			activityRecord("act2", "Meeting", "2025-03-01", []any{"rec1"}),
			activityRecord("actOut", "Call", "2024-01-01", []any{"rec1"}),
		)
	})

	events, err := svc.CalendarEvents(context.Background(), "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "2025-03-01", events[0].Date)
	assert.Equal(t, "2025-03-10", events[1].Date)
}

func TestCalendarEventsEmitFollowups(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		rec := activityRecord("act1", "Call", "2025-03-10", []any{"rec1"})
		rec.Fields["Next Follow-up Date"] = "2025-03-20"
		rec.Fields["Contact Name"] = "Jane"
		writeRecords(w, rec)
	})

	events, err := svc.CalendarEvents(context.Background(), "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, events, 2, "one activity event plus one follow-up event")

	assert.Equal(t, "Call: Jane", events[0].Title)
	assert.Equal(t, "Follow up: Jane", events[1].Title)
	assert.Equal(t, "2025-03-20", events[1].Date)
}

func TestCalendarEventsRejectsInvertedRange(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no remote call expected")
	})

	_, err := svc.CalendarEvents(context.Background(), "2025-03-31", "2025-03-01")
	var badReq *BadRequestError
	require.ErrorAs(t, err, &badReq)
}

func TestCalendarEventsAcceptsLooseDateBounds(t *testing.T) {
	svc := newTestService(t, "a@x.com", func(w http.ResponseWriter, r *http.Request) {
		writeRecords(w, activityRecord("act1", "Call", "2025-03-10", []any{"rec1"}))
	})

	events, err := svc.CalendarEvents(context.Background(), "01/03/2025", "31/03/2025")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
