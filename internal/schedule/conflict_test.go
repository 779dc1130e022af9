package schedule

import (
	"testing"
	"time"

	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(hour, minute int) time.Time {
	return time.Date(2025, 6, 16, hour, minute, 0, 0, time.UTC)
}

func event(title string, start, end time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{ID: title, Title: title, Start: start, End: end}
}

func TestHasConflict(t *testing.T) {
	existing := []domain.CalendarEvent{event("Math", clockAt(10, 0), clockAt(12, 0))}

	cases := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"starts inside", clockAt(11, 0), 60, true},
		{"ends inside", clockAt(9, 30), 60, true},
		{"contains existing", clockAt(9, 0), 180, true},
		{"contained by existing", clockAt(10, 30), 30, true},
		{"same interval", clockAt(10, 0), 120, true},
		{"adjacent after", clockAt(12, 0), 30, false},
		{"adjacent before", clockAt(9, 0), 60, false},
		{"disjoint", clockAt(14, 0), 60, false},
		{"default duration", clockAt(9, 30), 0, true},
		{"negative duration uses default", clockAt(9, 0), -5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasConflict(tc.start, existing, tc.duration))
		})
	}
}

func TestHasConflict_NoEvents(t *testing.T) {
	assert.False(t, HasConflict(clockAt(10, 0), nil, 60))
}

func TestHasConflict_AnyEventMatches(t *testing.T) {
	existing := []domain.CalendarEvent{
		event("Math", clockAt(10, 0), clockAt(12, 0)),
		event("Physics", clockAt(14, 0), clockAt(15, 30)),
	}
	assert.True(t, HasConflict(clockAt(15, 0), existing, 60))
	assert.False(t, HasConflict(clockAt(12, 0), existing, 120))
}

func TestConflicts_ReturnsEveryOverlap(t *testing.T) {
	existing := []domain.CalendarEvent{
		event("Math", clockAt(10, 0), clockAt(12, 0)),
		event("Physics", clockAt(14, 0), clockAt(15, 30)),
		event("Chem", clockAt(18, 0), clockAt(19, 0)),
	}

	got := Conflicts(clockAt(11, 0), existing, 240)

	require.Len(t, got, 2)
	assert.Equal(t, "Math", got[0].Title)
	assert.Equal(t, "Physics", got[1].Title)
}
