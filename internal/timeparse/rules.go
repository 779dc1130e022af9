package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockPattern     = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	bareClockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	weekdayPattern   = regexp.MustCompile(`^(?:(next|this|on)\s+)?([a-z]+)\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	monthDayPattern  = regexp.MustCompile(`([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// literalLayouts are tried in order against the trimmed, case-preserved input.
var literalLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006 3:04 PM",
	"01/02/2006 3:04 pm",
	"01/02/2006",
	"January 2, 2006 15:04",
	"January 2, 2006 3:04 PM",
	"January 2, 2006 3:04 pm",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 3:04 pm",
	"Jan 2 2006 15:04",
	"Mon Jan 2 2006 15:04:05",
}

// ParseLocal applies the local pattern rules to input. It returns false when
// no rule produced a moment at or after now.
func ParseLocal(input string, now time.Time) (time.Time, Source, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return time.Time{}, "", false
	}

	// "today" and "tomorrow" decide the local outcome on their own.
	if strings.Contains(lower, "today") {
		at, ok := clockOnDay(lower, now, now)
		return at, SourceToday, ok
	}
	if strings.Contains(lower, "tomorrow") {
		at, ok := clockOnDay(lower, now.AddDate(0, 0, 1), now)
		return at, SourceTomorrow, ok
	}

	if bareClockPattern.MatchString(lower) {
		at, ok := clockOnDay(lower, now, now)
		return at, SourceClock, ok
	}

	if at, ok := parseWeekday(lower, now); ok {
		return at, SourceWeekday, true
	}

	if at, ok := parseMonthDay(lower, now); ok {
		return at, SourceMonthDay, true
	}

	if at, ok := parseLiteral(strings.TrimSpace(input), now); ok {
		return at, SourceLiteral, true
	}

	return time.Time{}, "", false
}

// clockOnDay finds the first clock token in s and applies it to day.
func clockOnDay(s string, day, now time.Time) (time.Time, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	hour, minute, ok := clock(m[1], m[2], m[3])
	if !ok {
		return time.Time{}, false
	}
	return notBefore(atClock(day, hour, minute), now)
}

func parseWeekday(s string, now time.Time) (time.Time, bool) {
	m := weekdayPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	wd, ok := weekdays[m[2]]
	if !ok {
		return time.Time{}, false
	}
	hour, minute, ok := clock(m[3], m[4], m[5])
	if !ok {
		return time.Time{}, false
	}

	days := (int(wd) - int(now.Weekday()) + 7) % 7
	if m[1] == "next" && days == 0 {
		days = 7
	}
	at := atClock(now.AddDate(0, 0, days), hour, minute)
	if at.Before(now) {
		at = atClock(now.AddDate(0, 0, days+7), hour, minute)
	}
	return at, true
}

func parseMonthDay(s string, now time.Time) (time.Time, bool) {
	m := monthDayPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := months[m[1]]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 {
		return time.Time{}, false
	}
	hour, minute, ok := clock(m[3], m[4], m[5])
	if !ok {
		return time.Time{}, false
	}

	at := time.Date(now.Year(), month, day, hour, minute, 0, 0, now.Location())
	// time.Date normalizes Feb 30 into March; treat that as no match.
	if at.Month() != month || at.Day() != day {
		return time.Time{}, false
	}
	return notBefore(at, now)
}

func parseLiteral(s string, now time.Time) (time.Time, bool) {
	for _, layout := range literalLayouts {
		at, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		return notBefore(at, now)
	}
	return time.Time{}, false
}

// clock converts 12-hour clock parts to a 24-hour hour and minute.
// 12am is midnight and 12pm is noon.
func clock(hourStr, minuteStr, meridiem string) (int, int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, false
	}
	minute := 0
	if minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil || minute > 59 {
			return 0, 0, false
		}
	}
	hour %= 12
	if meridiem == "pm" {
		hour += 12
	}
	return hour, minute, true
}

func atClock(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// notBefore rejects moments strictly earlier than now.
func notBefore(at, now time.Time) (time.Time, bool) {
	if at.Before(now) {
		return time.Time{}, false
	}
	return at, true
}
