package domain

import "time"

// FeedState records the last sync of a subscribed iCalendar feed.
type FeedState struct {
	Name         string
	URL          string
	ETag         string
	LastModified string
	SyncedAt     *time.Time
	EventCount   int
	LastError    string
	Body         []byte // last fetched document, re-expanded on 304
}
