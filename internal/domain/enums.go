package domain

// EventSource identifies where a calendar event came from.
type EventSource string

const (
	SourceLocal  EventSource = "local"
	SourceSample EventSource = "sample"
)

// SourceICS returns the source tag for events imported from a named feed.
func SourceICS(feed string) EventSource {
	return EventSource("ics:" + feed)
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Event categories offered by the scheduling workflow. The category is
// stored verbatim, so other values are allowed.
const (
	CategoryStudySession = "Study Session"
	CategoryMeeting      = "Meeting"
	CategoryBreak        = "Break"
	CategoryOther        = "Other"
)

// DefaultColorID is the color tag given to events created by the assistant.
const DefaultColorID = "1"

// DefaultDurationMinutes applies when a draft or request has no duration.
const DefaultDurationMinutes = 60
