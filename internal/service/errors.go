package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studydesk/internal/domain"
)

// ErrConflict is matched by ConflictError.
var ErrConflict = errors.New("event conflicts with existing events")

// ConflictError lists the events a candidate overlaps.
type ConflictError struct {
	Conflicts []domain.CalendarEvent
}

func (e *ConflictError) Error() string {
	titles := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		titles = append(titles, fmt.Sprintf("%q", c.Title))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, strings.Join(titles, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
