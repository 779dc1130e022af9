package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/studydesk/internal/db"
	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/ics"
	"github.com/alexanderramin/studydesk/internal/repository"
	"github.com/google/uuid"
)

// importColorID tags events that came from an external calendar.
const importColorID = "7"

// importNamespace seeds the name-based UUIDs of imported occurrences so
// that re-importing a feed yields the same ids.
var importNamespace = uuid.MustParse("6f1c7f0e-2f55-4f3b-9d7e-1a3c5b2d8e40")

// ImportWindow is the expansion range around now.
type ImportWindow struct {
	Past   time.Duration
	Future time.Duration
}

// DefaultImportWindow expands from one day back to thirty days ahead.
var DefaultImportWindow = ImportWindow{Past: 24 * time.Hour, Future: 30 * 24 * time.Hour}

type importService struct {
	database db.DBTX
	uow      db.UnitOfWork
	fetcher  FeedFetcher
	now      func() time.Time
	window   ImportWindow
	observer UseCaseObserver
}

// NewImportService creates an ImportService. Reads go through database;
// every replacement runs inside uow.
func NewImportService(
	database db.DBTX,
	uow db.UnitOfWork,
	fetcher FeedFetcher,
	now func() time.Time,
	observers ...UseCaseObserver,
) ImportService {
	if now == nil {
		now = time.Now
	}
	return &importService{
		database: database,
		uow:      uow,
		fetcher:  fetcher,
		now:      now,
		window:   DefaultImportWindow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFeed(ctx context.Context, name, url string) (result *ImportResult, err error) {
	fields := map[string]any{"feed": name}
	defer observe(ctx, s.observer, "import-feed", time.Now(), fields, &err)

	if err = validateFeedName(name); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, errors.New("no feed fetcher configured")
	}

	feeds := repository.NewSQLiteFeedStateRepo(s.database)
	prev, err := feeds.Get(ctx, name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading feed state: %w", err)
	}
	err = nil

	var validators ics.Validators
	if prev != nil && prev.URL == url {
		validators = ics.Validators{ETag: prev.ETag, LastModified: prev.LastModified}
	}

	fetched, ferr := s.fetcher.Fetch(ctx, url, validators)
	if errors.Is(ferr, ics.ErrNotModified) && prev != nil && len(prev.Body) > 0 {
		// The stored document is re-expanded so the window follows the clock.
		result, err = s.replace(ctx, name, prev.URL, prev.Body, validators)
		if err != nil {
			s.recordFailure(ctx, name, url, prev, err)
			return nil, err
		}
		result.NotModified = true
		fields["not_modified"] = true
		fields["added"] = result.Added
		fields["removed"] = result.Removed
		return result, nil
	}
	if errors.Is(ferr, ics.ErrNotModified) && prev != nil {
		state := *prev
		syncedAt := s.now()
		state.SyncedAt = &syncedAt
		state.LastError = ""
		if err = feeds.Upsert(ctx, &state); err != nil {
			return nil, fmt.Errorf("saving feed state: %w", err)
		}
		fields["not_modified"] = true
		return &ImportResult{Feed: name, Source: domain.SourceICS(name), NotModified: true}, nil
	}
	if ferr != nil {
		s.recordFailure(ctx, name, url, prev, ferr)
		return nil, ferr
	}

	result, err = s.replace(ctx, name, url, fetched.Body, ics.Validators{ETag: fetched.ETag, LastModified: fetched.LastModified})
	if err != nil {
		s.recordFailure(ctx, name, url, prev, err)
		return nil, err
	}
	fields["added"] = result.Added
	fields["removed"] = result.Removed
	return result, nil
}

func (s *importService) ImportFile(ctx context.Context, name, path string) (result *ImportResult, err error) {
	fields := map[string]any{"feed": name}
	defer observe(ctx, s.observer, "import-file", time.Now(), fields, &err)

	if err = validateFeedName(name); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}
	if abs, aerr := filepath.Abs(path); aerr == nil {
		path = abs
	}

	result, err = s.replace(ctx, name, "file://"+path, body, ics.Validators{})
	if err != nil {
		return nil, err
	}
	fields["added"] = result.Added
	fields["removed"] = result.Removed
	return result, nil
}

func (s *importService) FeedStates(ctx context.Context) ([]*domain.FeedState, error) {
	return repository.NewSQLiteFeedStateRepo(s.database).List(ctx)
}

// replace swaps every event of the feed's source for the freshly expanded
// occurrences and records the feed state, all in one transaction.
func (s *importService) replace(ctx context.Context, name, url string, body []byte, validators ics.Validators) (*ImportResult, error) {
	source := domain.SourceICS(name)
	parsed, skipped, err := ics.Parse(string(source), body)
	if err != nil {
		return nil, err
	}

	now := s.now()
	occurrences := ics.Expand(parsed, now.Add(-s.window.Past), now.Add(s.window.Future))
	events := make([]*domain.CalendarEvent, 0, len(occurrences))
	seen := make(map[string]bool, len(occurrences))
	for _, occ := range occurrences {
		e := occurrenceEvent(source, occ, now)
		if e.Validate() != nil || seen[e.ID] {
			skipped++
			continue
		}
		seen[e.ID] = true
		events = append(events, e)
	}

	result := &ImportResult{Feed: name, Source: source, Added: len(events), Skipped: skipped}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEvents := repository.NewSQLiteEventRepo(tx)
		txFeeds := repository.NewSQLiteFeedStateRepo(tx)

		removed, err := txEvents.DeleteBySource(ctx, source)
		if err != nil {
			return fmt.Errorf("clearing %s: %w", source, err)
		}
		result.Removed = removed

		for _, e := range events {
			if err := txEvents.Create(ctx, e); err != nil {
				return fmt.Errorf("creating event %q: %w", e.Title, err)
			}
		}

		return txFeeds.Upsert(ctx, &domain.FeedState{
			Name:         name,
			URL:          url,
			ETag:         validators.ETag,
			LastModified: validators.LastModified,
			SyncedAt:     &now,
			EventCount:   len(events),
			Body:         body,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recordFailure keeps the previous validators so the next sync can still
// send a conditional request.
func (s *importService) recordFailure(ctx context.Context, name, url string, prev *domain.FeedState, cause error) {
	state := domain.FeedState{Name: name, URL: url}
	if prev != nil {
		state = *prev
		state.URL = url
	}
	state.LastError = cause.Error()
	_ = repository.NewSQLiteFeedStateRepo(s.database).Upsert(ctx, &state)
}

func occurrenceEvent(source domain.EventSource, occ ics.Occurrence, now time.Time) *domain.CalendarEvent {
	key := string(source) + "|" + occ.UID + "|" + occ.Start.UTC().Format(time.RFC3339)

	title := domain.CoalesceStr(occ.Summary, "(untitled)")
	desc := strings.TrimSpace(occ.Description)
	if loc := strings.TrimSpace(occ.Location); loc != "" {
		if desc != "" {
			desc += "\n"
		}
		desc += "Location: " + loc
	}

	return &domain.CalendarEvent{
		ID:          uuid.NewSHA1(importNamespace, []byte(key)).String(),
		Title:       title,
		Description: desc,
		Start:       occ.Start,
		End:         occ.End,
		ColorID:     importColorID,
		Source:      source,
		CreatedAt:   now,
	}
}

func validateFeedName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("feed name is required")
	}
	if strings.ContainsAny(name, " \t:/") {
		return fmt.Errorf("feed name %q must not contain spaces, colons or slashes", name)
	}
	return nil
}
