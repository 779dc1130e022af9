package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/studydesk/internal/cli/formatter"
	"github.com/alexanderramin/studydesk/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import events from external calendars",
	}
	cmd.AddCommand(newImportICSCmd(app))
	return cmd
}

func newImportICSCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ics NAME FILE_OR_URL",
		Short: "Import an iCalendar file or feed, replacing its previous import",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Imports == nil {
				return errNoImports
			}
			name, src := args[0], args[1]

			var result *service.ImportResult
			var err error
			if isURL(src) {
				result, err = app.Imports.ImportFeed(cmd.Context(), name, feedURL(src))
			} else {
				result, err = app.Imports.ImportFile(cmd.Context(), name, src)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportSummary(importSummary(result)))
			return nil
		},
	}
}

func newSyncCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh the feeds listed in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Imports == nil {
				return errNoImports
			}
			if app.Config == nil || len(app.Config.Feeds) == 0 {
				return errors.New("no feeds configured")
			}

			out := cmd.OutOrStdout()
			if !watch {
				return syncFeeds(cmd.Context(), app, out)
			}
			return watchFeeds(cmd.Context(), app, out)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and sync on the configured cron schedule")

	return cmd
}

func newFeedsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "feeds",
		Short: "Show the sync status of imported calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Imports == nil {
				return errNoImports
			}
			states, err := app.Imports.FeedStates(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeedStates(states, app.localNow()))
			return nil
		},
	}
}

// syncFeeds imports every configured feed once. A failing feed does not
// stop the others.
func syncFeeds(ctx context.Context, app *App, out io.Writer) error {
	var errs []error
	for _, f := range app.Config.Feeds {
		result, err := app.Imports.ImportFeed(ctx, f.Name, f.URL)
		if err != nil {
			fmt.Fprintln(out, formatter.StyleRed.Render(fmt.Sprintf("%s: %v", f.Name, err)))
			errs = append(errs, fmt.Errorf("feed %s: %w", f.Name, err))
			continue
		}
		fmt.Fprint(out, formatter.FormatImportSummary(importSummary(result)))
	}
	return errors.Join(errs...)
}

// watchFeeds syncs immediately, then on every tick of the cron schedule
// until ctx is cancelled.
func watchFeeds(ctx context.Context, app *App, out io.Writer) error {
	logger := app.logger().Named("sync")
	c := cron.New(
		cron.WithLocation(app.location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	run := func() {
		if err := syncFeeds(ctx, app, out); err != nil {
			logger.Warn("feed sync finished with errors", zap.Error(err))
		}
	}
	if _, err := c.AddFunc(app.Config.SyncSchedule, run); err != nil {
		return fmt.Errorf("sync schedule %q: %w", app.Config.SyncSchedule, err)
	}

	run()
	c.Start()
	logger.Info("watching feeds", zap.String("schedule", app.Config.SyncSchedule), zap.Int("feeds", len(app.Config.Feeds)))
	fmt.Fprintln(out, formatter.Dim("Watching feeds on schedule "+app.Config.SyncSchedule+". Press Ctrl+C to stop."))

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func importSummary(r *service.ImportResult) formatter.ImportSummary {
	return formatter.ImportSummary{
		Feed:        r.Feed,
		Added:       r.Added,
		Removed:     r.Removed,
		Skipped:     r.Skipped,
		NotModified: r.NotModified,
	}
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "webcal://")
}

// feedURL rewrites webcal:// subscription links to https.
func feedURL(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "webcal://") {
		return "https://" + s[len("webcal://"):]
	}
	return s
}
