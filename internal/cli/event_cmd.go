package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studydesk/internal/cli/formatter"
	"github.com/alexanderramin/studydesk/internal/service"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventRemoveCmd(app),
		newEventFreeCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var title, atFlag, category, description string
	var minutes int
	var force bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event at a time phrase such as \"tomorrow at 3 PM\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.localNow()

			parsed := app.Parser.Parse(ctx, atFlag, now)
			if !parsed.OK() {
				return fmt.Errorf("could not parse %q\n%s", atFlag, parsed.Reason)
			}

			if minutes <= 0 {
				minutes = app.defaultMinutes()
			}
			e, err := app.Events.Add(ctx, service.AddEventRequest{
				Title:           title,
				Category:        category,
				Description:     description,
				Start:           parsed.At,
				DurationMinutes: minutes,
				AllowConflict:   force,
			})
			var conflict *service.ConflictError
			if errors.As(err, &conflict) {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConflicts(conflict.Conflicts, now))
				return service.ErrConflict
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Added"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEvent(e, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&atFlag, "at", "", "When the event starts (e.g. \"2 PM today\")")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Duration in minutes (default from config)")
	cmd.Flags().StringVar(&category, "category", "", "Category (Study Session, Meeting, Break, Other)")
	cmd.Flags().StringVar(&description, "description", "", "Description; defaults to the category")
	cmd.Flags().BoolVar(&force, "force", false, "Add even if it overlaps existing events")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var days int
	var upcoming int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.localNow()

			if upcoming > 0 {
				events, err := app.Events.Upcoming(ctx, upcoming)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(events, now))
				return nil
			}

			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			from := startOfDay(now)
			events, err := app.Events.List(ctx, from, from.AddDate(0, 0, days))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(events, now))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to show, starting today")
	cmd.Flags().IntVar(&upcoming, "next", 0, "Show only the next N events that have not ended")

	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if !yes && app.Interactive {
				if !promptYesNoIO(app.input(), cmd.OutOrStdout(), fmt.Sprintf("Remove event %s? [y/N] ", id)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Events.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newEventFreeCmd(app *App) *cobra.Command {
	var days, minutes int

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Find free time for studying",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			if minutes <= 0 {
				minutes = app.defaultMinutes()
			}
			now := app.localNow()
			slots, err := app.Events.FreeSlots(cmd.Context(), now, startOfDay(now).AddDate(0, 0, days),
				time.Duration(minutes)*time.Minute)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSlots(slots, now))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "Number of days to search, starting today")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minimum slot length in minutes (default from config)")

	return cmd
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
