package cli

import (
	"github.com/alexanderramin/studydesk/internal/assistant"
	"github.com/alexanderramin/studydesk/internal/service"
	"github.com/spf13/cobra"
)

func newAssistantCmd(app *App) *cobra.Command {
	var scopeFlag string
	var sample bool

	cmd := &cobra.Command{
		Use:     "assistant",
		Aliases: []string{"chat"},
		Short:   "Chat with the study assistant",
		Long: `Start an interactive chat. The assistant answers questions, schedules
events through a guided workflow and checks them against your calendar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := assistant.ParseScope(scopeFlag)
			if err != nil {
				return err
			}

			events := app.Events
			if sample {
				events = service.NewEventService(service.NewSampleEventRepo(app.localNow()), app.localNow)
			}

			session := assistant.NewSession(assistant.Deps{
				Registry:  app.Workflows,
				Completer: app.Completer,
				Parser:    app.Parser,
				Source:    events,
				Sink:      events,
				Logger:    app.logger(),
				Now:       app.localNow,
			})

			shell := newChatShell(session, scope, app.input(), cmd.OutOrStdout())
			if app.Interactive {
				shell.picker = huhPicker
				shell.spinner = true
			}
			return shell.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", string(assistant.ScopeDefault), "Conversation scope (/, /calendar, /tasks, /assistant)")
	cmd.Flags().BoolVar(&sample, "sample", false, "Use the built-in sample calendar instead of stored events")

	return cmd
}
