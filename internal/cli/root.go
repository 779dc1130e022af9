package cli

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/studydesk/internal/assistant"
	"github.com/alexanderramin/studydesk/internal/config"
	"github.com/alexanderramin/studydesk/internal/domain"
	"github.com/alexanderramin/studydesk/internal/service"
	"github.com/alexanderramin/studydesk/internal/timeparse"
	"github.com/alexanderramin/studydesk/internal/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errNoImports is returned by feed commands when the app runs on sample data.
var errNoImports = errors.New("calendar import needs data_mode local")

// App holds the services and settings shared by CLI commands.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Events    service.EventService
	Imports   service.ImportService
	Parser    *timeparse.Parser
	Completer *assistant.Completer
	Workflows *workflow.Registry
	Now       func() time.Time

	// In feeds the chat shell. Nil means os.Stdin.
	In io.Reader
	// Interactive enables the option picker and spinners. main sets it
	// when stdin and stdout are terminals.
	Interactive bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// location is where times are shown and phrases resolved.
func (a *App) location() *time.Location {
	if a.Config != nil {
		if loc, err := a.Config.Location(); err == nil {
			return loc
		}
	}
	return time.Local
}

func (a *App) localNow() time.Time {
	return a.now().In(a.location())
}

func (a *App) input() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

func (a *App) defaultMinutes() int {
	if a.Config != nil && a.Config.DefaultDurationMinutes > 0 {
		return a.Config.DefaultDurationMinutes
	}
	return domain.DefaultDurationMinutes
}

// NewRootCmd creates the top-level "studydesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studydesk",
		Short:         "Study calendar with a conversational scheduling assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAssistantCmd(app),
		newEventCmd(app),
		newParseTimeCmd(app),
		newTipsCmd(app),
		newImportCmd(app),
		newSyncCmd(app),
		newFeedsCmd(app),
	)

	return root
}
