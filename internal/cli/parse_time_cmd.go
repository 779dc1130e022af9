package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studydesk/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newParseTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-time PHRASE...",
		Short: "Resolve a time phrase the way the assistant does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			now := app.localNow()
			parsed := app.Parser.Parse(cmd.Context(), input, now)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatParsedTime(input, parsed, now))
			if !parsed.OK() {
				return fmt.Errorf("unrecognized time phrase")
			}
			return nil
		},
	}
}
