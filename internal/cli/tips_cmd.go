package cli

import (
	"fmt"

	"github.com/alexanderramin/studydesk/internal/cli/formatter"
	"github.com/alexanderramin/studydesk/internal/workflow"
	"github.com/spf13/cobra"
)

func newTipsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Print every study technique",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := workflow.NewManager(app.Workflows)
			menu, err := m.Start(workflow.StudyTipsID)
			if err != nil {
				return err
			}
			defer m.End()

			tips := make([]workflow.Tip, 0, len(menu.Options))
			for _, opt := range menu.Options {
				resp, err := m.ProcessInput(workflow.TextInput(opt))
				if err != nil {
					return err
				}
				tips = append(tips, workflow.Tip{Title: opt, Description: resp.Text})
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(menu.Text))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTips(tips))
			return nil
		},
	}
}
