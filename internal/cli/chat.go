package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/studydesk/internal/assistant"
	"github.com/alexanderramin/studydesk/internal/cli/formatter"
	"github.com/alexanderramin/studydesk/internal/domain"
)

const chatPrompt = "you> "

// chatShell is the line-oriented front end of an assistant.Session.
type chatShell struct {
	session *assistant.Session
	scope   assistant.Scope
	in      *bufio.Reader
	out     io.Writer
	// picker is nil when input is not a terminal.
	picker  optionPicker
	spinner bool
	// shown counts transcript messages already printed.
	shown   int
}

func newChatShell(session *assistant.Session, scope assistant.Scope, in io.Reader, out io.Writer) *chatShell {
	return &chatShell{
		session: session,
		scope:   scope,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// run loops until /quit, EOF or ctx is cancelled.
func (c *chatShell) run(ctx context.Context) error {
	fmt.Fprintln(c.out, formatter.Dim("Type /help for commands, /quit to leave."))
	for {
		c.flush()
		if err := ctx.Err(); err != nil {
			return nil
		}

		if c.picker != nil {
			if choices := c.pendingChoices(); len(choices) > 0 {
				picked, err := c.picker(ctx, choices)
				if err != nil {
					return err
				}
				if picked != "" {
					c.report(c.withSpinner(func() error {
						_, err := c.session.HandleOption(ctx, picked)
						return err
					}))
					continue
				}
			}
		}

		fmt.Fprint(c.out, formatter.StyleBlue.Render(chatPrompt))
		line, err := c.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out)
				return nil
			}
			return err
		}

		if quit := c.handleLine(ctx, strings.TrimRight(line, "\r\n")); quit {
			return nil
		}
	}
}

// handleLine dispatches one typed line. It reports true when the shell
// should exit.
func (c *chatShell) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	switch {
	case line == "/quit" || line == "/exit":
		return true
	case line == "/help":
		fmt.Fprint(c.out, chatHelp())
	case line == "/actions":
		labels := make([]string, 0, len(assistant.QuickActions))
		for _, a := range assistant.QuickActions {
			labels = append(labels, a.Label)
		}
		fmt.Fprint(c.out, formatter.FormatQuickActions(labels))
	case line == "/state":
		c.printState()
	case line == "/end":
		if err := c.session.EndWorkflow(); err != nil {
			c.report(err)
		} else {
			fmt.Fprintln(c.out, formatter.Dim("Workflow ended."))
		}
	case strings.HasPrefix(line, "/a"):
		if n, ok := slashNumber(line[2:]); ok {
			c.runQuickAction(ctx, n)
			return false
		}
		c.report(fmt.Errorf("unknown command %s", line))
	case strings.HasPrefix(line, "/"):
		n, ok := slashNumber(line[1:])
		if !ok {
			c.report(fmt.Errorf("unknown command %s", line))
			return false
		}
		choices := c.pendingChoices()
		if n > len(choices) {
			c.report(fmt.Errorf("no choice %d", n))
			return false
		}
		c.report(c.withSpinner(func() error {
			_, err := c.session.HandleOption(ctx, choices[n-1])
			return err
		}))
	default:
		c.report(c.withSpinner(func() error {
			_, err := c.session.HandleInput(ctx, line, c.scope)
			return err
		}))
	}
	return false
}

func (c *chatShell) runQuickAction(ctx context.Context, n int) {
	if n < 1 || n > len(assistant.QuickActions) {
		c.report(fmt.Errorf("no quick action %d", n))
		return
	}
	label := assistant.QuickActions[n-1].Label
	c.report(c.withSpinner(func() error {
		_, err := c.session.QuickAction(ctx, label)
		return err
	}))
}

// flush prints transcript messages not yet shown. User turns are skipped
// because the terminal already echoed them.
func (c *chatShell) flush() {
	msgs := c.session.Messages()
	for _, m := range msgs[c.shown:] {
		if m.IsUser() {
			continue
		}
		fmt.Fprintln(c.out, formatter.FormatMessage(m))
	}
	c.shown = len(msgs)
}

// pendingChoices returns the choices of the latest message when it is an
// assistant reply.
func (c *chatShell) pendingChoices() []string {
	msgs := c.session.Messages()
	if len(msgs) == 0 {
		return nil
	}
	last := msgs[len(msgs)-1]
	if last.Role != domain.RoleAssistant {
		return nil
	}
	return formatter.Choices(last)
}

func (c *chatShell) printState() {
	state, ok := c.session.WorkflowState()
	if !ok {
		fmt.Fprintln(c.out, formatter.Dim("No active workflow."))
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", formatter.Bold("workflow:"), state.Workflow)
	fmt.Fprintf(&b, "%s %s\n", formatter.Bold("step:"), state.Step)
	d := state.Draft
	if d.Category != "" {
		fmt.Fprintf(&b, "%s %s\n", formatter.Bold("category:"), d.Category)
	}
	if d.Name != "" {
		fmt.Fprintf(&b, "%s %s\n", formatter.Bold("name:"), d.Name)
	}
	if d.DateTime != nil {
		fmt.Fprintf(&b, "%s %s\n", formatter.Bold("time:"), d.DateTime.Format("Mon Jan 2, 2006 3:04 PM"))
	}
	fmt.Fprint(c.out, b.String())
}

func (c *chatShell) withSpinner(fn func() error) error {
	if !c.spinner {
		return fn()
	}
	stop := formatter.StartSpinner(os.Stderr, "Thinking...")
	defer stop()
	return fn()
}

func (c *chatShell) report(err error) {
	if err == nil || errors.Is(err, assistant.ErrEmptyInput) {
		return
	}
	fmt.Fprintln(c.out, formatter.StyleRed.Render("Error: "+err.Error()))
}

func slashNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n, true
}

func chatHelp() string {
	rows := [][]string{
		{"/1 .. /9", "pick a numbered option from the last reply"},
		{"/actions", "list quick actions"},
		{"/a1 .. /a4", "run a quick action"},
		{"/state", "show the active workflow and draft"},
		{"/end", "leave the active workflow"},
		{"/quit", "exit"},
	}
	return formatter.RenderTable([]string{"COMMAND", "DESCRIPTION"}, rows)
}
