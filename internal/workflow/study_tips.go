package workflow

import "strings"

const (
	OptionShowAnother = "Show another"
	OptionGotIt       = "Got it"
	OptionShowMore    = "Show more"
	OptionTipsDone    = "Done"
)

// Tip is a named study technique.
type Tip struct {
	Title       string
	Description string
}

// Tips are the techniques offered by the study-tips workflow, in menu order.
var Tips = []Tip{
	{Title: "Pomodoro", Description: "25min study + 5min break. Helps maintain focus and prevent burnout."},
	{Title: "Active Recall", Description: "Test yourself instead of re-reading. Improves memory retention."},
	{Title: "Spaced Review", Description: "Review at increasing intervals. Enhances long-term memory."},
}

// StudyTips is a single-step menu of study techniques.
type StudyTips struct{}

var _ Definition = StudyTips{}

func (StudyTips) ID() ID            { return StudyTipsID }
func (StudyTips) Name() string      { return "Study Tips" }
func (StudyTips) InitialStep() Step { return StepSelectTip }
func (StudyTips) Next(Step) Step    { return StepSelectTip }

func (StudyTips) InitialResponse() Response {
	opts := make([]string, 0, len(Tips))
	for _, t := range Tips {
		opts = append(opts, t.Title)
	}
	return Response{Text: "Choose a study technique:", Options: opts}
}

func (w StudyTips) Process(in Input, _ State, _ Context) Response {
	choice := strings.TrimSpace(in.Text)
	if tip, ok := LookupTip(choice); ok {
		return Response{
			Text:    tip.Description,
			Options: []string{OptionShowAnother, OptionGotIt},
		}
	}
	if strings.EqualFold(choice, OptionShowAnother) || strings.EqualFold(choice, OptionShowMore) {
		return w.InitialResponse()
	}
	return Response{
		Text:    "Need more study tips?",
		Options: []string{OptionShowMore, OptionTipsDone},
	}
}

// LookupTip finds a tip by title, ignoring case.
func LookupTip(title string) (Tip, bool) {
	for _, t := range Tips {
		if strings.EqualFold(t.Title, title) {
			return t, true
		}
	}
	return Tip{}, false
}
