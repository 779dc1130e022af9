package formatter

import "strings"

const textWrapWidth = 88

// wrapText re-flows each paragraph of text to width columns. Existing line
// breaks are kept.
func wrapText(text string, width int) string {
	if width <= 0 {
		return strings.TrimSpace(text)
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) <= width {
				current += " " + word
				continue
			}
			out = append(out, current)
			current = word
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}

// indentWrapped wraps text and prefixes every line after the first with
// indent spaces.
func indentWrapped(text string, indent, width int) string {
	lines := strings.Split(wrapText(text, width), "\n")
	return strings.Join(lines, "\n"+strings.Repeat(" ", indent))
}
