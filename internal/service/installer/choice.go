package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	id    string
	title string
	desc  string
}

// renderChoices draws a cursor list. marked reports the toggled state for
// multi-select lists and is nil otherwise.
func renderChoices(title string, choices []choice, cursor int, marked func(id string) bool) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	for i, c := range choices {
		pointer := " "
		if cursor == i {
			pointer = "❯"
		}
		box := ""
		if marked != nil {
			box = "[ ] "
			if marked(c.id) {
				box = "[x] "
			}
		}

		line := fmt.Sprintf("%s %s%s", pointer, box, c.title)
		if cursor == i {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		if c.desc != "" {
			b.WriteString(descStyle.Render("  " + c.desc))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// moveCursor handles up/down navigation and reports whether the key was used.
func moveCursor(msg tea.KeyMsg, cursor *int, n int) bool {
	switch msg.String() {
	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
		return true
	case "down", "j":
		if *cursor < n-1 {
			*cursor++
		}
		return true
	}
	return false
}
