package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/animator/pkg/domain"
)

// Entry is one transition observed during a simulation.
type Entry struct {
	At     time.Duration
	Node   string
	From   domain.State
	To     domain.State
	Action domain.Action
}

// Timeline collects transitions in the order they happened.
type Timeline struct {
	entries []Entry
}

// Add appends an entry.
func (t *Timeline) Add(e Entry) {
	t.entries = append(t.entries, e)
}

// Entries returns the recorded entries.
func (t *Timeline) Entries() []Entry {
	return t.entries
}

// Markdown renders the timeline as a markdown table under a heading.
func (t *Timeline) Markdown(title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(t.entries) == 0 {
		sb.WriteString("_No transitions._\n")
		return sb.String()
	}

	sb.WriteString("| Time | Node | From | To | Action |\n")
	sb.WriteString("|---:|---|---|---|---|\n")
	for _, e := range t.entries {
		fmt.Fprintf(&sb, "| %.3fs | %s | %s | %s | %s |\n", e.At.Seconds(), e.Node, e.From, e.To, e.Action)
	}
	return sb.String()
}
