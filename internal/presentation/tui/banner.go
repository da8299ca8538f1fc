package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/animator/pkg/domain"
	"github.com/muesli/termenv"
)

var stateColors = map[domain.State]string{
	domain.StateExited:   "#94a3b8",
	domain.StateEntering: "#facc15",
	domain.StateEntered:  "#4ade80",
	domain.StateExiting:  "#fb923c",
}

// PrintBanner writes the ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"   __ _ _ __  (_)_ __ ___   __ _| |_ ___  _ __", "#818cf8"},
		{"  / _` | '_ \\ | | '_ ` _ \\ / _` | __/ _ \\| '__|", "#a78bfa"},
		{" | (_| | | | || | | | | | | (_| | || (_) | |", "#c084fc"},
		{"  \\__,_|_| |_||_|_| |_| |_|\\__,_|\\__\\___/|_|", "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// State returns the state name coloured for the current terminal profile.
func State(s domain.State) string {
	p := termenv.ColorProfile()
	color, ok := stateColors[s]
	if !ok {
		return s.String()
	}
	return termenv.String(s.String()).Foreground(p.Color(color)).String()
}
