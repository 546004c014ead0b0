package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the autoplan banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"              _              _             ", "#38bdf8"},
		{"   __ _ _   _| |_ ___  _ __ | | __ _ _ __  ", "#22d3ee"},
		{"  / _` | | | | __/ _ \\| '_ \\| |/ _` | '_ \\ ", "#2dd4bf"},
		{" | (_| | |_| | || (_) | |_) | | (_| | | | |", "#34d399"},
		{"  \\__,_|\\__,_|\\__\\___/| .__/|_|\\__,_|_| |_|", "#4ade80"},
		{"                      |_|                  ", "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
