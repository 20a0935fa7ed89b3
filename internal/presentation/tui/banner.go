package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the latticenb banner followed by a status line.
func PrintBanner(w io.Writer, status string) {
	out := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{" _       _   _   _              _", "#34d399"},
		{"| | __ _| |_| |_(_) ___ ___ _ _ | |__", "#2dd4bf"},
		{"| |/ _` |  _|  _| |/ __/ -_) ' \\| '_ \\", "#22d3ee"},
		{"|_|\\__,_|\\__|\\__|_|\\___\\___|_||_|_.__/", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
	if status != "" {
		fmt.Fprintln(w, out.String("  "+status).Faint())
		fmt.Fprintln(w)
	}
}
