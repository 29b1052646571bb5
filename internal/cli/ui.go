package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/lvsearch/search"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - early stops
	colorGray   = lipgloss.Color("245") // Gray - labels
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
)

// printSummary renders the outcome of one search.
func printSummary(w io.Writer, o outcome) {
	icon := StyleSuccess.Render(iconSuccess)
	switch o.Stats.Reason {
	case search.ReasonExhausted, search.ReasonTimeLimit:
		icon = StyleWarning.Render(iconWarning)
	}

	fmt.Fprintf(w, "%s %s  %s\n", icon, StyleTitle.Render(o.Problem), o.Detail)
	row(w, "objective", "%s (%s)", StyleNumber.Render(fmt.Sprintf("%g", o.Objective)), senseName(o.Sense))
	row(w, "iterations", "%s (spent %d, blocked %d, saturated %d)", StyleNumber.Render(fmt.Sprint(o.Stats.Iterations)), o.Stats.Spent, o.Stats.Blocked, o.Stats.Saturated)
	row(w, "improved", "%d times", o.Stats.Improvements)
	if o.Stats.Tolerance > 0 || o.Stats.Intensifications+o.Stats.Diversifications > 0 {
		row(w, "restarts", "%d intensify, %d diversify (tolerance %d)",
			o.Stats.Intensifications, o.Stats.Diversifications, o.Stats.Tolerance)
	}
	row(w, "stopped", "%s after %s", o.Stats.Reason, o.Stats.Elapsed.Round(time.Microsecond))
}

// benchSummary aggregates the best objectives of a bench run.
type benchSummary struct {
	Problem        string
	Sense          search.Sense
	Runs           int
	Mean, StdDev   float64
	Min, Max       float64
	BestSeed       int64
	MeanIterations float64

	bestIndex int
}

func printBench(w io.Writer, b benchSummary) {
	fmt.Fprintf(w, "%s %s  %d runs\n", StyleSuccess.Render(iconSuccess), StyleTitle.Render(b.Problem), b.Runs)
	row(w, "mean", "%s ± %.3f", StyleNumber.Render(fmt.Sprintf("%.3f", b.Mean)), b.StdDev)
	row(w, "range", "[%g, %g]", b.Min, b.Max)
	row(w, "best seed", "%d (%s)", b.BestSeed, senseName(b.Sense))
	row(w, "iterations", "%.1f on average", b.MeanIterations)
}

func row(w io.Writer, label, format string, args ...any) {
	fmt.Fprintf(w, "  %s%s\n", StyleLabel.Render(label), fmt.Sprintf(format, args...))
}

func senseName(s search.Sense) string {
	if s == search.Maximize {
		return "maximize"
	}
	return "minimize"
}
