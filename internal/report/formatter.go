// Package report renders yearly and monthly weather reports for the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"weatherman/internal/services"
)

const dateLayout = "2006-01-02"

// ColorMode selects when bars are coloured
type ColorMode int

const (
	// ColorAuto colours output only when stdout is a terminal
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Formatter writes reports to an output stream
type Formatter struct {
	out  io.Writer
	high *color.Color
	low  *color.Color
}

// NewFormatter creates a formatter writing to out
func NewFormatter(out io.Writer, mode ColorMode) *Formatter {
	high := color.New(color.FgRed)
	low := color.New(color.FgBlue)

	switch mode {
	case ColorAlways:
		high.EnableColor()
		low.EnableColor()
	case ColorNever:
		high.DisableColor()
		low.DisableColor()
	}

	return &Formatter{
		out:  out,
		high: high,
		low:  low,
	}
}

// WriteYearly writes the three extremes of a yearly report
func (f *Formatter) WriteYearly(r *services.YearlyReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Highest: %dC on %s\n", r.HighestTemp.Value, r.HighestTemp.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Lowest: %dC on %s\n", r.LowestTemp.Value, r.LowestTemp.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Humid: %d%% on %s\n", r.HighestHumidity.Value, r.HighestHumidity.Date.Format(dateLayout))

	return f.flush(b.String())
}

// WriteMonthly writes the bar chart, the per-day ranges and the averages
// of a monthly report
func (f *Formatter) WriteMonthly(r *services.MonthlyReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", r.Label, r.Year)

	for _, d := range r.Days {
		day := d.Date.Day()
		fmt.Fprintf(&b, "%02d %s %dC\n", day, f.high.Sprint(bar(d.High)), d.High)
		fmt.Fprintf(&b, "%02d %s %dC\n", day, f.low.Sprint(bar(d.Low)), d.Low)
	}

	for _, rng := range r.Ranges {
		span := rng.Span()
		fmt.Fprintf(&b, "%02d%s%s %dC-%dC\n",
			rng.Day,
			f.high.Sprint(bar(span)),
			f.low.Sprint(bar(span)),
			rng.DisplayLow(),
			rng.DisplayHigh(),
		)
	}

	avg := r.Averages
	fmt.Fprintf(&b, "\nAverage Highest: %s\n", withUnit(formatInt(avg.AvgHighest), "C"))
	fmt.Fprintf(&b, "Average Lowest: %s\n", withUnit(formatInt(avg.AvgLowest), "C"))
	fmt.Fprintf(&b, "Average Humidity: %s\n", withUnit(formatFloat(avg.AvgHumidity), "%"))

	return f.flush(b.String())
}

func (f *Formatter) flush(s string) error {
	if _, err := io.WriteString(f.out, s); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// bar returns n plus signs; negative lengths give an empty bar
func bar(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("+", n)
}

const notAvailable = "n/a"

func formatInt(v *int) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", float64(*v))
}

func formatFloat(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.2f", *v)
}

func withUnit(value, unit string) string {
	if value == notAvailable {
		return value
	}
	return value + unit
}
