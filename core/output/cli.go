package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"keyspace-time/core/magnitude"
	"keyspace-time/core/sweep"
)

// CLIFormatter renders a boxed table, one row per exponent
type CLIFormatter struct {
	opts Options
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the table to w
func (f *CLIFormatter) Render(w io.Writer, result *Result) error {
	report := result.Report

	header := []string{"Exponent"}
	if f.opts.ShowMagnitude {
		header = append(header, quantityLabel(report.Basis))
	}
	header = append(header, report.Labels()...)

	rows := lo.Map(report.Rows, func(row sweep.Row, _ int) []string {
		cols := []string{fmt.Sprintf("2^%d", row.Exponent)}
		if f.opts.ShowMagnitude {
			cols = append(cols, magnitude.Format(row.Magnitude))
		}
		for _, c := range row.Cells {
			cols = append(cols, c.Formatted.Text)
		}
		return cols
	})

	widths := make([]int, len(header))
	for _, line := range append([][]string{header}, rows...) {
		for i, col := range line {
			widths[i] = max(widths[i], utf8.RuneCountInString(col))
		}
	}

	p := &printer{w: w}
	p.rule("┌", "┬", "┐", widths)
	p.line(header, widths)
	p.rule("├", "┼", "┤", widths)
	for _, r := range rows {
		p.line(r, widths)
	}
	p.rule("└", "┴", "┘", widths)

	if summary := universeSummary(report); summary != "" {
		p.printf("\n%s\n", summary)
	}
	if result.Metadata.Elapsed != "" {
		p.printf("\nSweep completed in %s (exact up to 2^%d)\n", result.Metadata.Elapsed, result.ExactThreshold)
	}
	return p.err
}

func quantityLabel(b sweep.Basis) string {
	if b == sweep.BasisBits {
		return "Total bits"
	}
	return "Count"
}

// universeSummary compares the largest exponent at the fastest rate with
// the age of the universe
func universeSummary(report *sweep.Report) string {
	if len(report.Rows) == 0 {
		return ""
	}
	fastest, ok := report.Rates.Fastest()
	if !ok {
		return ""
	}
	last := lo.MaxBy(report.Rows, func(a, b sweep.Row) bool { return a.Exponent > b.Exponent })
	cell, ok := lo.Find(last.Cells, func(c sweep.Cell) bool { return c.Rate.Label == fastest.Label })
	if !ok {
		return ""
	}
	ratio := cell.Duration.Log10UniverseAges()
	if ratio <= 0 {
		return ""
	}
	return fmt.Sprintf("2^%d at %s (%g Hz): ~10^%d x the age of the universe",
		last.Exponent, fastest.Label, fastest.Hz, int64(ratio))
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) rule(left, mid, right string, widths []int) {
	segs := lo.Map(widths, func(w int, _ int) string { return strings.Repeat("─", w+2) })
	p.printf("%s%s%s\n", left, strings.Join(segs, mid), right)
}

func (p *printer) line(cols []string, widths []int) {
	cells := make([]string, len(cols))
	for i, col := range cols {
		pad := widths[i] - utf8.RuneCountInString(col)
		cells[i] = " " + col + strings.Repeat(" ", pad) + " "
	}
	p.printf("│%s│\n", strings.Join(cells, "│"))
}
