package output

import (
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"keyspace-time/core/duration"
	"keyspace-time/core/magnitude"
	"keyspace-time/core/sweep"
	"keyspace-time/core/units"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFormatter renders the raw and formatted values as JSON
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

type jsonReport struct {
	ID             string     `json:"id"`
	Basis          string     `json:"basis"`
	ExactThreshold uint       `json:"exact_threshold"`
	Metadata       Metadata   `json:"metadata"`
	Rates          []jsonRate `json:"rates"`
	Rows           []jsonRow  `json:"rows"`
}

type jsonRate struct {
	Label string  `json:"label"`
	Hz    float64 `json:"hz"`
}

type jsonRow struct {
	Exponent  uint          `json:"exponent"`
	Magnitude jsonMagnitude `json:"magnitude"`
	Cells     []jsonCell    `json:"cells"`
}

type jsonMagnitude struct {
	Kind    string   `json:"kind"`
	Exact   string   `json:"exact,omitempty"`
	Log10   *float64 `json:"log10,omitempty"`
	Display string   `json:"display"`
}

type jsonCell struct {
	Rate         string     `json:"rate"`
	Kind         string     `json:"kind"`
	Seconds      *float64   `json:"seconds,omitempty"`
	ExactSeconds string     `json:"exact_seconds,omitempty"`
	Log10Years   *float64   `json:"log10_years,omitempty"`
	Text         string     `json:"text"`
	Unit         units.Unit `json:"unit"`
}

// Render writes the report as indented JSON
func (f *JSONFormatter) Render(w io.Writer, result *Result) error {
	report := result.Report
	out := jsonReport{
		ID:             report.ID,
		Basis:          string(report.Basis),
		ExactThreshold: result.ExactThreshold,
		Metadata:       result.Metadata,
		Rates: lo.Map(report.Rates, func(r duration.Rate, _ int) jsonRate {
			return jsonRate{Label: r.Label, Hz: r.Hz}
		}),
		Rows: lo.Map(report.Rows, func(r sweep.Row, _ int) jsonRow { return toJSONRow(r) }),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func toJSONRow(r sweep.Row) jsonRow {
	m := jsonMagnitude{
		Kind:    r.Magnitude.Kind().String(),
		Log10:   finite(r.Magnitude.Log10()),
		Display: magnitude.Format(r.Magnitude),
	}
	if v, ok := r.Magnitude.Exact(); ok {
		m.Exact = v.String()
	}

	cells := lo.Map(r.Cells, func(c sweep.Cell, _ int) jsonCell {
		jc := jsonCell{
			Rate: c.Rate.Label,
			Kind: c.Duration.Kind().String(),
			Text: c.Formatted.Text,
			Unit: c.Formatted.Unit,
		}
		if s, ok := c.Duration.Seconds(); ok {
			jc.Seconds = finite(s)
		}
		if exact, ok := c.Duration.ExactSeconds(); ok {
			jc.ExactSeconds = exact.String()
		}
		if y, ok := c.Duration.Log10Years(); ok {
			jc.Log10Years = finite(y)
		}
		return jc
	})

	return jsonRow{Exponent: uint(r.Exponent), Magnitude: m, Cells: cells}
}

// finite drops values JSON cannot represent
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
