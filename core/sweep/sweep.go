// Package sweep - Exponent x rate sweep
// Evaluates every (exponent, rate) pair and collects the results in
// request order.
package sweep

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/xid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"keyspace-time/core/duration"
	"keyspace-time/core/magnitude"
	"keyspace-time/core/units"
	"keyspace-time/internal/errors"
	"keyspace-time/internal/logging"
)

// DefaultLandmarks are the exponents evaluated when none are given
var DefaultLandmarks = []magnitude.Exponent{8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096}

// Basis selects which quantity is timed for each exponent
type Basis string

const (
	// BasisCount times 2^n operations
	BasisCount Basis = "count"

	// BasisBits times n * 2^n operations, one per bit of every n-bit value
	BasisBits Basis = "bits"
)

// Request describes one sweep
type Request struct {
	Exponents []magnitude.Exponent
	Rates     duration.RateTable
	Basis     Basis
}

// Cell is the result for one (exponent, rate) pair
type Cell struct {
	Rate      duration.Rate
	Duration  duration.Duration
	Formatted units.FormattedDuration
}

// Row holds every cell for one exponent, in rate table order
type Row struct {
	Exponent  magnitude.Exponent
	Magnitude magnitude.Magnitude
	Cells     []Cell
}

// Report is the complete sweep result
type Report struct {
	ID    string
	Basis Basis
	Rates duration.RateTable
	Rows  []Row
}

// Key identifies a cell by exponent and rate label
type Key struct {
	Exponent magnitude.Exponent
	Rate     string
}

// Lookup returns the cell for exponent n and the rate labelled label
func (r *Report) Lookup(n magnitude.Exponent, label string) (Cell, bool) {
	for _, row := range r.Rows {
		if row.Exponent != n {
			continue
		}
		return lo.Find(row.Cells, func(c Cell) bool { return c.Rate.Label == label })
	}
	return Cell{}, false
}

// Formatted returns the mapping view of the report.
// Repeated exponents keep the first occurrence.
func (r *Report) Formatted() map[Key]units.FormattedDuration {
	out := make(map[Key]units.FormattedDuration, len(r.Rows)*len(r.Rates))
	for _, row := range r.Rows {
		for _, c := range row.Cells {
			k := Key{Exponent: row.Exponent, Rate: c.Rate.Label}
			if _, ok := out[k]; !ok {
				out[k] = c.Formatted
			}
		}
	}
	return out
}

// Labels returns the rate labels in table order
func (r *Report) Labels() []string {
	return lo.Map(r.Rates, func(rate duration.Rate, _ int) string { return rate.Label })
}

// Option configures a sweep
type Option func(*runner)

// Calculator turns a magnitude and a rate into a duration
type Calculator interface {
	Duration(bits magnitude.Magnitude, rate duration.Rate) duration.Duration
}

type runner struct {
	estimator   magnitude.Estimator
	calculator  Calculator
	concurrency int
	logger      *zap.Logger
}

// WithEstimator overrides the magnitude estimator
func WithEstimator(e magnitude.Estimator) Option {
	return func(r *runner) { r.estimator = e }
}

// WithCalculator overrides the duration calculator
func WithCalculator(c Calculator) Option {
	return func(r *runner) {
		if c != nil {
			r.calculator = c
		}
	}
}

// WithConcurrency bounds the number of rows computed at once
func WithConcurrency(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-row debug output
func WithLogger(l *zap.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Run evaluates req. The estimator runs once per exponent; the calculator and
// formatter run once per (exponent, rate).
func Run(ctx context.Context, req Request, opts ...Option) (*Report, error) {
	r := &runner{
		estimator:   magnitude.DefaultEstimator(),
		calculator:  duration.NewCalculator(),
		concurrency: runtime.GOMAXPROCS(0),
		logger:      logging.Named("sweep"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := req.Rates.Validate(); err != nil {
		return nil, err
	}
	basis := req.Basis
	if basis == "" {
		basis = BasisCount
	}
	if basis != BasisCount && basis != BasisBits {
		return nil, errors.Newf(errors.TypeInput, "unknown basis %q", basis)
	}

	rates := req.Rates.Clone()
	rows := make([]Row, len(req.Exponents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, n := range req.Exponents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := r.safeRow(n, basis, rates)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		ID:    xid.New().String(),
		Basis: basis,
		Rates: rates,
		Rows:  rows,
	}, nil
}

// safeRow turns a panic while computing a row into an internal error so a
// bad row cannot take down the whole process.
func (r *runner) safeRow(n magnitude.Exponent, basis Basis, rates duration.RateTable) (row Row, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("row computation panicked",
				zap.Uint("exponent", uint(n)),
				zap.Any("panic", rec),
			)
			err = errors.Internal("row computation failed", fmt.Errorf("%v", rec)).
				WithContext("exponent", uint(n))
		}
	}()
	return r.row(n, basis, rates), nil
}

func (r *runner) row(n magnitude.Exponent, basis Basis, rates duration.RateTable) Row {
	var m magnitude.Magnitude
	if basis == BasisBits {
		m = r.estimator.TotalBits(n)
	} else {
		m = r.estimator.Estimate(n)
	}

	cells := make([]Cell, len(rates))
	for j, rate := range rates {
		d := r.calculator.Duration(m, rate)
		cells[j] = Cell{Rate: rate, Duration: d, Formatted: units.Format(d)}
	}

	r.logger.Debug("row computed",
		zap.Uint("exponent", uint(n)),
		zap.Stringer("kind", m.Kind()),
		zap.Float64("log10", m.Log10()),
		zap.Int("cells", len(cells)),
	)
	return Row{Exponent: n, Magnitude: m, Cells: cells}
}
