package renderer

import (
	"strings"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/date"
)

// Options selects the sections of a Report.
type Options struct {
	Summary   bool // aggregate short/long term figures
	PerSymbol bool // gain/loss per symbol sections
	Verbose   bool // display names in per symbol rows
}

// Report is the printable view of a set of lots.
type Report struct {
	Lots    int
	Symbols int
	Span    date.Range
	Cutoff  date.Date
	Verbose bool

	Summary   *costbasis.Summary // nil when not requested
	PerSymbol bool
	Rows      []costbasis.SymbolGains
}

// NewReport computes the Report of 'lots' at 'cutoff'.
func NewReport(lots costbasis.Lots, cutoff date.Date, opts Options) *Report {
	r := &Report{
		Lots:      len(lots),
		Symbols:   len(lots.Symbols()),
		Span:      lots.Span(),
		Cutoff:    cutoff,
		Verbose:   opts.Verbose,
		PerSymbol: opts.PerSymbol,
	}
	if opts.Summary {
		s := costbasis.Summarize(lots, cutoff)
		r.Summary = &s
	}
	if opts.PerSymbol {
		r.Rows = costbasis.BySymbol(lots, cutoff)
	}
	return r
}

// ShortLossSymbols returns the comma separated symbols with short term losses.
func (r *Report) ShortLossSymbols() string {
	if r.Summary == nil {
		return ""
	}
	return strings.Join(r.Summary.ShortLossSymbols, ",")
}

// LongLossSymbols returns the comma separated symbols with long term losses.
func (r *Report) LongLossSymbols() string {
	if r.Summary == nil {
		return ""
	}
	return strings.Join(r.Summary.LongLossSymbols, ",")
}

// ShortRows returns the rows with a non zero short term gain.
func (r *Report) ShortRows() []costbasis.SymbolGains {
	return filterRows(r.Rows, func(g costbasis.SymbolGains) costbasis.Money { return g.Short })
}

// LongRows returns the rows with a non zero long term gain.
func (r *Report) LongRows() []costbasis.SymbolGains {
	return filterRows(r.Rows, func(g costbasis.SymbolGains) costbasis.Money { return g.Long })
}

func filterRows(rows []costbasis.SymbolGains, field func(costbasis.SymbolGains) costbasis.Money) []costbasis.SymbolGains {
	var res []costbasis.SymbolGains
	for _, row := range rows {
		if !field(row).IsZero() {
			res = append(res, row)
		}
	}
	return res
}
