package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/costbasis"
)

// Loaded returns the line describing the loaded lots.
func Loaded(r *Report) string {
	return fmt.Sprintf("Loaded %d tax lots for %d symbols purchased between %s\n", r.Lots, r.Symbols, r.Span)
}

// Text renders the summary and per symbol sections of the report in plain text.
func Text(r *Report) string {
	var b strings.Builder
	if s := r.Summary; s != nil {
		fmt.Fprintf(&b, "Total cost %s\n", s.TotalCost)
		fmt.Fprintf(&b, "Total value %s\n", s.TotalValue)
		fmt.Fprintf(&b, "Total gain/loss %s\n", s.GainRatio)
		fmt.Fprintf(&b, "Short term total value %s\n", s.ShortValue)
		fmt.Fprintf(&b, "Long term total value %s\n", s.LongValue)
		fmt.Fprintf(&b, "Net gain/loss %s\n", s.NetGain)
		fmt.Fprintf(&b, "Net short term gain/loss %s\n", s.NetShortGain)
		fmt.Fprintf(&b, "Net long term gain/loss %s\n", s.NetLongGain)
		fmt.Fprintf(&b, "Total short term losses %s\n", s.ShortLosses)
		if len(s.ShortLossSymbols) > 0 {
			b.WriteString(r.ShortLossSymbols() + "\n")
		}
		fmt.Fprintf(&b, "Total long term losses %s\n", s.LongLosses)
		if len(s.LongLossSymbols) > 0 {
			b.WriteString(r.LongLossSymbols() + "\n")
		}
	}
	if r.PerSymbol {
		section(&b, "Net gain/loss per symbol", r.Rows, r.Verbose, func(g costbasis.SymbolGains) costbasis.Money { return g.Net })
		section(&b, "Net short term gain/loss per symbol", r.ShortRows(), r.Verbose, func(g costbasis.SymbolGains) costbasis.Money { return g.Short })
		section(&b, "Net long term gain/loss per symbol", r.LongRows(), r.Verbose, func(g costbasis.SymbolGains) costbasis.Money { return g.Long })
	}
	return b.String()
}

// section writes a title and one row per symbol. An empty section still ends
// with an empty line.
func section(b *strings.Builder, title string, rows []costbasis.SymbolGains, verbose bool, field func(costbasis.SymbolGains) costbasis.Money) {
	b.WriteString(title + "\n")
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if verbose {
			lines = append(lines, fmt.Sprintf("%-8s%-42.42s%21s", row.Symbol, row.DisplayName, field(row)))
		} else {
			lines = append(lines, fmt.Sprintf("%s\t%s", row.Symbol, field(row)))
		}
	}
	b.WriteString(strings.Join(lines, "\n") + "\n")
}
