package costbasis

import (
	"github.com/etnz/costbasis/date"
)

// Lot is a single purchase of a security, as exported by the broker.
type Lot struct {
	Symbol      string
	DisplayName string
	Date        date.Date // purchase date
	Cost        Money     // cost basis of the whole lot
	Quantity    Quantity
	Value       Money // market value of the whole lot
	Gain        Money // Value - Cost, unrealized
}

// Lots is a list of tax lots.
type Lots []Lot

// Symbols returns the unique symbols in order of first appearance.
func (l Lots) Symbols() []string {
	seen := make(map[string]struct{})
	var symbols []string
	for _, lot := range l {
		if _, ok := seen[lot.Symbol]; ok {
			continue
		}
		seen[lot.Symbol] = struct{}{}
		symbols = append(symbols, lot.Symbol)
	}
	return symbols
}

// DisplayName returns the first display name found for 'symbol'.
func (l Lots) DisplayName(symbol string) string {
	for _, lot := range l {
		if lot.Symbol == symbol && lot.DisplayName != "" {
			return lot.DisplayName
		}
	}
	return ""
}

// Filter returns the lots matching all the predicates, in order.
func (l Lots) Filter(preds ...func(Lot) bool) Lots {
	var res Lots
next:
	for _, lot := range l {
		for _, pred := range preds {
			if !pred(lot) {
				continue next
			}
		}
		res = append(res, lot)
	}
	return res
}

// Sum adds up a Money field of all the lots. It is zero for no lots.
func (l Lots) Sum(field func(Lot) Money) Money {
	var total Money
	for _, lot := range l {
		total = total.Add(field(lot))
	}
	return total
}

// Span returns the range of purchase dates.
func (l Lots) Span() date.Range {
	var r date.Range
	for _, lot := range l {
		r = r.Extend(lot.Date)
	}
	return r
}

// field accessors, to be used with Sum.

func cost(l Lot) Money  { return l.Cost }
func value(l Lot) Money { return l.Value }
func gain(l Lot) Money  { return l.Gain }

// predicates, to be used with Filter.

func isLoss(l Lot) bool { return l.Gain.IsNegative() }

func hasSymbol(symbol string) func(Lot) bool {
	return func(l Lot) bool { return l.Symbol == symbol }
}
