package costbasis

import (
	"github.com/etnz/costbasis/date"
)

// HoldingPeriod is the number of days a lot must be held to become long-term.
const HoldingPeriod = 365

// Cutoff returns the purchase date separating short-term from long-term lots.
// 'days' moves 'today' into the future, to preview lots that are about to turn long-term.
func Cutoff(today date.Date, days int) date.Date {
	return today.Add(-(HoldingPeriod - days))
}

// IsShortTerm reports whether the lot was purchased strictly after the cutoff.
// A lot purchased on the cutoff date itself is long-term.
func IsShortTerm(l Lot, cutoff date.Date) bool { return l.Date.After(cutoff) }

// Classify partitions lots into short-term and long-term lots, keeping their order.
func Classify(lots Lots, cutoff date.Date) (short, long Lots) {
	for _, l := range lots {
		if IsShortTerm(l, cutoff) {
			short = append(short, l)
		} else {
			long = append(long, l)
		}
	}
	return short, long
}

// SumGain returns the total gain of all lots, zero for no lots.
func SumGain(lots Lots) Money { return lots.Sum(gain) }

// SumCost returns the total cost basis of all lots.
func SumCost(lots Lots) Money { return lots.Sum(cost) }

// SumValue returns the total market value of all lots.
func SumValue(lots Lots) Money { return lots.Sum(value) }

// Summary is the aggregate short-term/long-term view of a set of lots.
type Summary struct {
	Cutoff     date.Date
	TotalCost  Money
	TotalValue Money
	GainRatio  Percent // (TotalValue / TotalCost - 1) in percent, 0 without cost

	ShortValue Money
	LongValue  Money

	NetGain      Money
	NetShortGain Money
	NetLongGain  Money

	ShortLosses      Money
	ShortLossSymbols []string
	LongLosses       Money
	LongLossSymbols  []string
}

// Summarize computes the Summary of 'lots' for a given cutoff.
func Summarize(lots Lots, cutoff date.Date) Summary {
	short, long := Classify(lots, cutoff)
	shortLosses := short.Filter(isLoss)
	longLosses := long.Filter(isLoss)

	s := Summary{
		Cutoff:     cutoff,
		TotalCost:  SumCost(lots),
		TotalValue: SumValue(lots),

		ShortValue: SumValue(short),
		LongValue:  SumValue(long),

		NetGain:      SumGain(lots),
		NetShortGain: SumGain(short),
		NetLongGain:  SumGain(long),

		ShortLosses:      SumGain(shortLosses),
		ShortLossSymbols: shortLosses.Symbols(),
		LongLosses:       SumGain(longLosses),
		LongLossSymbols:  longLosses.Symbols(),
	}
	if !s.TotalCost.IsZero() {
		s.GainRatio = Percent((s.TotalValue.Ratio(s.TotalCost) - 1) * 100)
	}
	return s
}

// SymbolGains is the net, short-term and long-term gain of a single symbol.
type SymbolGains struct {
	Symbol      string
	DisplayName string
	Net         Money
	Short       Money
	Long        Money
}

// BySymbol groups lots by symbol, in order of first appearance, and sums their gains.
func BySymbol(lots Lots, cutoff date.Date) []SymbolGains {
	short, long := Classify(lots, cutoff)
	symbols := lots.Symbols()
	res := make([]SymbolGains, 0, len(symbols))
	for _, symbol := range symbols {
		res = append(res, SymbolGains{
			Symbol:      symbol,
			DisplayName: lots.DisplayName(symbol),
			Net:         SumGain(lots.Filter(hasSymbol(symbol))),
			Short:       SumGain(short.Filter(hasSymbol(symbol))),
			Long:        SumGain(long.Filter(hasSymbol(symbol))),
		})
	}
	return res
}
