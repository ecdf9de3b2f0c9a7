package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// Extend returns the smallest range containing both r and d.
// The zero Range is treated as empty.
func (r Range) Extend(d Date) Range {
	if r.From.IsZero() && r.To.IsZero() {
		return Range{From: d, To: d}
	}
	if d.Before(r.From) {
		r.From = d
	}
	if d.After(r.To) {
		r.To = d
	}
	return r
}

// String returns "FROM to TO", or "n/a" for the empty range.
func (r Range) String() string {
	if r.From.IsZero() && r.To.IsZero() {
		return "n/a"
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}
