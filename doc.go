// Package costbasis reads cost-basis exports of tax lots and reports their
// gains, split between short-term and long-term holdings.
//
// The core functionalities include:
//   - Decoding: reading the lots of a broker's cost-basis CSV export
//     (symbol, display name, purchase date, cost, quantity, value, gain).
//   - Aggregation: classifying lots as short-term or long-term relative to a
//     one year holding period, and summing their cost, value and gain
//     overall and per symbol.
//   - Price refresh: recomputing value and gain of each lot from the latest
//     market price of its symbol, fetched concurrently from a PriceFetcher.
//
// This package serves as the foundational logic for the `cb` command-line
// tool.
package costbasis
