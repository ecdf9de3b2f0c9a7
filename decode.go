package costbasis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/costbasis/date"
	"github.com/gocarina/gocsv"
)

// ErrNotReadable is returned when the cost-basis file is not a regular readable file.
var ErrNotReadable = errors.New("not a readable file")

// Columns is the fixed order of the columns in a cost-basis export.
var Columns = []string{"symbol", "display_name", "date", "cost", "quantity", "value", "gain"}

// lotRecord is the raw CSV representation of a Lot.
type lotRecord struct {
	Symbol      string `csv:"symbol"`
	DisplayName string `csv:"display_name"`
	Date        string `csv:"date"`
	Cost        string `csv:"cost"`
	Quantity    string `csv:"quantity"`
	Value       string `csv:"value"`
	Gain        string `csv:"gain"`
}

// DecodeOptions controls how a cost-basis export is read.
type DecodeOptions struct {
	HeaderRows int    // number of leading records to skip
	Currency   string // currency of all amounts, DefaultCurrency if empty
}

// DefaultDecodeOptions skips the export's title row and its header row, and reads amounts in DefaultCurrency.
var DefaultDecodeOptions = DecodeOptions{HeaderRows: 2, Currency: DefaultCurrency}

// exportTitle is the title row EncodeLots writes above the header.
const exportTitle = "Cost basis lots"

// DecodeLots reads lots from a cost-basis CSV export.
func DecodeLots(r io.Reader, opts DecodeOptions) (Lots, error) {
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	// Skip the file's own header rows, and replace them by a canonical header
	// so that columns are matched by position whatever their names.
	br := bufio.NewReader(r)
	for i := 0; i < opts.HeaderRows; i++ {
		line, err := br.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil, nil
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("cannot read header row %d: %w", i+1, err)
		}
	}
	in := io.MultiReader(strings.NewReader(strings.Join(Columns, ",")+"\n"), br)

	var records []*lotRecord
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("cannot read lots: %w", err)
	}

	lots := make(Lots, 0, len(records))
	for i, rec := range records {
		lot, err := rec.lot(opts.Currency)
		if err != nil {
			// blank lines are not counted
			return nil, fmt.Errorf("line %d (%s): %w", i+1+opts.HeaderRows, rec.Symbol, err)
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

func (rec *lotRecord) lot(currency string) (lot Lot, err error) {
	lot.Symbol = strings.TrimSpace(rec.Symbol)
	lot.DisplayName = strings.TrimSpace(rec.DisplayName)
	if lot.Symbol == "" {
		return lot, errors.New("missing symbol")
	}
	if lot.Date, err = date.Parse(rec.Date); err != nil {
		return lot, err
	}
	if lot.Cost, err = ParseMoney(rec.Cost, currency); err != nil {
		return lot, fmt.Errorf("cost: %w", err)
	}
	if lot.Quantity, err = ParseQuantity(rec.Quantity); err != nil {
		return lot, err
	}
	if lot.Value, err = ParseMoney(rec.Value, currency); err != nil {
		return lot, fmt.Errorf("value: %w", err)
	}
	if lot.Gain, err = ParseMoney(rec.Gain, currency); err != nil {
		return lot, fmt.Errorf("gain: %w", err)
	}
	return lot, nil
}

// DecodeFile reads lots from the cost-basis file at 'path'.
//
// It returns an error wrapping ErrNotReadable if 'path' is not a regular readable file.
func DecodeFile(path string, opts DecodeOptions) (Lots, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is %w", path, ErrNotReadable)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s is %w: %v", path, ErrNotReadable, err)
	}
	defer f.Close()
	return DecodeLots(f, opts)
}

// EncodeLots writes lots as a cost-basis CSV, in the same column order DecodeLots reads.
// A title row and a header row come first so that DefaultDecodeOptions reads it back.
func EncodeLots(w io.Writer, lots Lots) error {
	if _, err := io.WriteString(w, exportTitle+"\n"); err != nil {
		return err
	}
	records := make([]*lotRecord, 0, len(lots))
	for _, l := range lots {
		records = append(records, &lotRecord{
			Symbol:      l.Symbol,
			DisplayName: l.DisplayName,
			Date:        l.Date.String(),
			Cost:        l.Cost.Round().Decimal().StringFixed(2),
			Quantity:    l.Quantity.String(),
			Value:       l.Value.Round().Decimal().StringFixed(2),
			Gain:        l.Gain.Round().Decimal().StringFixed(2),
		})
	}
	return gocsv.Marshal(records, w)
}
