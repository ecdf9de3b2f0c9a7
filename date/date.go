// Package date implements a day granularity date, the only time resolution
// a tax lot needs.
package date

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// EnvTestingNow overrides the current time, mostly for documentation tests.
// Its value uses the "2006-01-02 15:04:05" layout.
const EnvTestingNow = "COSTBASIS_TESTING_NOW"

// readDateFormats are the layouts accepted by Parse, in order.
// Brokers export either ISO dates or US style month/day/year dates.
var readDateFormats = []string{
	"2006-1-2", // permissive ISO (allows single-digit month/day)
	"1/2/2006",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/06",
}

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Sub returns the number of days between x and d.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / (24 * time.Hour)) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Today returns the current date.
func Today() Date { return New(now().Date()) }

func now() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		if t, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return t
		}
	}
	return time.Now()
}

// Parse parses a Date from a string. It is lenient and accepts formats like
// "2025-7-1" or "7/1/2025".
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	for _, layout := range readDateFormats {
		if on, err := time.Parse(layout, str); err == nil {
			return New(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", str, readDateFormats[0])
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
