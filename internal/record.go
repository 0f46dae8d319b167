package internal

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DateLayout is the textual form of record dates: DD.MM.YYYY.
const DateLayout = "02.01.2006"

var ErrInvalidDate = errors.New("invalid date")

// Clock returns the current time.
type Clock func() time.Time

// Record is one dated entry of an amount and a comment.
// It is not modified after construction.
type Record struct {
	amount  decimal.Decimal
	comment string
	date    time.Time
}

// NewRecord creates a record dated from text in DateLayout,
// or dated today if date is empty.
func NewRecord(amount decimal.Decimal, comment, date string) (Record, error) {
	return NewRecordWithClock(time.Now, amount, comment, date)
}

// NewRecordWithClock is NewRecord with an explicit source of "today".
func NewRecordWithClock(clock Clock, amount decimal.Decimal, comment, date string) (Record, error) {
	if date == "" {
		return RecordOn(amount, comment, clock()), nil
	}
	d, err := ParseDate(date)
	if err != nil {
		return Record{}, err
	}
	return Record{amount: amount, comment: comment, date: d}, nil
}

// RecordOn creates a record for the day containing t.
func RecordOn(amount decimal.Decimal, comment string, t time.Time) Record {
	return Record{amount: amount, comment: comment, date: dayOf(t)}
}

// ParseDate parses DD.MM.YYYY in the local time zone.
// Impossible calendar dates such as 31.02.2021 are rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q: %v", s, err)
	}
	return t, nil
}

func (r Record) Amount() decimal.Decimal { return r.amount }
func (r Record) Comment() string         { return r.comment }
func (r Record) Date() time.Time         { return r.date }

func dayOf(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// daysBetween returns the number of calendar days from a to b.
// Dates are compared as civil dates so DST changes never shift the result.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ca := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	cb := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(cb.Sub(ca).Hours() / 24)
}
