package internal

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nikvst/budget-tracker/internal/logger"
)

// weekDays is the length of the trailing window used by WeekStats, today included.
const weekDays = 7

// MaxDailyDays caps the length of a DailyTotals breakdown.
const MaxDailyDays = 366

// Calculator keeps a daily limit and an append-only list of records.
type Calculator struct {
	limit decimal.Decimal
	clock Clock

	mu      sync.RWMutex
	records []Record
}

type options struct {
	clock Clock
	rates Rates
}

// Option configures any of the calculators. Options a calculator has no use
// for are ignored, e.g. WithRates on a CaloriesCalculator.
type Option func(*options)

// WithClock sets the source of "today". Defaults to time.Now.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now, rates: DefaultRates()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewCalculator(limit decimal.Decimal, opts ...Option) *Calculator {
	return newCalculator(limit, newOptions(opts))
}

func newCalculator(limit decimal.Decimal, o options) *Calculator {
	return &Calculator{
		limit: limit,
		clock: o.clock,
	}
}

func (c *Calculator) Limit() decimal.Decimal {
	return c.limit
}

// AddRecord appends r. Records are not validated or deduplicated.
func (c *Calculator) AddRecord(r Record) {
	c.mu.Lock()
	c.records = append(c.records, r)
	c.mu.Unlock()

	logger.Debug("record added",
		zap.String("amount", r.Amount().String()),
		zap.String("comment", r.Comment()),
		zap.Time("date", r.Date()))
}

// Records returns a copy of the records in insertion order.
func (c *Calculator) Records() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Calculator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// TodayStats sums the amounts of records dated today.
func (c *Calculator) TodayStats() decimal.Decimal {
	return c.sumWithin(1)
}

// WeekStats sums the amounts of records dated within the last seven days,
// today included. Records dated in the future are ignored.
func (c *Calculator) WeekStats() decimal.Decimal {
	return c.sumWithin(weekDays)
}

// Remaining is the limit minus what was recorded today. Negative when overspent.
func (c *Calculator) Remaining() decimal.Decimal {
	return c.limit.Sub(c.TodayStats())
}

// sumWithin sums records whose age in days is in [0, days).
func (c *Calculator) sumWithin(days int) decimal.Decimal {
	today := c.clock()

	c.mu.RLock()
	defer c.mu.RUnlock()

	sum := decimal.Zero
	for _, r := range c.records {
		age := daysBetween(r.Date(), today)
		if age >= 0 && age < days {
			sum = sum.Add(r.Amount())
		}
	}
	return sum
}

// DayTotal is the sum of one day's records.
type DayTotal struct {
	Date  time.Time
	Total decimal.Decimal
	Count int
}

// DailyTotals returns one entry per day for the last days days ending today,
// oldest first. Days without records are included with a zero total.
// days is capped at MaxDailyDays.
func (c *Calculator) DailyTotals(days int) []DayTotal {
	if days <= 0 {
		return nil
	}
	days = min(days, MaxDailyDays)
	today := dayOf(c.clock())

	totals := make([]DayTotal, days)
	for i := range totals {
		totals[i] = DayTotal{
			Date:  today.AddDate(0, 0, i-days+1),
			Total: decimal.Zero,
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.records {
		age := daysBetween(r.Date(), today)
		if age < 0 || age >= days {
			continue
		}
		idx := days - 1 - age
		totals[idx].Total = totals[idx].Total.Add(r.Amount())
		totals[idx].Count++
	}
	return totals
}
