package internal

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const noMoneyMessage = "No money left, hold on"

// CashCalculator tracks spending against a daily limit kept in the native currency.
type CashCalculator struct {
	*Calculator
	rates Rates
}

// WithRates replaces the default exchange rates of a CashCalculator.
func WithRates(r Rates) Option {
	return func(o *options) {
		o.rates = r
	}
}

func NewCashCalculator(limit decimal.Decimal, opts ...Option) *CashCalculator {
	o := newOptions(opts)
	return &CashCalculator{
		Calculator: newCalculator(limit, o),
		rates:      o.rates,
	}
}

func (c *CashCalculator) Rates() Rates {
	return c.rates
}

// TodayCashRemained reports today's remaining allowance converted to cur
// with the calculator's rates.
func (c *CashCalculator) TodayCashRemained(cur Currency) (string, error) {
	return c.TodayCashRemainedWithRates(cur, c.rates)
}

// TodayCashRemainedWithRates is TodayCashRemained with caller supplied rates.
func (c *CashCalculator) TodayCashRemainedWithRates(cur Currency, rates Rates) (string, error) {
	remaining, err := c.RemainingIn(cur, rates)
	if err != nil {
		return "", err
	}
	return cashMessage(remaining, cur), nil
}

// RemainingIn converts today's remaining allowance to cur. The result is not rounded.
func (c *CashCalculator) RemainingIn(cur Currency, rates Rates) (decimal.Decimal, error) {
	if !cur.Valid() {
		return decimal.Zero, errors.Wrapf(ErrUnknownCurrency, "%d", int(cur))
	}
	rate, err := rates.Rate(cur)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "converting remaining cash")
	}
	return c.Remaining().Div(rate), nil
}

func cashMessage(remaining decimal.Decimal, cur Currency) string {
	switch remaining.Sign() {
	case 1:
		return fmt.Sprintf("Left for today: %s %s", FormatAmount(remaining), cur.Label())
	case 0:
		return noMoneyMessage
	default:
		return fmt.Sprintf("%s: your debt is %s %s", noMoneyMessage, FormatAmount(remaining.Abs()), cur.Label())
	}
}
