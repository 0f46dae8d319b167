package internal

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is one of the currencies a cash report can be rendered in.
// RUB is the native currency: limits and record amounts are kept in it.
type Currency int

const (
	RUB Currency = iota + 1
	USD
	EUR
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidRate     = errors.New("invalid exchange rate")
)

// Default exchange rates, in native units per one unit of the foreign currency.
var (
	DefaultUSDRate = decimal.NewFromInt(60)
	DefaultEURRate = decimal.NewFromInt(70)
)

type currencyInfo struct {
	token string
	label string
	iso   string
}

var currencies = map[Currency]currencyInfo{
	RUB: {token: "rub", label: "руб", iso: "RUB"},
	USD: {token: "usd", label: "USD", iso: "USD"},
	EUR: {token: "eur", label: "Euro", iso: "EUR"},
}

// Currencies lists the supported currencies in a stable order.
func Currencies() []Currency {
	return []Currency{RUB, USD, EUR}
}

// ParseCurrency maps a token such as "usd" (case-insensitive) to a Currency.
func ParseCurrency(token string) (Currency, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, c := range Currencies() {
		if currencies[c].token == t {
			return c, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownCurrency, "%q", token)
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	_, ok := currencies[c]
	return ok
}

// Token returns the short selector used on the command line and in config files.
func (c Currency) Token() string {
	return currencies[c].token
}

// Label returns the name used in report messages.
func (c Currency) Label() string {
	return currencies[c].label
}

// ISO returns the ISO 4217 code.
func (c Currency) ISO() string {
	return currencies[c].iso
}

func (c Currency) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Currency(%d)", int(c))
	}
	return c.ISO()
}

// MarshalText lets currencies appear as tokens in YAML and JSON.
func (c Currency) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.Wrapf(ErrUnknownCurrency, "%d", int(c))
	}
	return []byte(c.Token()), nil
}

func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Rates holds the exchange rates for the foreign currencies.
type Rates struct {
	USD decimal.Decimal `yaml:"usd" json:"usd"`
	EUR decimal.Decimal `yaml:"eur" json:"eur"`
}

// DefaultRates returns a fresh Rates value with the default rates.
func DefaultRates() Rates {
	return Rates{USD: DefaultUSDRate, EUR: DefaultEURRate}
}

// Rate returns how many native units one unit of c is worth.
func (r Rates) Rate(c Currency) (decimal.Decimal, error) {
	var rate decimal.Decimal
	switch c {
	case RUB:
		return decimal.NewFromInt(1), nil
	case USD:
		rate = r.USD
	case EUR:
		rate = r.EUR
	default:
		return decimal.Zero, errors.Wrapf(ErrUnknownCurrency, "%d", int(c))
	}
	if !rate.IsPositive() {
		return decimal.Zero, errors.Wrapf(ErrInvalidRate, "%s rate %s", c.ISO(), rate)
	}
	return rate, nil
}

// Validate checks that every foreign rate is positive.
func (r Rates) Validate() error {
	for _, c := range Currencies() {
		if _, err := r.Rate(c); err != nil {
			return err
		}
	}
	return nil
}

// Formatter renders amounts for tables using the number conventions of a locale.
// Only the separators come from the locale; digits are never converted to
// floating point.
type Formatter struct {
	tag      language.Tag
	group    string
	fraction string
}

// NewFormatter returns a Formatter for the given locale.
func NewFormatter(tag language.Tag) Formatter {
	group, fraction := separators(message.NewPrinter(tag))
	return Formatter{tag: tag, group: group, fraction: fraction}
}

// NewSystemFormatter uses the locale detected from the environment, falling back to English.
func NewSystemFormatter() Formatter {
	tag := DetectSystemLocale()
	if tag == language.Und {
		tag = language.English
	}
	return NewFormatter(tag)
}

// separators reads the grouping and decimal separators of p by formatting a
// sample number, 1<group>234<group>567<fraction>5. Locales whose output does
// not have that shape, e.g. with non-Latin digits, get "," and ".".
func separators(p *message.Printer) (group, fraction string) {
	s := p.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	i := strings.Index(s, "234")
	j := strings.Index(s, "567")
	if !strings.HasPrefix(s, "1") || i < 1 || j < i+3 || !strings.HasSuffix(s, "5") || len(s)-1 <= j+3 {
		return ",", "."
	}
	if s[i+3:j] != s[1:i] {
		return ",", "."
	}
	return s[1:i], s[j+3 : len(s)-1]
}

// Number formats d with grouping and exactly two fraction digits, rounded
// half away from zero like FormatAmount.
func (f Formatter) Number(d decimal.Decimal) string {
	s := FormatAmount(d)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(digit)
	}
	b.WriteString(f.fraction)
	b.WriteString(fracPart)
	return b.String()
}

// Money formats d followed by the label of c.
func (f Formatter) Money(d decimal.Decimal, c Currency) string {
	return f.Number(d) + " " + c.Label()
}
