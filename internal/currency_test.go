package internal

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    Currency
		wantErr bool
	}{
		{"rub", RUB, false},
		{"usd", USD, false},
		{"eur", EUR, false},
		{"USD", USD, false},
		{" Eur ", EUR, false},
		{"gbp", 0, true},
		{"", 0, true},
		{"руб", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCurrency) {
					t.Errorf("ParseCurrency(%q) error = %v, want ErrUnknownCurrency", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCurrency(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCurrency(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCurrencyAttributes(t *testing.T) {
	tests := []struct {
		currency Currency
		token    string
		label    string
		iso      string
	}{
		{RUB, "rub", "руб", "RUB"},
		{USD, "usd", "USD", "USD"},
		{EUR, "eur", "Euro", "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.iso, func(t *testing.T) {
			assert.True(t, tt.currency.Valid())
			assert.Equal(t, tt.token, tt.currency.Token())
			assert.Equal(t, tt.label, tt.currency.Label())
			assert.Equal(t, tt.iso, tt.currency.String())
		})
	}

	assert.False(t, Currency(0).Valid())
	assert.False(t, Currency(42).Valid())
	assert.Equal(t, "Currency(42)", Currency(42).String())
}

func TestCurrencyYAML(t *testing.T) {
	var v struct {
		Currency Currency `yaml:"currency"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("currency: usd\n"), &v))
	assert.Equal(t, USD, v.Currency)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "currency: usd\n", string(out))

	err = yaml.Unmarshal([]byte("currency: yen\n"), &v)
	assert.True(t, errors.Is(err, ErrUnknownCurrency), "got %v", err)
}

func TestRatesRate(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name     string
		rates    Rates
		currency Currency
		want     string
		wantErr  error
	}{
		{"native", rates, RUB, "1", nil},
		{"usd default", rates, USD, "60", nil},
		{"eur default", rates, EUR, "70", nil},
		{"custom usd", Rates{USD: decimal.RequireFromString("92.5"), EUR: DefaultEURRate}, USD, "92.5", nil},
		{"zero usd", Rates{EUR: DefaultEURRate}, USD, "", ErrInvalidRate},
		{"negative eur", Rates{USD: DefaultUSDRate, EUR: decimal.NewFromInt(-1)}, EUR, "", ErrInvalidRate},
		{"zero rate ignored for rub", Rates{}, RUB, "1", nil},
		{"unknown", rates, Currency(9), "", ErrUnknownCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rates.Rate(tt.currency)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRatesValidate(t *testing.T) {
	assert.NoError(t, DefaultRates().Validate())
	assert.True(t, errors.Is(Rates{USD: DefaultUSDRate}.Validate(), ErrInvalidRate))
}

func TestDefaultRatesAreIndependent(t *testing.T) {
	a := DefaultRates()
	a.USD = decimal.NewFromInt(1)
	assert.Equal(t, "60", DefaultRates().USD.String())
}

func TestFormatterNumber(t *testing.T) {
	tests := []struct {
		name   string
		tag    language.Tag
		amount string
		want   string
	}{
		{"english grouping", language.English, "1234.5", "1,234.50"},
		{"rounds half away from zero", language.English, "2.345", "2.35"},
		{"negative", language.English, "-6.666", "-6.67"},
		{"zero", language.English, "0", "0.00"},
		{"german separators", language.German, "1234.5", "1.234,50"},
		{"german negative large", language.German, "-1234567.891", "-1.234.567,89"},
		{"rounding carries into a new group", language.English, "999.995", "1,000.00"},
		{"beyond float64 precision", language.English, "90071992547409.93", "90,071,992,547,409.93"},
		{"seventeen integer digits", language.English, "12345678901234567.89", "12,345,678,901,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.tag)
			got := f.Number(decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Errorf("Number(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatterNumberMatchesFormatAmount(t *testing.T) {
	f := NewFormatter(language.English)
	for _, amount := range []string{"0.005", "-0.005", "123456789012345678901234.565", "1e-9", "7"} {
		d := dec(amount)
		assert.Equal(t, FormatAmount(d), strings.ReplaceAll(f.Number(d), ",", ""), amount)
	}
}

func TestSeparators(t *testing.T) {
	group, fraction := separators(message.NewPrinter(language.English))
	assert.Equal(t, ",", group)
	assert.Equal(t, ".", fraction)

	group, fraction = separators(message.NewPrinter(language.French))
	assert.Equal(t, ",", fraction)
	assert.NotEmpty(t, group)
}

func TestFormatterMoney(t *testing.T) {
	f := NewFormatter(language.English)
	assert.Equal(t, "6.67 USD", f.Money(decimal.RequireFromString("6.6666"), USD))
	assert.Equal(t, "1,000.00 руб", f.Money(decimal.NewFromInt(1000), RUB))
	assert.Equal(t, "5.00 Euro", f.Money(decimal.NewFromInt(5), EUR))
}
