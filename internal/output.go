package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Kind selects which calculator a report is built from.
type Kind string

const (
	KindCash     Kind = "cash"
	KindCalories Kind = "calories"
)

const caloriesUnit = "kcal"

var ErrUnknownKind = errors.New("unknown kind")

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCash, KindCalories:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q (available: cash, calories)", s)
}

// Report is a snapshot of a calculator's statistics.
// Limit, Today, Week and Daily are in native units (roubles or calories);
// Remaining is in the report currency.
type Report struct {
	Kind      Kind
	Currency  Currency // zero for calories
	Limit     decimal.Decimal
	Today     decimal.Decimal
	Week      decimal.Decimal
	Remaining decimal.Decimal
	Message   string
	Daily     []DayTotal
}

// NewCashReport builds a report for c with remaining cash converted to cur.
func NewCashReport(c *CashCalculator, cur Currency, days int) (Report, error) {
	remaining, err := c.RemainingIn(cur, c.Rates())
	if err != nil {
		return Report{}, err
	}
	return Report{
		Kind:      KindCash,
		Currency:  cur,
		Limit:     c.Limit(),
		Today:     c.TodayStats(),
		Week:      c.WeekStats(),
		Remaining: remaining,
		Message:   cashMessage(remaining, cur),
		Daily:     c.DailyTotals(days),
	}, nil
}

func NewCaloriesReport(c *CaloriesCalculator, days int) Report {
	return Report{
		Kind:      KindCalories,
		Limit:     c.Limit(),
		Today:     c.TodayStats(),
		Week:      c.WeekStats(),
		Remaining: c.Remaining(),
		Message:   c.CaloriesRemained(),
		Daily:     c.DailyTotals(days),
	}
}

func (r Report) title() string {
	if r.Kind == KindCalories {
		return "Calories today"
	}
	return "Cash today"
}

// JSONReport is the JSON output format for a report. Amounts are strings
// with two fraction digits so no precision is lost in transit.
type JSONReport struct {
	Kind      string         `json:"kind"`
	Currency  string         `json:"currency,omitempty"`
	Limit     string         `json:"limit"`
	Today     string         `json:"today"`
	Week      string         `json:"week"`
	Remaining string         `json:"remaining"`
	Message   string         `json:"message"`
	Daily     []JSONDayTotal `json:"daily,omitempty"`
}

type JSONDayTotal struct {
	Date  string `json:"date"` // DD.MM.YYYY
	Total string `json:"total"`
	Count int    `json:"count"`
}

// PrintReportJSON outputs the report in JSON format
func PrintReportJSON(w io.Writer, r Report) error {
	out := JSONReport{
		Kind:      string(r.Kind),
		Limit:     FormatAmount(r.Limit),
		Today:     FormatAmount(r.Today),
		Week:      FormatAmount(r.Week),
		Remaining: FormatAmount(r.Remaining),
		Message:   r.Message,
	}
	if r.Currency.Valid() {
		out.Currency = r.Currency.Token()
	}
	for _, d := range r.Daily {
		out.Daily = append(out.Daily, JSONDayTotal{
			Date:  d.Date.Format(DateLayout),
			Total: FormatAmount(d.Total),
			Count: d.Count,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encoding report")
	}
	return nil
}

// PrintReportTable outputs the report as a summary table followed by the
// daily breakdown, if any.
func PrintReportTable(w io.Writer, r Report, f Formatter) {
	native := func(d decimal.Decimal) string {
		if r.Kind == KindCalories {
			return f.Number(d) + " " + caloriesUnit
		}
		return f.Money(d, RUB)
	}
	remaining := native(r.Remaining)
	if r.Kind == KindCash {
		remaining = f.Money(r.Remaining, r.Currency)
	}
	if r.Remaining.IsNegative() {
		remaining = text.FgRed.Sprint(remaining)
	} else {
		remaining = text.FgGreen.Sprint(remaining)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(r.title())
	t.AppendRows([]table.Row{
		{"Limit", native(r.Limit)},
		{"Today", native(r.Today)},
		{"Last 7 days", native(r.Week)},
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{text.Bold.Sprint("Remaining"), remaining})
	t.AppendFooter(table.Row{r.Message, r.Message}, table.RowConfig{AutoMerge: true})
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()

	if len(r.Daily) == 0 {
		return
	}

	fmt.Fprintln(w)
	d := table.NewWriter()
	d.SetOutputMirror(w)
	d.AppendHeader(table.Row{"Date", "Records", "Total"})
	var sum decimal.Decimal
	for _, day := range r.Daily {
		total := native(day.Total)
		if day.Count == 0 {
			total = text.FgHiBlack.Sprint(total)
		}
		d.AppendRow(table.Row{day.Date.Format(DateLayout), day.Count, total})
		sum = sum.Add(day.Total)
	}
	d.AppendSeparator()
	d.AppendFooter(table.Row{"", text.Bold.Sprint("Total"), text.Bold.Sprint(native(sum))})
	d.SetStyle(table.StyleRounded)
	d.Style().Format.Header = text.FormatDefault
	d.Style().Format.Footer = text.FormatDefault
	d.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	d.Render()
}
