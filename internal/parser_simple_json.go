package internal

import (
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nikvst/budget-tracker/internal/logger"
)

// SimpleJSONFormat is a minimal JSON format for importing records
// Example:
//
//	{
//	  "records": [
//	    {"amount": "500", "comment": "lunch", "date": "17.10.2026"},
//	    {"amount": 120.5, "comment": "coffee"}
//	  ]
//	}
//
// Records without a date are dated today.
type SimpleJSONFormat struct {
	Records []SimpleJSONRecord `json:"records"`
}

type SimpleJSONRecord struct {
	Amount  *decimal.Decimal `json:"amount"`         // number or string, required
	Comment string           `json:"comment"`
	Date    string           `json:"date,omitempty"` // DD.MM.YYYY
}

// ParseSimpleJSON parses a JSON file in the simple JSON format
func ParseSimpleJSON(path string) ([]Record, error) {
	return parseSimpleJSON(path, time.Now)
}

func parseSimpleJSON(path string, clock Clock) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	var jsonData SimpleJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}

	records := make([]Record, 0, len(jsonData.Records))
	for i, r := range jsonData.Records {
		if r.Amount == nil {
			return nil, errors.Wrapf(ErrInvalidAmount, "record %d: missing amount", i+1)
		}
		rec, err := NewRecordWithClock(clock, *r.Amount, r.Comment, r.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i+1)
		}
		records = append(records, rec)
	}

	logger.Info("loaded records", zap.String("format", "simple-json"), zap.String("path", path), zap.Int("count", len(records)))
	return records, nil
}

func init() {
	RegisterParser("simple-json", ParserFunc(ParseSimpleJSON), ".json")
}
