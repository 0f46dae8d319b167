package internal

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/nikvst/budget-tracker/internal/logger"
)

// isoDateLayout is accepted besides DateLayout because spreadsheet date cells
// are often rendered that way.
const isoDateLayout = "2006-01-02"

// ParseXLSX reads records from the first sheet of an Excel file.
// The sheet must have a header row with Date, Amount and Comment columns
// (any order, case-insensitive). Rows with an empty amount are skipped,
// rows with an empty date are dated today.
func ParseXLSX(path string) ([]Record, error) {
	return parseXLSX(path, time.Now)
}

func parseXLSX(path string, clock Clock) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "reading sheet")
	}

	// Find header row and column indices
	dateCol, amountCol, commentCol := -1, -1, -1
	dataStartRow := -1
	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "date":
				dateCol = j
			case "amount":
				amountCol = j
			case "comment":
				commentCol = j
			}
		}
		if dateCol >= 0 && amountCol >= 0 && commentCol >= 0 {
			dataStartRow = i + 1
			break
		}
		dateCol, amountCol, commentCol = -1, -1, -1
	}

	if dataStartRow < 0 {
		return nil, errors.New("could not find required columns (Date, Amount, Comment)")
	}

	var records []Record
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1 // 1-based, as shown by spreadsheet programs

		amountStr := cellAt(row, amountCol)
		if amountStr == "" {
			continue
		}
		amount, err := ParseAmount(amountStr)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", rowNum)
		}

		comment := cellAt(row, commentCol)
		dateStr := cellAt(row, dateCol)
		if dateStr == "" {
			records = append(records, RecordOn(amount, comment, clock()))
			continue
		}
		date, err := parseSheetDate(dateStr)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", rowNum)
		}
		records = append(records, RecordOn(amount, comment, date))
	}

	logger.Info("loaded records", zap.String("format", "xlsx"), zap.String("path", path), zap.Int("count", len(records)))
	return records, nil
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func parseSheetDate(s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err == nil {
		return t, nil
	}
	if iso, isoErr := time.ParseInLocation(isoDateLayout, s, time.Local); isoErr == nil {
		return iso, nil
	}
	return time.Time{}, err
}

func init() {
	RegisterParser("xlsx", ParserFunc(ParseXLSX), ".xlsx")
}
