// Package export serializes a transaction collection back into delimited
// text. Output from the default configuration re-ingests to an equivalent
// collection.
package export

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// DateFormat selects how timestamps are rendered.
type DateFormat string

// Accepted date styles.
const (
	// DateFormatTimestamp renders the full timestamp with UTC offset. This
	// is the only style the ingestion pipeline can parse back losslessly.
	DateFormatTimestamp DateFormat = "timestamp"
	// DateFormatShort renders M/D/YYYY.
	DateFormatShort DateFormat = "short"
	// DateFormatLong renders the long human style, e.g. "January 15, 2024".
	DateFormatLong DateFormat = "long"
)

// Column identifies one exportable transaction field.
type Column string

// Exportable columns, in canonical order.
const (
	ColumnTimestamp        Column = "timestamp"
	ColumnType             Column = "type"
	ColumnDescription      Column = "description"
	ColumnStatus           Column = "status"
	ColumnAmount           Column = "amount"
	ColumnCard             Column = "card"
	ColumnCardHolder       Column = "card holder"
	ColumnOriginalAmount   Column = "original amount"
	ColumnOriginalCurrency Column = "original currency"
	ColumnCashback         Column = "cashback"
	ColumnCategory         Column = "category"
)

// DefaultColumns is the full canonical column set in export order.
var DefaultColumns = []Column{
	ColumnTimestamp,
	ColumnType,
	ColumnDescription,
	ColumnStatus,
	ColumnAmount,
	ColumnCard,
	ColumnCardHolder,
	ColumnOriginalAmount,
	ColumnOriginalCurrency,
	ColumnCashback,
	ColumnCategory,
}

// columnHeaders maps each column to its human-readable header. The headers
// normalize back to the canonical ingest columns, which is what makes the
// round trip through the pipeline work.
var columnHeaders = map[Column]string{
	ColumnTimestamp:        "timestamp",
	ColumnType:             "type",
	ColumnDescription:      "description",
	ColumnStatus:           "status",
	ColumnAmount:           "amount USD",
	ColumnCard:             "card",
	ColumnCardHolder:       "card holder name",
	ColumnOriginalAmount:   "original amount",
	ColumnOriginalCurrency: "original currency",
	ColumnCashback:         "cashback earned",
	ColumnCategory:         "category",
}

// Config controls one serialization.
type Config struct {
	Columns    []Column
	Header     bool
	DateFormat DateFormat
	Filename   string
}

// DefaultConfig returns the full column set with a header row, lossless date
// style, and a date-stamped filename.
func DefaultConfig() Config {
	return Config{
		Columns:    DefaultColumns,
		Header:     true,
		DateFormat: DateFormatTimestamp,
		Filename:   DefaultFilename(time.Now()),
	}
}

// DefaultFilename returns the date-stamped export filename for the given day.
func DefaultFilename(now time.Time) string {
	return "transactions-" + now.Format("2006-01-02") + ".csv"
}

// Serialize renders the collection as UTF-8 delimited text with a leading
// byte-order mark for spreadsheet-tool compatibility. Numbers are plain
// decimal text; absent optional fields are empty; quoting follows the
// standard delimited-text rules.
func Serialize(transactions []model.Transaction, cfg Config) []byte {
	columns := cfg.Columns
	if len(columns) == 0 {
		columns = DefaultColumns
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	w := csv.NewWriter(&buf)

	if cfg.Header {
		header := make([]string, len(columns))
		for i, c := range columns {
			header[i] = columnHeaders[c]
		}
		_ = w.Write(header)
	}

	record := make([]string, len(columns))
	for _, t := range transactions {
		for i, c := range columns {
			record[i] = renderField(t, c, cfg.DateFormat)
		}
		_ = w.Write(record)
	}

	w.Flush()
	return buf.Bytes()
}

func renderField(t model.Transaction, c Column, style DateFormat) string {
	switch c {
	case ColumnTimestamp:
		return renderDate(t.Timestamp, style)
	case ColumnType:
		return t.Type
	case ColumnDescription:
		return t.Description
	case ColumnStatus:
		return t.Status
	case ColumnAmount:
		return t.Amount.String()
	case ColumnCard:
		return t.Card
	case ColumnCardHolder:
		return t.CardHolder
	case ColumnOriginalAmount:
		if t.OriginalAmount == nil {
			return ""
		}
		return t.OriginalAmount.String()
	case ColumnOriginalCurrency:
		return t.OriginalCurrency
	case ColumnCashback:
		if t.Cashback == nil {
			return ""
		}
		return t.Cashback.String()
	case ColumnCategory:
		return t.Category
	}
	return ""
}

func renderDate(ts time.Time, style DateFormat) string {
	switch style {
	case DateFormatShort:
		return ts.Format("1/2/2006")
	case DateFormatLong:
		return ts.Format("January 2, 2006")
	default:
		return ts.Format(time.RFC3339)
	}
}
