package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// Default pipeline limits.
const (
	DefaultMaxFileSize = 10 << 20 // 10 MiB
	DefaultMaxRows     = 10000    // advisory only, never rejects
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Config controls one ingestion run.
type Config struct {
	// MaxFileSize is the hard byte-size bound; larger inputs are rejected
	// without parsing. Zero means DefaultMaxFileSize.
	MaxFileSize int64
	// MaxRows is the soft row bound; exceeding it appends an advisory
	// warning. Zero means DefaultMaxRows.
	MaxRows int
	// Strict promotes all accumulated warnings to errors and discards the
	// accumulated transactions entirely.
	Strict bool
	// DetectDuplicates fingerprints each accepted transaction and warns on
	// repeat occurrences. Duplicates are kept, not dropped.
	DetectDuplicates bool
	// Progress, when set, is invoked after each data row.
	Progress func(done, total int)
}

// DefaultConfig returns the standard limits with strict mode and duplicate
// detection off.
func DefaultConfig() Config {
	return Config{MaxFileSize: DefaultMaxFileSize, MaxRows: DefaultMaxRows}
}

// Result is the complete outcome of one ingestion run. Failure never
// propagates as a Go error; everything is reported here.
type Result struct {
	Transactions []model.Transaction
	Errors       []model.IngestError
	Warnings     []model.IngestWarning
}

// Ingest validates and parses one delimited-text export. File-level problems
// abort with zero transactions; row-level problems exclude only their row.
func Ingest(data []byte, filename string, cfg Config) Result {
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.MaxRows == 0 {
		cfg.MaxRows = DefaultMaxRows
	}

	var result Result

	if int64(len(data)) > cfg.MaxFileSize {
		result.Errors = append(result.Errors, model.IngestError{
			Kind:    model.ErrValidationFailed,
			Message: fmt.Sprintf("file size %d exceeds maximum of %d bytes", len(data), cfg.MaxFileSize),
		})
		return result
	}
	if !looksDelimited(data, filename) {
		result.Errors = append(result.Errors, model.IngestError{
			Kind:    model.ErrValidationFailed,
			Message: fmt.Sprintf("%q does not look like a delimited text file", filename),
		})
		return result
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, model.IngestError{
			Kind:    model.ErrValidationFailed,
			Message: fmt.Sprintf("unreadable delimited text: %v", err),
		})
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, model.IngestError{
			Kind:    model.ErrEmptyFile,
			Message: "file contains no rows",
		})
		return result
	}

	dataRows := records[1:]
	if countNonBlank(dataRows) == 0 {
		result.Errors = append(result.Errors, model.IngestError{
			Kind:    model.ErrEmptyFile,
			Message: "file contains a header but no data rows",
		})
		return result
	}

	// Resolve the header once; rows are accessed by canonical name only.
	columns := make(map[string]int, len(records[0]))
	for i, raw := range records[0] {
		name := NormalizeHeader(raw)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			result.Errors = append(result.Errors, model.IngestError{
				Kind:    model.ErrMissingColumn,
				Column:  field,
				Message: fmt.Sprintf("required column %q not found", field),
			})
		}
	}
	if len(result.Errors) > 0 {
		return result
	}

	seen := make(map[string]int)
	for i, record := range dataRows {
		rowNum := i + 2 // 1-based, plus the header row
		if isBlankRow(record) {
			continue
		}

		row := make(map[string]string, len(columns))
		for name, pos := range columns {
			if pos < len(record) {
				row[name] = record[pos]
			}
		}

		txn, rowErr, rowWarn := ParseRecord(row, rowNum)
		switch {
		case rowErr != nil:
			result.Errors = append(result.Errors, *rowErr)
		default:
			if rowWarn != nil {
				result.Warnings = append(result.Warnings, *rowWarn)
			}
			if cfg.DetectDuplicates {
				fp := txn.Fingerprint()
				if firstRow, dup := seen[fp]; dup {
					result.Warnings = append(result.Warnings, model.IngestWarning{
						Kind:    model.WarnDuplicateTransaction,
						Row:     rowNum,
						Message: fmt.Sprintf("possible duplicate of row %d", firstRow),
					})
				} else {
					seen[fp] = rowNum
				}
			}
			result.Transactions = append(result.Transactions, txn)
		}

		if cfg.Progress != nil {
			cfg.Progress(i+1, len(dataRows))
		}
	}

	if len(result.Transactions) > cfg.MaxRows {
		result.Warnings = append(result.Warnings, model.IngestWarning{
			Kind:    model.WarnRowLimitExceeded,
			Message: fmt.Sprintf("%d transactions exceeds the advisory limit of %d; reports may be slow", len(result.Transactions), cfg.MaxRows),
		})
	}

	if cfg.Strict && len(result.Warnings) > 0 {
		for _, w := range result.Warnings {
			result.Errors = append(result.Errors, model.IngestError{
				Kind:    model.ErrValidationFailed,
				Row:     w.Row,
				Column:  w.Column,
				Message: fmt.Sprintf("strict mode: %s: %s", w.Kind, w.Message),
			})
		}
		result.Warnings = nil
		result.Transactions = nil
	}

	slog.Info("Ingested CSV file",
		"file", filename,
		"transactions", len(result.Transactions),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))

	return result
}

// looksDelimited applies the cheap pre-parse gate: a plausible extension on
// the filename hint and no binary content.
func looksDelimited(data []byte, filename string) bool {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && ext != ".csv" && ext != ".txt" {
		return false
	}
	return !bytes.ContainsRune(data, 0)
}

func isBlankRow(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func countNonBlank(records [][]string) int {
	n := 0
	for _, record := range records {
		if !isBlankRow(record) {
			n++
		}
	}
	return n
}
