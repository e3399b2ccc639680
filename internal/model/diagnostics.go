package model

import "fmt"

// ErrorKind classifies ingestion failures. The set is closed; every failure
// the pipeline can report maps to exactly one of these.
type ErrorKind string

// Ingestion error kinds.
const (
	ErrMissingColumn    ErrorKind = "MISSING_COLUMN"
	ErrInvalidDataType  ErrorKind = "INVALID_DATA_TYPE"
	ErrValidationFailed ErrorKind = "VALIDATION_FAILED"
	ErrEmptyFile        ErrorKind = "EMPTY_FILE"
)

// WarningKind classifies non-blocking ingestion advisories.
type WarningKind string

// Ingestion warning kinds.
const (
	WarnMissingCategory      WarningKind = "MISSING_CATEGORY"
	WarnMissingOptionalField WarningKind = "MISSING_OPTIONAL_FIELD"
	WarnLargeTransaction     WarningKind = "LARGE_TRANSACTION"
	WarnDuplicateTransaction WarningKind = "DUPLICATE_TRANSACTION"
	WarnRowLimitExceeded     WarningKind = "ROW_LIMIT_EXCEEDED"
)

// IngestError is one structured ingestion failure. Row is the 1-based source
// row including the header (so the first data row is 2); 0 means the error is
// file-level. Column names the offending canonical column when applicable.
type IngestError struct {
	Kind    ErrorKind
	Row     int
	Column  string
	Message string
}

func (e IngestError) String() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s: %s", e.Row, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IngestWarning is one non-blocking ingestion advisory. Row and Column follow
// the same conventions as IngestError.
type IngestWarning struct {
	Kind    WarningKind
	Row     int
	Column  string
	Message string
}

func (w IngestWarning) String() string {
	if w.Row > 0 {
		return fmt.Sprintf("row %d: %s: %s", w.Row, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
