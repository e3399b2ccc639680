package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// largeAmountThreshold triggers the LARGE_TRANSACTION advisory when the
// absolute base amount exceeds it.
var largeAmountThreshold = decimal.NewFromInt(10000)

// timestampFormats is the ordered list of accepted timestamp layouts. The
// first successful parse wins.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006", // MM/DD/YYYY
	"02-01-2006", // DD-MM-YYYY
}

// ParseRecord converts one raw row, keyed by canonical column name, into a
// validated Transaction. rowNum is the 1-based source row (header included).
// Exactly one of the transaction and the error is meaningful; a succeeding
// row may additionally carry at most one warning.
func ParseRecord(row map[string]string, rowNum int) (model.Transaction, *model.IngestError, *model.IngestWarning) {
	var txn model.Transaction

	timestamp, err := parseTimestamp(row[FieldTimestamp])
	if err != nil {
		return txn, &model.IngestError{
			Kind:    model.ErrInvalidDataType,
			Row:     rowNum,
			Column:  FieldTimestamp,
			Message: fmt.Sprintf("unparseable timestamp %q", row[FieldTimestamp]),
		}, nil
	}

	amount, err := parseAmount(row[FieldAmount])
	if err != nil {
		return txn, &model.IngestError{
			Kind:    model.ErrInvalidDataType,
			Row:     rowNum,
			Column:  FieldAmount,
			Message: fmt.Sprintf("unparseable amount %q", row[FieldAmount]),
		}, nil
	}

	// Required text fields, checked in a fixed order so the first blank one
	// is the one reported.
	for _, field := range []string{FieldType, FieldDescription, FieldStatus, FieldCard, FieldCardHolder} {
		if strings.TrimSpace(row[field]) == "" {
			return txn, &model.IngestError{
				Kind:    model.ErrValidationFailed,
				Row:     rowNum,
				Column:  field,
				Message: fmt.Sprintf("required field %q is blank", field),
			}, nil
		}
	}

	txn = model.Transaction{
		Timestamp:   timestamp,
		Type:        strings.TrimSpace(row[FieldType]),
		Description: strings.TrimSpace(row[FieldDescription]),
		Status:      strings.TrimSpace(row[FieldStatus]),
		Amount:      amount,
		Card:        strings.TrimSpace(row[FieldCard]),
		CardHolder:  strings.TrimSpace(row[FieldCardHolder]),
	}

	// Optional numerics: present-but-unparseable degrades to absent.
	if orig, err := parseAmount(row[FieldOriginalAmount]); err == nil && strings.TrimSpace(row[FieldOriginalAmount]) != "" {
		txn.OriginalAmount = &orig
	}
	txn.OriginalCurrency = strings.TrimSpace(row[FieldOriginalCurrency])
	if cb, err := parseAmount(row[FieldCashback]); err == nil && strings.TrimSpace(row[FieldCashback]) != "" {
		txn.Cashback = &cb
	}

	txn.Category = strings.TrimSpace(row[FieldCategory])
	if txn.Category == "" {
		txn.Category = model.Uncategorized
		return txn, nil, &model.IngestWarning{
			Kind:    model.WarnMissingCategory,
			Row:     rowNum,
			Column:  FieldCategory,
			Message: fmt.Sprintf("no category supplied, defaulted to %q", model.Uncategorized),
		}
	}

	// One warning per row: the missing-category case returned above takes
	// precedence, then an unpaired original amount/currency, then the
	// large-amount advisory.
	if (txn.OriginalAmount == nil) != (txn.OriginalCurrency == "") {
		column := FieldOriginalAmount
		if txn.OriginalAmount != nil {
			column = FieldOriginalCurrency
		}
		return txn, nil, &model.IngestWarning{
			Kind:    model.WarnMissingOptionalField,
			Row:     rowNum,
			Column:  column,
			Message: "original amount and original currency should be supplied together",
		}
	}
	if txn.Amount.Abs().GreaterThan(largeAmountThreshold) {
		return txn, nil, &model.IngestWarning{
			Kind:    model.WarnLargeTransaction,
			Row:     rowNum,
			Column:  FieldAmount,
			Message: fmt.Sprintf("unusually large amount %s", txn.Amount),
		}
	}

	return txn, nil, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampFormats {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("no accepted format matched %q", value)
}

// amountCleaner strips currency symbols, thousands separators, and interior
// whitespace before decimal parsing.
var amountCleaner = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", ",", "", " ", "", "\t", "")

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(cleaned)
}
