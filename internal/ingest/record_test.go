package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledgerlens/internal/model"
)

func validRow() map[string]string {
	return map[string]string{
		FieldTimestamp:   "2024-01-15",
		FieldType:        "purchase",
		FieldDescription: "Coffee Shop",
		FieldStatus:      "completed",
		FieldAmount:      "-4.50",
		FieldCard:        "1234",
		FieldCardHolder:  "Jane Doe",
		FieldCashback:    "0.05",
		FieldCategory:    "Dining",
	}
}

func TestParseRecord_Valid(t *testing.T) {
	txn, parseErr, warn := ParseRecord(validRow(), 2)
	require.Nil(t, parseErr)
	require.Nil(t, warn)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), txn.Timestamp)
	assert.Equal(t, "purchase", txn.Type)
	assert.Equal(t, "Coffee Shop", txn.Description)
	assert.Equal(t, "completed", txn.Status)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("-4.50")))
	assert.Equal(t, "1234", txn.Card)
	assert.Equal(t, "Jane Doe", txn.CardHolder)
	require.NotNil(t, txn.Cashback)
	assert.True(t, txn.Cashback.Equal(decimal.RequireFromString("0.05")))
	assert.Equal(t, "Dining", txn.Category)
}

func TestParseRecord_TimestampFormats(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso date", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"iso date-time", "2024-01-15T13:45:00", time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)},
		{"iso with offset", "2024-01-15T13:45:00Z", time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)},
		{"space separated", "2024-01-15 13:45:00", time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)},
		{"us slashes", "01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"european dashes", "15-01-2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			row[FieldTimestamp] = tt.raw
			txn, parseErr, _ := ParseRecord(row, 2)
			require.Nil(t, parseErr)
			assert.True(t, tt.want.Equal(txn.Timestamp), "got %s", txn.Timestamp)
		})
	}
}

func TestParseRecord_UnparseableTimestamp(t *testing.T) {
	row := validRow()
	row[FieldTimestamp] = "sometime last week"

	_, parseErr, warn := ParseRecord(row, 7)
	require.NotNil(t, parseErr)
	assert.Nil(t, warn)
	assert.Equal(t, model.ErrInvalidDataType, parseErr.Kind)
	assert.Equal(t, FieldTimestamp, parseErr.Column)
	assert.Equal(t, 7, parseErr.Row)
}

func TestParseRecord_AmountCleaning(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1234.56", "1234.56"},
		{"$1,234.56", "1234.56"},
		{"-4.50", "-4.50"},
		{" €99.00 ", "99.00"},
		{"1 234,56", "123456"}, // separators stripped, not locale-aware
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			row := validRow()
			row[FieldAmount] = tt.raw
			txn, parseErr, _ := ParseRecord(row, 2)
			require.Nil(t, parseErr)
			assert.True(t, txn.Amount.Equal(decimal.RequireFromString(tt.want)),
				"got %s want %s", txn.Amount, tt.want)
		})
	}
}

func TestParseRecord_UnparseableAmount(t *testing.T) {
	row := validRow()
	row[FieldAmount] = "four dollars"

	_, parseErr, _ := ParseRecord(row, 3)
	require.NotNil(t, parseErr)
	assert.Equal(t, model.ErrInvalidDataType, parseErr.Kind)
	assert.Equal(t, FieldAmount, parseErr.Column)
}

func TestParseRecord_BlankRequiredFields(t *testing.T) {
	for _, field := range []string{FieldType, FieldDescription, FieldStatus, FieldCard, FieldCardHolder} {
		t.Run(field, func(t *testing.T) {
			row := validRow()
			row[field] = "   "

			_, parseErr, warn := ParseRecord(row, 4)
			require.NotNil(t, parseErr)
			assert.Nil(t, warn)
			assert.Equal(t, model.ErrValidationFailed, parseErr.Kind)
			assert.Equal(t, field, parseErr.Column)
			assert.Equal(t, 4, parseErr.Row)
		})
	}
}

func TestParseRecord_UnparseableOptionalFieldsDegradeToAbsent(t *testing.T) {
	row := validRow()
	row[FieldOriginalAmount] = "??"
	row[FieldCashback] = "lots"

	txn, parseErr, _ := ParseRecord(row, 2)
	require.Nil(t, parseErr)
	assert.Nil(t, txn.OriginalAmount)
	assert.Nil(t, txn.Cashback)
}

func TestParseRecord_MissingCategory(t *testing.T) {
	row := validRow()
	row[FieldCategory] = "  "

	txn, parseErr, warn := ParseRecord(row, 5)
	require.Nil(t, parseErr)
	require.NotNil(t, warn)
	assert.Equal(t, model.Uncategorized, txn.Category)
	assert.Equal(t, model.WarnMissingCategory, warn.Kind)
	assert.Equal(t, 5, warn.Row)
}

func TestParseRecord_LargeTransactionWarning(t *testing.T) {
	row := validRow()
	row[FieldAmount] = "-15000.00"

	txn, parseErr, warn := ParseRecord(row, 2)
	require.Nil(t, parseErr)
	require.NotNil(t, warn)
	assert.Equal(t, model.WarnLargeTransaction, warn.Kind)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("-15000.00")))
}

func TestParseRecord_ExactThresholdIsNotLarge(t *testing.T) {
	row := validRow()
	row[FieldAmount] = "10000"

	_, parseErr, warn := ParseRecord(row, 2)
	require.Nil(t, parseErr)
	assert.Nil(t, warn)
}

func TestParseRecord_MissingCategoryOutranksLargeAmount(t *testing.T) {
	row := validRow()
	row[FieldAmount] = "25000"
	row[FieldCategory] = ""

	txn, parseErr, warn := ParseRecord(row, 2)
	require.Nil(t, parseErr)
	require.NotNil(t, warn)
	assert.Equal(t, model.WarnMissingCategory, warn.Kind)
	assert.Equal(t, model.Uncategorized, txn.Category)
}

func TestParseRecord_UnpairedOriginalCurrency(t *testing.T) {
	row := validRow()
	row[FieldOriginalCurrency] = "EUR"

	txn, parseErr, warn := ParseRecord(row, 2)
	require.Nil(t, parseErr)
	require.NotNil(t, warn)
	assert.Equal(t, model.WarnMissingOptionalField, warn.Kind)
	assert.Equal(t, "EUR", txn.OriginalCurrency)
	assert.Nil(t, txn.OriginalAmount)
}

func TestParseRecord_PairedOriginalFieldsNoWarning(t *testing.T) {
	row := validRow()
	row[FieldOriginalAmount] = "100.00"
	row[FieldOriginalCurrency] = "EUR"

	txn, parseErr, warn := ParseRecord(row, 2)
	require.Nil(t, parseErr)
	assert.Nil(t, warn)
	require.NotNil(t, txn.OriginalAmount)
	assert.True(t, txn.OriginalAmount.Equal(decimal.RequireFromString("100.00")))
}
