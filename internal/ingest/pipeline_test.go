package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledgerlens/internal/model"
)

const sampleHeader = "timestamp,type,description,status,amount USD,card,card holder name,original amount,original currency,cashback earned,category"

const sampleCSV = sampleHeader + "\n" +
	"2024-01-15,purchase,Coffee Shop,completed,-4.50,1234,Jane Doe,,,0.05,Dining\n" +
	"2024-02-01,purchase,Grocery,completed,150.00,1234,Jane Doe,,,1.50,Groceries"

func TestIngest_ValidFile(t *testing.T) {
	result := Ingest([]byte(sampleCSV), "export.csv", DefaultConfig())

	require.Empty(t, result.Errors)
	require.Empty(t, result.Warnings)
	require.Len(t, result.Transactions, 2)

	assert.Equal(t, "Coffee Shop", result.Transactions[0].Description)
	assert.True(t, result.Transactions[0].Amount.Equal(decimal.RequireFromString("-4.50")))
	assert.Equal(t, "Groceries", result.Transactions[1].Category)
}

func TestIngest_BOMTolerated(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleCSV)...)
	result := Ingest(data, "export.csv", DefaultConfig())
	require.Empty(t, result.Errors)
	assert.Len(t, result.Transactions, 2)
}

func TestIngest_OversizedFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = 16

	result := Ingest([]byte(sampleCSV), "export.csv", cfg)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.ErrValidationFailed, result.Errors[0].Kind)
	assert.Empty(t, result.Transactions)
}

func TestIngest_WrongExtension(t *testing.T) {
	result := Ingest([]byte(sampleCSV), "export.xlsx", DefaultConfig())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.ErrValidationFailed, result.Errors[0].Kind)
	assert.Empty(t, result.Transactions)
}

func TestIngest_EmptyFile(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero bytes", ""},
		{"header only", sampleHeader},
		{"header and blank lines", sampleHeader + "\n\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Ingest([]byte(tt.data), "export.csv", DefaultConfig())
			require.Len(t, result.Errors, 1)
			assert.Equal(t, model.ErrEmptyFile, result.Errors[0].Kind)
			assert.Empty(t, result.Transactions)
		})
	}
}

func TestIngest_MissingRequiredColumn(t *testing.T) {
	// Scenario: the status column is absent entirely.
	data := "timestamp,type,description,amount USD,card,card holder name\n" +
		"2024-01-15,purchase,Coffee Shop,-4.50,1234,Jane Doe"

	result := Ingest([]byte(data), "export.csv", DefaultConfig())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.ErrMissingColumn, result.Errors[0].Kind)
	assert.Equal(t, FieldStatus, result.Errors[0].Column)
	assert.Empty(t, result.Transactions, "no row parsing is attempted")
}

func TestIngest_HeaderSynonyms(t *testing.T) {
	data := "Date,Type,Description,Status,Amount,Card,Cardholder,Currency,Rewards,Category\n" +
		"2024-01-15,purchase,Coffee Shop,completed,-4.50,1234,Jane Doe,,0.05,Dining"

	result := Ingest([]byte(data), "export.csv", DefaultConfig())
	require.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 1)
	require.NotNil(t, result.Transactions[0].Cashback)
	assert.True(t, result.Transactions[0].Cashback.Equal(decimal.RequireFromString("0.05")))
}

func TestIngest_RowErrorExcludesOnlyThatRow(t *testing.T) {
	// Scenario: the second data row has a blank description.
	data := sampleHeader + "\n" +
		"2024-01-15,purchase,Coffee Shop,completed,-4.50,1234,Jane Doe,,,,Dining\n" +
		"2024-01-16,purchase,,completed,10.00,1234,Jane Doe,,,,Dining\n" +
		"2024-01-17,purchase,Lunch,completed,12.00,1234,Jane Doe,,,,Dining"

	result := Ingest([]byte(data), "export.csv", DefaultConfig())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.ErrValidationFailed, result.Errors[0].Kind)
	assert.Equal(t, FieldDescription, result.Errors[0].Column)
	assert.Equal(t, 3, result.Errors[0].Row, "1-based with header offset")
	assert.Len(t, result.Transactions, 2)
}

func TestIngest_BlankCategoryWarns(t *testing.T) {
	data := sampleHeader + "\n" +
		"2024-01-15,purchase,Coffee Shop,completed,-4.50,1234,Jane Doe,,,,"

	result := Ingest([]byte(data), "export.csv", DefaultConfig())
	require.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.WarnMissingCategory, result.Warnings[0].Kind)
	assert.Equal(t, 2, result.Warnings[0].Row)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, model.Uncategorized, result.Transactions[0].Category)
}

func TestIngest_RowLimitAdvisory(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(sampleHeader + "\n")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&sb, "2024-01-%02d,purchase,Item %d,completed,10.00,1234,Jane Doe,,,,Misc\n", i+1, i)
	}

	cfg := DefaultConfig()
	cfg.MaxRows = 3
	result := Ingest([]byte(sb.String()), "export.csv", cfg)

	require.Empty(t, result.Errors)
	assert.Len(t, result.Transactions, 5, "advisory only, nothing is rejected")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.WarnRowLimitExceeded, result.Warnings[0].Kind)
	assert.Equal(t, 0, result.Warnings[0].Row, "file-level advisory")
}

func TestIngest_DuplicateDetection(t *testing.T) {
	data := sampleHeader + "\n" +
		"2024-01-15,purchase,Coffee Shop,completed,-4.50,1234,Jane Doe,,,,Dining\n" +
		"2024-01-15,purchase,Coffee Shop,completed,-4.50,1234,Jane Doe,,,,Dining"

	cfg := DefaultConfig()
	cfg.DetectDuplicates = true
	result := Ingest([]byte(data), "export.csv", cfg)

	require.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, model.WarnDuplicateTransaction, result.Warnings[0].Kind)
	assert.Equal(t, 3, result.Warnings[0].Row)
	assert.Len(t, result.Transactions, 2, "duplicates are kept, not dropped")
}

func TestIngest_StrictModePromotesWarnings(t *testing.T) {
	data := sampleHeader + "\n" +
		"2024-01-15,purchase,Coffee Shop,completed,-4.50,1234,Jane Doe,,,,"

	cfg := DefaultConfig()
	cfg.Strict = true
	result := Ingest([]byte(data), "export.csv", cfg)

	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, model.ErrValidationFailed, result.Errors[0].Kind)
}

func TestIngest_StrictModeWithoutWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strict = true
	result := Ingest([]byte(sampleCSV), "export.csv", cfg)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Transactions, 2)
}

func TestIngest_QuotedFields(t *testing.T) {
	data := sampleHeader + "\n" +
		`2024-01-15,purchase,"Diner, The ""Good"" One",completed,-20.00,1234,Jane Doe,,,,Dining`

	result := Ingest([]byte(data), "export.csv", DefaultConfig())
	require.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, `Diner, The "Good" One`, result.Transactions[0].Description)
}

func TestIngest_ProgressCallback(t *testing.T) {
	var calls int
	cfg := DefaultConfig()
	cfg.Progress = func(done, total int) {
		calls++
		assert.Equal(t, 2, total)
	}

	Ingest([]byte(sampleCSV), "export.csv", cfg)
	assert.Equal(t, 2, calls)
}
