// Package ingest validates and parses a delimited transaction export into the
// canonical transaction collection plus structured diagnostics.
package ingest

import "strings"

// Canonical column names. Headers are normalized to these before any row is
// parsed; the parser only ever sees canonical names.
const (
	FieldTimestamp        = "timestamp"
	FieldType             = "type"
	FieldDescription      = "description"
	FieldStatus           = "status"
	FieldAmount           = "amount usd"
	FieldCard             = "card"
	FieldCardHolder       = "card holder name"
	FieldOriginalAmount   = "original amount"
	FieldOriginalCurrency = "original currency"
	FieldCashback         = "cashback earned"
	FieldCategory         = "category"
)

// requiredFields must all be present after header normalization or the file
// is rejected before any row parsing.
var requiredFields = []string{
	FieldTimestamp,
	FieldType,
	FieldDescription,
	FieldStatus,
	FieldAmount,
	FieldCard,
	FieldCardHolder,
}

// headerSynonyms maps accepted header spellings to canonical names. The table
// is a fixed enumeration; headers it does not know pass through unchanged and
// are ignored by the parser. Resolved once per file, not per row.
var headerSynonyms = map[string]string{
	"date":            FieldTimestamp,
	"time":            FieldTimestamp,
	"amount":          FieldAmount,
	"cardholder":      FieldCardHolder,
	"cardholder name": FieldCardHolder,
	"currency":        FieldOriginalCurrency,
	"cashback":        FieldCashback,
	"rewards":         FieldCashback,
}

// NormalizeHeader lowercases and trims a raw header token and resolves it
// through the synonym table.
func NormalizeHeader(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := headerSynonyms[name]; ok {
		return canonical
	}
	return name
}
