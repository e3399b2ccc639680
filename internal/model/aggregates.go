package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is one category's share of an aggregation. Recomputed on
// every call; never persisted.
type CategorySummary struct {
	Name    string
	Total   decimal.Decimal
	Count   int
	Percent float64 // share of the aggregation's total; may exceed 100 or go negative when refunds dominate
}

// SummaryStatistics summarizes a whole transaction collection. Date range
// pointers are nil for an empty collection.
type SummaryStatistics struct {
	TotalTransactions int
	DateRangeStart    *time.Time
	DateRangeEnd      *time.Time
	TotalSpending     decimal.Decimal
	TotalCashback     decimal.Decimal
	NetSpending       decimal.Decimal
	UniqueCategories  int
}

// TimePeriod is one calendar-month bucket. Start and End are the earliest and
// latest timestamps actually observed in the bucket, not calendar boundaries.
type TimePeriod struct {
	Label   string // e.g. "Jan 2024"
	Start   time.Time
	End     time.Time
	Total   decimal.Decimal
	Count   int
	Average decimal.Decimal
}

// TrendPoint extends a TimePeriod with its month-over-month spending change.
// ChangePercent is 0 for the first period and whenever the previous period's
// total is exactly zero.
type TrendPoint struct {
	TimePeriod
	ChangePercent float64
}
