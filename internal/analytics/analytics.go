// Package analytics computes aggregate views over a transaction collection.
// Every function is a pure single-pass reducer: inputs are read-only,
// identical input produces identical output, and an empty collection is a
// valid input with a defined result.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// Categories groups transactions by category and returns per-category totals,
// counts, and share of the overall total. The percentage base is the sum of
// all input amounts, refunds included, so a category's share may exceed 100
// or go negative. Categories whose summed amount is exactly zero are dropped.
// Sorted descending by total; ties keep encounter order.
func Categories(transactions []model.Transaction) []model.CategorySummary {
	return groupByCategory(transactions, func(t model.Transaction) decimal.Decimal {
		return t.Amount
	})
}

// NetByCategory is the category aggregation with each group valued at its
// spending net of cashback.
func NetByCategory(transactions []model.Transaction) []model.CategorySummary {
	return groupByCategory(transactions, func(t model.Transaction) decimal.Decimal {
		return t.Amount.Sub(t.CashbackOrZero())
	})
}

func groupByCategory(transactions []model.Transaction, value func(model.Transaction) decimal.Decimal) []model.CategorySummary {
	type bucket struct {
		total decimal.Decimal
		count int
	}
	buckets := make(map[string]*bucket)
	var order []string
	grandTotal := decimal.Zero

	for _, t := range transactions {
		v := value(t)
		grandTotal = grandTotal.Add(v)
		b, ok := buckets[t.Category]
		if !ok {
			b = &bucket{}
			buckets[t.Category] = b
			order = append(order, t.Category)
		}
		b.total = b.total.Add(v)
		b.count++
	}

	summaries := make([]model.CategorySummary, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		if b.total.IsZero() {
			continue
		}
		percent := 0.0
		if !grandTotal.IsZero() {
			percent = b.total.Div(grandTotal).InexactFloat64() * 100
		}
		summaries = append(summaries, model.CategorySummary{
			Name:    name,
			Total:   b.total,
			Count:   b.count,
			Percent: percent,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total.GreaterThan(summaries[j].Total)
	})
	return summaries
}

// Summary computes collection-wide statistics. An empty collection yields the
// all-zero result with nil date bounds.
func Summary(transactions []model.Transaction) model.SummaryStatistics {
	stats := model.SummaryStatistics{
		TotalSpending: decimal.Zero,
		TotalCashback: decimal.Zero,
		NetSpending:   decimal.Zero,
	}
	if len(transactions) == 0 {
		return stats
	}

	categories := make(map[string]struct{})
	start, end := transactions[0].Timestamp, transactions[0].Timestamp
	for _, t := range transactions {
		if t.Timestamp.Before(start) {
			start = t.Timestamp
		}
		if t.Timestamp.After(end) {
			end = t.Timestamp
		}
		stats.TotalSpending = stats.TotalSpending.Add(t.Amount)
		stats.TotalCashback = stats.TotalCashback.Add(t.CashbackOrZero())
		categories[t.Category] = struct{}{}
	}

	stats.TotalTransactions = len(transactions)
	stats.DateRangeStart = &start
	stats.DateRangeEnd = &end
	stats.NetSpending = stats.TotalSpending.Sub(stats.TotalCashback)
	stats.UniqueCategories = len(categories)
	return stats
}

// TimePeriods buckets transactions by calendar month. Period bounds are the
// earliest and latest timestamps observed in the bucket, not the calendar
// boundaries. Sorted ascending by period start.
func TimePeriods(transactions []model.Transaction) []model.TimePeriod {
	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key]*model.TimePeriod)

	for _, t := range transactions {
		k := key{t.Timestamp.Year(), t.Timestamp.Month()}
		p, ok := buckets[k]
		if !ok {
			p = &model.TimePeriod{
				Label: t.Timestamp.Format("Jan 2006"),
				Start: t.Timestamp,
				End:   t.Timestamp,
				Total: decimal.Zero,
			}
			buckets[k] = p
		}
		if t.Timestamp.Before(p.Start) {
			p.Start = t.Timestamp
		}
		if t.Timestamp.After(p.End) {
			p.End = t.Timestamp
		}
		p.Total = p.Total.Add(t.Amount)
		p.Count++
	}

	periods := make([]model.TimePeriod, 0, len(buckets))
	for _, p := range buckets {
		p.Average = p.Total.Div(decimal.NewFromInt(int64(p.Count)))
		periods = append(periods, *p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})
	return periods
}

// Trends extends the monthly aggregation with each period's month-over-month
// spending change. The first period, and any period following a zero-total
// one, reports a change of 0.
func Trends(transactions []model.Transaction) []model.TrendPoint {
	periods := TimePeriods(transactions)
	points := make([]model.TrendPoint, 0, len(periods))
	for i, p := range periods {
		change := 0.0
		if i > 0 && !periods[i-1].Total.IsZero() {
			prev := periods[i-1].Total
			change = p.Total.Sub(prev).Div(prev).InexactFloat64() * 100
		}
		points = append(points, model.TrendPoint{TimePeriod: p, ChangePercent: change})
	}
	return points
}
