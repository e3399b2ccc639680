// Package filter selects transaction subsets from a declarative
// specification and derives the metadata the surrounding UI needs to render
// filter controls.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// Spec is a conjunctive set of inclusion criteria. The zero value is the
// identity filter: it selects everything.
type Spec struct {
	// Search matches case-insensitively as a substring of the description.
	Search string
	// Categories restricts to member categories; empty means no restriction.
	Categories []string
	// From is the inclusive lower timestamp bound.
	From *time.Time
	// To is the inclusive upper bound; the entire calendar day is included.
	To *time.Time
}

// New returns the identity filter.
func New() Spec {
	return Spec{}
}

// Apply returns the transactions satisfying every active criterion, in input
// order, always as a fresh slice.
func Apply(transactions []model.Transaction, spec Spec) []model.Transaction {
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	categories := make(map[string]struct{}, len(spec.Categories))
	for _, c := range spec.Categories {
		categories[c] = struct{}{}
	}
	var end time.Time
	if spec.To != nil {
		end = endOfDay(*spec.To)
	}

	out := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[t.Category]; !ok {
				continue
			}
		}
		if spec.From != nil && t.Timestamp.Before(*spec.From) {
			continue
		}
		if spec.To != nil && t.Timestamp.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ActiveCount reports how many criteria are active. It is always recomputed
// from the criteria themselves.
func ActiveCount(spec Spec) int {
	n := 0
	if strings.TrimSpace(spec.Search) != "" {
		n++
	}
	if len(spec.Categories) > 0 {
		n++
	}
	if spec.From != nil {
		n++
	}
	if spec.To != nil {
		n++
	}
	return n
}

// Describe renders a human-readable summary of the active criteria, or
// "no filters" for the identity spec.
func Describe(spec Spec) string {
	var parts []string
	if s := strings.TrimSpace(spec.Search); s != "" {
		parts = append(parts, fmt.Sprintf("description contains %q", s))
	}
	if len(spec.Categories) > 0 {
		parts = append(parts, fmt.Sprintf("categories: %s", strings.Join(spec.Categories, ", ")))
	}
	if spec.From != nil {
		parts = append(parts, fmt.Sprintf("from %s", spec.From.Format("2006-01-02")))
	}
	if spec.To != nil {
		parts = append(parts, fmt.Sprintf("through %s", spec.To.Format("2006-01-02")))
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, "; ")
}

// UniqueCategories returns the sorted distinct categories present in the
// collection, for populating a category selector.
func UniqueCategories(transactions []model.Transaction) []string {
	set := make(map[string]struct{})
	for _, t := range transactions {
		set[t.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// DateBounds returns the earliest and latest timestamps in the collection,
// for populating date-range controls. ok is false for an empty collection.
func DateBounds(transactions []model.Transaction) (earliest, latest time.Time, ok bool) {
	if len(transactions) == 0 {
		return time.Time{}, time.Time{}, false
	}
	earliest, latest = transactions[0].Timestamp, transactions[0].Timestamp
	for _, t := range transactions[1:] {
		if t.Timestamp.Before(earliest) {
			earliest = t.Timestamp
		}
		if t.Timestamp.After(latest) {
			latest = t.Timestamp
		}
	}
	return earliest, latest, true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
