package core

import "sort"

// SortKey selects the ordering of the displayed expense list.
type SortKey string

const (
	SortNone   SortKey = ""
	SortAmount SortKey = "amount"
	SortDate   SortKey = "date"
)

// ApplySort returns a copy of records ordered by the given key. Amount and
// date both sort descending; ties keep their prior relative order. An
// unrecognized key leaves the order unchanged. Sorting never re-filters.
func ApplySort(records []Expense, key SortKey) []Expense {
	switch key {
	case SortAmount, SortDate:
	default:
		return records
	}
	sorted := make([]Expense, len(records))
	copy(sorted, records)
	switch key {
	case SortAmount:
		sort.SliceStable(sorted, func(i, j int) bool {
			return totalCents(sorted[i]) > totalCents(sorted[j])
		})
	case SortDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.After(sorted[j].Date)
		})
	}
	return sorted
}

// totalCents reads the authoritative server total, treating a missing total
// as zero for ordering purposes.
func totalCents(e Expense) int64 {
	if e.Total == nil {
		return 0
	}
	return e.Total.Cents
}
