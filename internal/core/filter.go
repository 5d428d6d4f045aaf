package core

import "strings"

// FilterCriteria narrows the displayed expense set. Every field is optional;
// an absent field matches all records. Present fields combine with AND.
type FilterCriteria struct {
	User     string // case-insensitive substring of the owning user's name
	Category string // case-insensitive exact category name
	Month    int    // calendar month 1-12 of the expense date, local time
}

func (c FilterCriteria) IsZero() bool {
	return c.User == "" && c.Category == "" && c.Month == 0
}

func (c FilterCriteria) Validate() error {
	if c.Month < 0 || c.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Matches reports whether a single expense passes every present criterion.
func (c FilterCriteria) Matches(e Expense) bool {
	if c.User != "" {
		if !strings.Contains(strings.ToLower(e.User.Name), strings.ToLower(c.User)) {
			return false
		}
	}
	if c.Category != "" {
		if !strings.EqualFold(e.Category.Name, c.Category) {
			return false
		}
	}
	if c.Month != 0 {
		if int(e.Date.Local().Month()) != c.Month {
			return false
		}
	}
	return true
}

// ApplyFilters returns the subset of records matching the criteria, in their
// original relative order. Empty criteria return the input unchanged.
func ApplyFilters(records []Expense, c FilterCriteria) []Expense {
	if c.IsZero() {
		return records
	}
	filtered := make([]Expense, 0, len(records))
	for _, e := range records {
		if c.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
