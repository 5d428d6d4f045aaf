package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// AggregateByCategory sums the server total per category display name. The
// output order is the first-seen order of categories in the input, so chart
// legends stay reproducible across runs. A record without a total
// contributes zero.
func AggregateByCategory(records []Expense) []CategoryAmount {
	index := make(map[string]int, len(records))
	agg := make([]CategoryAmount, 0, len(records))
	for _, e := range records {
		name := e.Category.Name
		i, seen := index[name]
		if !seen {
			index[name] = len(agg)
			agg = append(agg, CategoryAmount{Name: name})
			i = len(agg) - 1
		}
		agg[i].Amount.Cents += totalCents(e)
	}
	return agg
}

// GrandTotal sums the server totals over the given records.
func GrandTotal(records []Expense) Money {
	var total Money
	for _, e := range records {
		total.Cents += totalCents(e)
	}
	return total
}
