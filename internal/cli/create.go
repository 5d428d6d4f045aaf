package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kharcha/internal/services"
)

func (a *App) runCreate(ctx context.Context, args []string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	fs := newFlagSet("create", a.stderr)
	description := fs.String("description", "", "Expense description")
	price := fs.String("price", "", "Unit price")
	quantity := fs.String("quantity", "1", "Quantity")
	mode := fs.String("mode", "", "Payment mode: cash, card or online")
	category := fs.String("category", "", "Category name or id")
	subcategory := fs.Int64("subcategory", 0, "Subcategory id (honored only when the picker is enabled)")
	date := fs.String("date", "", "Expense date as YYYY-MM-DD (defaults to today)")
	transactionImage := fs.String("transaction-image", "", "Path to a transaction image")
	billImage := fs.String("bill-image", "", "Path to a bill image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	categoryID, err := a.resolveCategory(ctx, *category)
	if err != nil {
		return err
	}

	_, err = a.expenses.Create(ctx, services.CreateInput{
		Description:      *description,
		Price:            *price,
		Quantity:         *quantity,
		PaymentMode:      *mode,
		CategoryID:       categoryID,
		SubcategoryID:    *subcategory,
		Date:             *date,
		TransactionImage: *transactionImage,
		BillImage:        *billImage,
	})
	if err != nil {
		// The form equivalent of leaving the fields populated: nothing was
		// submitted, the user fixes the flag and re-runs.
		fmt.Fprintln(a.stderr, "Expense not created.")
		return a.notify(err)
	}

	fmt.Fprintln(a.stdout, "Expense created.")
	return a.runList(ctx, nil)
}

// resolveCategory accepts a category id directly, or resolves a display name
// against the fetched taxonomy the way the creation form's dropdown did.
func (a *App) resolveCategory(ctx context.Context, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil // validation downstream reports the missing category
	}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return id, nil
	}

	categories, err := a.expenses.Categories(ctx)
	if err != nil {
		return 0, a.notify(err)
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, value) {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", value)
}
