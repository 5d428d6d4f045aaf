package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"kharcha/internal/core"
	"kharcha/internal/gateway"
)

func (a *App) runList(ctx context.Context, args []string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	fs := newFlagSet("list", a.stderr)
	user := fs.String("user", "", "Filter by user name substring")
	category := fs.String("category", "", "Filter by exact category name")
	month := fs.Int("month", 0, "Filter by calendar month (1-12)")
	sortKey := fs.String("sort", "", "Sort by 'amount' or 'date' (descending)")
	csvPath := fs.String("csv", "", "Export the current view as CSV to a file, or '-' for stdout")
	noChart := fs.Bool("no-chart", false, "Skip the category distribution chart")
	if err := fs.Parse(args); err != nil {
		return err
	}

	criteria := core.FilterCriteria{User: *user, Category: *category, Month: *month}

	page, err := a.expenses.ListPage(ctx)
	if err != nil {
		return a.notify(err)
	}

	view, err := a.expenses.View(page.Expenses, criteria, core.SortKey(*sortKey))
	if err != nil {
		return err
	}

	if len(view.Rows) == 0 {
		fmt.Fprintln(a.stdout, "No expenses match the current filters.")
	} else {
		renderExpenseTable(a.stdout, view.Rows)
		if !*noChart {
			fmt.Fprintln(a.stdout)
			renderChart(a.stdout, view.Chart, view.Total)
		}
	}

	if *csvPath != "" {
		return a.exportCSV(ctx, view.Rows, *csvPath)
	}
	return nil
}

// exportCSV writes the current view to a file or stdout. Like the original's
// download button, the export is offered to administrators only.
func (a *App) exportCSV(ctx context.Context, rows []core.Expense, path string) error {
	if !a.session.IsAdmin(ctx) {
		fmt.Fprintln(a.stderr, "CSV export is available to administrators only.")
		return nil
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.stderr, "No data to export with the applied filters.")
		return core.ErrNothingToExport
	}

	if path == "-" {
		return core.WriteCSV(a.stdout, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := core.WriteCSV(f, rows); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Exported %d expenses to %s\n", len(rows), path)
	return nil
}

func (a *App) runShow(ctx context.Context, args []string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: kharcha show <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expense id %q", args[0])
	}

	expense, err := a.expenses.Detail(ctx, id)
	if err != nil {
		return a.notify(err)
	}
	renderDetail(a.stdout, expense)
	return nil
}

// notify surfaces a gateway failure to the user as a one-shot notice, the
// alert-dialog equivalent. The error still propagates for the exit code.
// Session expiry is left alone; Run owns that message.
func (a *App) notify(err error) error {
	if errors.Is(err, gateway.ErrSessionExpired) || errors.Is(err, gateway.ErrNotAuthenticated) {
		return err
	}
	fmt.Fprintf(a.stderr, "Request failed: %v\n", err)
	return err
}
