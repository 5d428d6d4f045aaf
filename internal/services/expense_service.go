package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"kharcha/internal/config"
	"kharcha/internal/core"
	"kharcha/internal/gateway"
	"kharcha/internal/log"
)

// ExpenseGateway is the slice of the remote API the expense views use.
type ExpenseGateway interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	CreateExpense(ctx context.Context, draft core.ExpenseDraft, attachments []gateway.Attachment) (core.Expense, error)
}

// ExpenseService fetches expense data and runs the filter/sort/aggregate
// pipeline for the list view, and validates and submits new expenses.
type ExpenseService struct {
	gw     ExpenseGateway
	cfg    *config.Config
	logger *log.Logger
}

// ListPage is everything the expense list view needs: the full record set
// plus the category taxonomy for filter options.
type ListPage struct {
	Expenses   []core.Expense
	Categories []core.Category
}

// ListView is one rendering of the list page under the current criteria:
// the filtered and sorted rows, and the per-category totals of the filtered
// set feeding the distribution chart.
type ListView struct {
	Rows  []core.Expense
	Chart []core.CategoryAmount
	Total core.Money
}

// CreateInput carries raw form values for a new expense. Numeric fields stay
// strings here so validation owns the parsing.
type CreateInput struct {
	Description      string
	Price            string
	Quantity         string
	PaymentMode      string
	CategoryID       int64
	SubcategoryID    int64 // honored only when the subcategory picker is enabled
	Date             string // YYYY-MM-DD, defaults to today
	TransactionImage string // path, optional
	BillImage        string // path, optional
}

func NewExpenseService(gw ExpenseGateway, cfg *config.Config, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		gw:     gw,
		cfg:    cfg,
		logger: logger.WithComponent(log.ComponentPipeline),
	}
}

// ListPage fetches expenses and categories concurrently; the two resources
// are independent and neither view state is shared while in flight.
func (s *ExpenseService) ListPage(ctx context.Context) (ListPage, error) {
	var page ListPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		expenses, err := s.gw.ListExpenses(gctx)
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		page.Expenses = expenses
		return nil
	})
	g.Go(func() error {
		categories, err := s.gw.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		page.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return ListPage{}, err
	}

	s.logger.InfoContext(ctx, "Fetched list page",
		log.FieldOperation, log.OpList,
		log.FieldRecords, len(page.Expenses))
	return page, nil
}

// View runs the pipeline over the fetched records: filter, then sort the
// filtered rows for the table, and aggregate the filtered (pre-sort) set for
// the chart, so legend order follows the fetch order.
func (s *ExpenseService) View(records []core.Expense, criteria core.FilterCriteria, key core.SortKey) (ListView, error) {
	if err := criteria.Validate(); err != nil {
		return ListView{}, err
	}
	filtered := core.ApplyFilters(records, criteria)
	return ListView{
		Rows:  core.ApplySort(filtered, key),
		Chart: core.AggregateByCategory(filtered),
		Total: core.GrandTotal(filtered),
	}, nil
}

func (s *ExpenseService) Detail(ctx context.Context, id int64) (core.Expense, error) {
	expense, err := s.gw.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("fetch expense %d: %w", id, err)
	}
	return expense, nil
}

// Categories fetches the category taxonomy alone, for the creation form.
func (s *ExpenseService) Categories(ctx context.Context) ([]core.Category, error) {
	categories, err := s.gw.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// Create validates the input and submits the expense. Validation failures
// never reach the gateway; the caller keeps the form populated and retries.
func (s *ExpenseService) Create(ctx context.Context, in CreateInput) (core.Expense, error) {
	draft, err := s.buildDraft(in)
	if err != nil {
		return core.Expense{}, err
	}

	attachments, closeAll, err := openAttachments(in)
	if err != nil {
		return core.Expense{}, err
	}
	defer closeAll()

	created, err := s.gw.CreateExpense(ctx, draft, attachments)
	if err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense created",
		log.FieldOperation, log.OpCreate,
		log.FieldExpenseID, created.ID,
		log.FieldAmount, draft.Price.String())
	return created, nil
}

// buildDraft is the client-side validation step. Subcategory selection is
// scaffolding the original shipped disabled; unless the picker toggle is on,
// every draft gets the configured default subcategory.
func (s *ExpenseService) buildDraft(in CreateInput) (core.ExpenseDraft, error) {
	priceCents, err := core.ParseDecimalToCents(in.Price)
	if err != nil {
		return core.ExpenseDraft{}, fmt.Errorf("price: %w", err)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil {
		return core.ExpenseDraft{}, fmt.Errorf("quantity: %w", core.ErrInvalidQuantity)
	}

	date := time.Now()
	if strings.TrimSpace(in.Date) != "" {
		date, err = time.ParseInLocation("2006-01-02", strings.TrimSpace(in.Date), time.Local)
		if err != nil {
			return core.ExpenseDraft{}, fmt.Errorf("date: %w", err)
		}
	}

	subcategoryID := s.cfg.DefaultSubcategoryID
	if s.cfg.SubcategorySelect && in.SubcategoryID > 0 {
		subcategoryID = in.SubcategoryID
	}

	draft := core.ExpenseDraft{
		Description:   strings.TrimSpace(in.Description),
		Price:         core.Money{Cents: priceCents},
		Quantity:      quantity,
		PaymentMode:   core.PaymentMode(strings.ToLower(strings.TrimSpace(in.PaymentMode))),
		CategoryID:    in.CategoryID,
		SubcategoryID: subcategoryID,
		Date:          date,
	}
	if err := draft.Validate(); err != nil {
		return core.ExpenseDraft{}, err
	}
	return draft, nil
}

func openAttachments(in CreateInput) ([]gateway.Attachment, func(), error) {
	paths := []struct {
		field string
		path  string
	}{
		{"transaction_image", in.TransactionImage},
		{"bill_image", in.BillImage},
	}

	var attachments []gateway.Attachment
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	for _, p := range paths {
		if strings.TrimSpace(p.path) == "" {
			continue
		}
		f, err := os.Open(p.path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open %s: %w", p.field, err)
		}
		closers = append(closers, f)
		attachments = append(attachments, gateway.Attachment{
			Field:    p.field,
			Filename: filepath.Base(p.path),
			Reader:   f,
		})
	}
	return attachments, closeAll, nil
}
