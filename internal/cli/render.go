package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kharcha/internal/core"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366F1"))
	amountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
)

const chartWidth = 30

func displayAmount(total *core.Money) string {
	if total == nil {
		return "N/A"
	}
	return total.String()
}

func renderExpenseTable(w io.Writer, rows []core.Expense) {
	header := fmt.Sprintf("%-5s %-10s %-24s %-14s %-14s %-7s %10s",
		"ID", "Date", "Description", "Category", "User", "Mode", "Amount")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, e := range rows {
		line := fmt.Sprintf("%-5d %-10s %-24s %-14s %-14s %-7s %10s",
			e.ID,
			e.Date.Local().Format("2006-01-02"),
			truncate(e.Description, 24),
			truncate(e.Category.Name, 14),
			truncate(e.User.Name, 14),
			string(e.PaymentMode),
			displayAmount(e.Total))
		fmt.Fprintln(w, line)
	}
}

// renderChart draws the category distribution of the filtered set as
// proportional bars, the terminal stand-in for the original's doughnut.
func renderChart(w io.Writer, chart []core.CategoryAmount, total core.Money) {
	if len(chart) == 0 {
		return
	}

	var max int64
	for _, ca := range chart {
		if ca.Amount.Cents > max {
			max = ca.Amount.Cents
		}
	}

	fmt.Fprintln(w, headerStyle.Render("Spending by category"))
	for _, ca := range chart {
		width := 0
		if max > 0 {
			width = int(ca.Amount.Cents * chartWidth / max)
		}
		if width == 0 && ca.Amount.Cents > 0 {
			width = 1
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		fmt.Fprintf(w, "%-14s %s %s\n", truncate(ca.Name, 14), bar, amountStyle.Render(ca.Amount.String()))
	}
	fmt.Fprintf(w, "%s %s\n", totalStyle.Render("Total"), amountStyle.Render(total.String()))
}

func renderUserTable(w io.Writer, users []core.User) {
	header := fmt.Sprintf("%-24s %-28s %-9s %10s", "Name", "Email", "Type", "Balance")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, u := range users {
		fmt.Fprintf(w, "%-24s %-28s %-9s %10s\n",
			truncate(u.Name, 24), truncate(u.Email, 28), string(u.Type), u.Funds.String())
	}
}

func renderDetail(w io.Writer, e core.Expense) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Expense #%d", e.ID)))
	fmt.Fprintf(w, "Description: %s\n", e.Description)
	fmt.Fprintf(w, "Price:       %s x %d\n", e.Price.String(), e.Quantity)
	fmt.Fprintf(w, "Total:       %s\n", amountStyle.Render(displayAmount(e.Total)))
	fmt.Fprintf(w, "Mode:        %s\n", string(e.PaymentMode))
	fmt.Fprintf(w, "Date:        %s\n", e.Date.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Category:    %s / %s\n", e.Category.Name, e.Subcategory.Name)
	fmt.Fprintf(w, "User:        %s <%s>\n", e.User.Name, e.User.Email)
	if e.TransactionImage != "" {
		fmt.Fprintf(w, "Transaction: %s\n", faintStyle.Render(e.TransactionImage))
	}
	if e.BillImage != "" {
		fmt.Fprintf(w, "Bill:        %s\n", faintStyle.Render(e.BillImage))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
