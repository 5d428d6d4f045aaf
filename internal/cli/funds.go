package cli

import (
	"context"
	"fmt"
)

// runFunds is the admin-only fund-transfer view. A non-admin never gets this
// view: they are redirected to the expense list and no funds endpoint is
// ever called on their behalf.
func (a *App) runFunds(ctx context.Context, args []string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if !a.session.IsAdmin(ctx) {
		fmt.Fprintln(a.stderr, "The funds view is for administrators. Showing the expense list instead.")
		return a.runList(ctx, nil)
	}

	fs := newFlagSet("funds", a.stderr)
	user := fs.String("user", "", "Target user email")
	amount := fs.String("amount", "", "Amount to credit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Without a target the view shows the user list, like the dropdown the
	// form offered.
	if *user == "" || *amount == "" {
		users, err := a.funds.Users(ctx)
		if err != nil {
			return a.notify(err)
		}
		renderUserTable(a.stdout, users)
		fmt.Fprintln(a.stdout, "\nRun `kharcha funds -user <email> -amount <amount>` to credit a user.")
		return nil
	}

	if err := a.funds.AddFunds(ctx, *user, *amount); err != nil {
		fmt.Fprintln(a.stderr, "Failed to add funds.")
		return a.notify(err)
	}

	fmt.Fprintln(a.stdout, "Funds added successfully.")
	return nil
}
