// Package cli is the presentation shell: one view per subcommand, wired to
// the session store, gateway and services. Route guarding happens here —
// unauthenticated users are sent to login, non-admins asking for the funds
// view are sent back to the expense list without a single gateway call.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"kharcha/internal/config"
	"kharcha/internal/gateway"
	"kharcha/internal/log"
	"kharcha/internal/services"
	"kharcha/internal/session"
)

type App struct {
	cfg      *config.Config
	logger   *log.Logger
	session  *session.Store
	gw       *gateway.Client
	expenses *services.ExpenseService
	funds    *services.FundsService

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewApp(cfg *config.Config, logger *log.Logger, sess *session.Store, gw *gateway.Client,
	stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{
		cfg:      cfg,
		logger:   logger.WithComponent(log.ComponentCLI),
		session:  sess,
		gw:       gw,
		expenses: services.NewExpenseService(gw, cfg, logger),
		funds:    services.NewFundsService(gw, logger),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}
}

const usage = `kharcha - expense tracker client

Usage:
  kharcha login [-email <email>]
  kharcha logout
  kharcha whoami
  kharcha list [-user <name>] [-category <name>] [-month <1-12>] [-sort amount|date] [-csv <file>] [-no-chart]
  kharcha show <id>
  kharcha create -description <text> -price <amount> -quantity <n> -mode cash|card|online -category <name|id> [-date YYYY-MM-DD] [-transaction-image <file>] [-bill-image <file>]
  kharcha funds [-user <email>] [-amount <amount>]
`

// Run dispatches one view and applies the global session policy: if any view
// comes back with an expired session, the user is routed to login no matter
// which view made the call.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return errors.New("missing command")
	}

	var err error
	switch args[0] {
	case "login":
		err = a.runLogin(ctx, args[1:])
	case "logout":
		a.session.Logout(ctx)
		fmt.Fprintln(a.stdout, "Logged out.")
	case "whoami":
		err = a.runWhoami(ctx)
	case "list":
		err = a.runList(ctx, args[1:])
	case "show":
		err = a.runShow(ctx, args[1:])
	case "create":
		err = a.runCreate(ctx, args[1:])
	case "funds":
		err = a.runFunds(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
	default:
		fmt.Fprint(a.stderr, usage)
		err = fmt.Errorf("unknown command %q", args[0])
	}

	if errors.Is(err, gateway.ErrSessionExpired) || errors.Is(err, gateway.ErrNotAuthenticated) {
		fmt.Fprintln(a.stderr, "Session expired. Run `kharcha login` to sign in again.")
		return err
	}
	return err
}

// requireAuth is the login route guard.
func (a *App) requireAuth(ctx context.Context) error {
	if !a.session.IsAuthenticated(ctx) {
		fmt.Fprintln(a.stderr, "Not logged in. Run `kharcha login` first.")
		return gateway.ErrNotAuthenticated
	}
	return nil
}

func (a *App) runWhoami(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	user, ok := a.session.CurrentUser(ctx)
	if !ok {
		fmt.Fprintln(a.stdout, "Logged in, but no cached profile.")
		return nil
	}
	fmt.Fprintf(a.stdout, "%s <%s> (%s), balance %s\n", user.Name, user.Email, user.Type, user.Funds.String())
	return nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}
