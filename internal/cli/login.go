package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"kharcha/internal/gateway"
)

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.stderr)
	email := fs.String("email", "", "Account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(a.stdin)

	if *email == "" {
		fmt.Fprint(a.stdout, "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		*email = strings.TrimSpace(line)
	}
	if *email == "" {
		return errors.New("email is required")
	}

	password, err := a.readPassword(reader)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, a.gw, *email, password)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			fmt.Fprintln(a.stderr, "Invalid credentials.")
		}
		return err
	}

	fmt.Fprintf(a.stdout, "Welcome, %s.\n", user.Name)
	return nil
}

// readPassword prompts without echo when stdin is a terminal, and falls back
// to a plain line read otherwise so piped input keeps working.
func (a *App) readPassword(reader *bufio.Reader) (string, error) {
	fmt.Fprint(a.stdout, "Password: ")

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stdout)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
