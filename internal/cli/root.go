// Package cli implements quizctl, the operator tool for accounts and
// question workbooks.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/database"
	"github.com/stemsi/quizxmentor-backend/internal/logger"
	"github.com/stemsi/quizxmentor-backend/internal/repository"
	"github.com/stemsi/quizxmentor-backend/internal/service"
	"github.com/stemsi/quizxmentor-backend/internal/validator"
	"golang.org/x/term"
)

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the quizctl command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Operator tooling for the quiz backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newCreateAdminCmd(openAccounts))
	cmd.AddCommand(newResetPasswordCmd(openAccounts))
	cmd.AddCommand(newSampleQuestionsCmd())
	return cmd
}

// Accounts is the slice of the auth service the account commands need.
type Accounts interface {
	CreateUser(ctx context.Context, email, password string, isAdmin bool) error
	ResetPassword(ctx context.Context, email, password string) error
}

// accountOpener connects to the database; the returned func releases it.
type accountOpener func(ctx context.Context) (Accounts, func(), error)

type authAccounts struct {
	auth *service.AuthService
}

func (a authAccounts) CreateUser(ctx context.Context, email, password string, isAdmin bool) error {
	_, err := a.auth.CreateUser(ctx, email, password, isAdmin)
	return err
}

func (a authAccounts) ResetPassword(ctx context.Context, email, password string) error {
	return a.auth.ResetPassword(ctx, email, password)
}

func openAccounts(ctx context.Context) (Accounts, func(), error) {
	cfg := config.Load()
	// Command output owns stdout.
	log := logger.New(os.Stderr, cfg.LogFormat).Level(zerolog.WarnLevel)

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}

	// Account commands never open login sessions, so no session store.
	auth := service.NewAuthService(cfg, repository.NewUserRepository(pool), nil)
	return authAccounts{auth: auth}, closePool(pool), nil
}

func closePool(pool *pgxpool.Pool) func() {
	return func() { pool.Close() }
}

// prompter reads answers from the command's input. Passwords are read
// without echo when the input is a terminal.
type prompter struct {
	in  io.Reader
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, r: bufio.NewReader(in), out: cmd.OutOrStdout()}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p *prompter) password(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	return p.line(label)
}

// readCredentials prompts for whatever was not given as a flag and applies
// the same rules as the registration endpoint.
func readCredentials(p *prompter, email string) (string, string, error) {
	var err error
	if email == "" {
		if email, err = p.line("Email: "); err != nil {
			return "", "", err
		}
	}

	password, err := p.password("Password: ")
	if err != nil {
		return "", "", err
	}
	confirm, err := p.password("Confirm password: ")
	if err != nil {
		return "", "", err
	}
	if password != confirm {
		return "", "", errors.New("passwords do not match")
	}

	if fields := validator.Credentials(email, password); fields != nil {
		return "", "", fmt.Errorf("invalid credentials: %s", formatFields(fields))
	}
	return email, password, nil
}

func formatFields(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for _, name := range []string{"email", "password"} {
		if msg, ok := fields[name]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}
