package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/repository/memory"
	"github.com/stemsi/quizxmentor-backend/internal/service"
	"github.com/stemsi/quizxmentor-backend/internal/spreadsheet"
	"golang.org/x/crypto/bcrypt"
)

func memoryOpener(t *testing.T) (accountOpener, *memory.Store, *int) {
	t.Helper()
	store := memory.NewStore()
	auth := service.NewAuthService(&config.Config{BcryptCost: bcrypt.MinCost}, store, nil)
	opened := 0
	open := func(ctx context.Context) (Accounts, func(), error) {
		opened++
		return authAccounts{auth: auth}, func() {}, nil
	}
	return open, store, &opened
}

func passwordMatches(t *testing.T, store *memory.Store, email, password string) bool {
	t.Helper()
	u, err := store.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("get %s: %v", email, err)
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func run(cmd *cobra.Command, input string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCreateAdminPromptsForCredentials(t *testing.T) {
	open, store, _ := memoryOpener(t)

	out, err := run(newCreateAdminCmd(open), "Root@Example.com\nadmin123\nadmin123\n")
	if err != nil {
		t.Fatalf("create-admin: %v\n%s", err, out)
	}
	if !strings.Contains(out, "created") {
		t.Fatalf("unexpected output: %q", out)
	}

	u, err := store.GetByEmail(context.Background(), "root@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !u.IsAdmin {
		t.Fatalf("expected admin account")
	}
	if !passwordMatches(t, store, "root@example.com", "admin123") {
		t.Fatalf("stored password does not match")
	}
}

func TestCreateAdminRejectsDuplicate(t *testing.T) {
	open, _, _ := memoryOpener(t)

	if _, err := run(newCreateAdminCmd(open), "secret1\nsecret1\n", "--email", "dup@example.com"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := run(newCreateAdminCmd(open), "secret1\nsecret1\n", "--email", "dup@example.com")
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCreateAdminValidatesBeforeConnecting(t *testing.T) {
	open, _, opened := memoryOpener(t)

	_, err := run(newCreateAdminCmd(open), "secret1\nsecret2\n", "--email", "a@example.com")
	if err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Fatalf("expected mismatch error, got %v", err)
	}

	_, err = run(newCreateAdminCmd(open), "123\n123\n", "--email", "not-an-email")
	if err == nil || !strings.Contains(err.Error(), "invalid credentials") {
		t.Fatalf("expected validation error, got %v", err)
	}

	if *opened != 0 {
		t.Fatalf("database opened %d times for rejected input", *opened)
	}
}

func TestResetPassword(t *testing.T) {
	open, store, _ := memoryOpener(t)

	if _, err := run(newCreateAdminCmd(open), "old-pass\nold-pass\n", "--email", "ops@example.com"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := run(newResetPasswordCmd(open), "new-pass\nnew-pass\n", "--email", "ops@example.com")
	if err != nil {
		t.Fatalf("reset-password: %v\n%s", err, out)
	}
	if passwordMatches(t, store, "ops@example.com", "old-pass") || !passwordMatches(t, store, "ops@example.com", "new-pass") {
		t.Fatalf("password not replaced")
	}

	_, err = run(newResetPasswordCmd(open), "new-pass\nnew-pass\n", "--email", "ghost@example.com")
	if err == nil || !strings.Contains(err.Error(), "no account") {
		t.Fatalf("expected unknown account error, got %v", err)
	}
}

func TestSampleQuestionsWritesUploadableWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")

	out, err := run(newSampleQuestionsCmd(), "", "--out", path)
	if err != nil {
		t.Fatalf("sample-questions: %v", err)
	}
	if !strings.Contains(out, "Wrote 5 questions") {
		t.Fatalf("unexpected output: %q", out)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	questions, err := spreadsheet.ParseQuestions(f)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != len(spreadsheet.SampleQuestions) {
		t.Fatalf("expected %d questions, got %d", len(spreadsheet.SampleQuestions), len(questions))
	}
	for i, q := range questions {
		if q.CorrectAns != spreadsheet.SampleQuestions[i].CorrectAns {
			t.Fatalf("row %d: expected answer %s, got %s", i+2, spreadsheet.SampleQuestions[i].CorrectAns, q.CorrectAns)
		}
	}
}
