package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stemsi/quizxmentor-backend/internal/service"
)

func newCreateAdminCmd(open accountOpener) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password, err := readCredentials(newPrompter(cmd), email)
			if err != nil {
				return err
			}

			accounts, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := accounts.CreateUser(cmd.Context(), email, password, true); err != nil {
				if errors.Is(err, service.ErrEmailTaken) {
					return fmt.Errorf("%s is already registered; use reset-password instead", email)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (prompted when empty)")
	return cmd
}

func newResetPasswordCmd(open accountOpener) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, password, err := readCredentials(newPrompter(cmd), email)
			if err != nil {
				return err
			}

			accounts, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := accounts.ResetPassword(cmd.Context(), email, password); err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					return fmt.Errorf("no account for %s", email)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
