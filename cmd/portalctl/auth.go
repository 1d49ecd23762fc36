package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobportal-client/internal/models"
)

func newLoginCmd(a **app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := (*a).store.Login(cmd.Context(), email, password)
			if err != nil {
				return friendly(err)
			}
			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a **app) *cobra.Command {
	var name, email, password, role string
	var noLogin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := models.Role(role)
			if r != models.RoleCandidate && r != models.RoleEmployer {
				return fmt.Errorf("role must be %q or %q", models.RoleCandidate, models.RoleEmployer)
			}

			user, err := (*a).store.Register(cmd.Context(), name, email, password, r, !noLogin)
			if err != nil {
				return friendly(err)
			}
			if noLogin {
				fmt.Printf("Account created for %s\n", user.Email)
			} else {
				fmt.Printf("Account created, logged in as %s (%s)\n", user.Name, user.Role)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleCandidate), "account role: candidate or employer")
	cmd.Flags().BoolVar(&noLogin, "no-login", false, "create the account without signing in")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			(*a).store.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			(*a).store.Bootstrap(cmd.Context())
			sess := (*a).store.Current()
			if !sess.Authenticated() {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s <%s> (%s)\n", sess.User.Name, sess.User.Email, sess.User.Role)
			return nil
		},
	}
}
