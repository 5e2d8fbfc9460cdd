package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			if password == "" {
				p, err := prompt(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}

			if err := app.Account.Login(cmd.Context(), username, password); err != nil {
				return accountError(err, app.Account.ErrorMessage())
			}

			output(cmd).Print(SessionInfo{Authenticated: true, Principal: app.Session.CurrentPrincipal()})
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newSignupCmd() *cobra.Command {
	var password, confirm string

	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			in := bufio.NewReader(cmd.InOrStdin())

			if password == "" {
				p, err := prompt(cmd, in, "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			if confirm == "" {
				c, err := prompt(cmd, in, "Confirm password: ")
				if err != nil {
					return err
				}
				confirm = c
			}

			if err := app.Account.Signup(cmd.Context(), username, password, confirm); err != nil {
				return accountError(err, app.Account.ErrorMessage())
			}

			output(cmd).Print(SessionInfo{
				Authenticated: app.Session.IsAuthenticated(),
				Principal:     app.Session.CurrentPrincipal(),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation (prompted when omitted)")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Account.Logout(cmd.Context()); err != nil {
				return err
			}

			output(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			output(cmd).Print(SessionInfo{
				Authenticated: app.Session.IsAuthenticated(),
				Principal:     app.Session.CurrentPrincipal(),
			})
			return nil
		},
	}
}

// accountError prefers the user-facing message kept by the coordinator
func accountError(err error, message string) error {
	if message == "" {
		return err
	}
	return errors.New(message)
}

// prompt reads one line from in
func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
