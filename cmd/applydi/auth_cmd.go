package main

import (
	"fmt"
	"time"

	"applydi-client/internal/dto"

	"github.com/spf13/cobra"
)

func newLoginCmd(c *cli) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the credential for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			if username == "" {
				if username, err = c.readLine("Nom d'utilisateur : "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = c.readPassword("Mot de passe : "); err != nil {
					return err
				}
			}
			return app.Auth.Login(cmd.Context(), &dto.LoginRequest{Username: username, Password: password})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			if username == "" {
				if username, err = c.readLine("Nom d'utilisateur : "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = c.readLine("Email : "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = c.readPassword("Mot de passe : "); err != nil {
					return err
				}
			}
			return app.Auth.Register(cmd.Context(), &dto.RegisterRequest{Username: username, Email: email, Password: password})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Déconnecté.")
			return nil
		},
	}
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session, backend and preferences in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "Backend:   %s\n", c.cfg.API.BaseURL)
			if _, ok := app.Session.Credential(); !ok {
				fmt.Fprintln(c.out, "Session:   aucune (applydi login)")
			} else {
				info := app.Session.Info()
				line := "Session:   connecté"
				if info.Subject != "" {
					line += " en tant que " + info.Subject
				}
				if info.ExpiresAt != nil {
					line += fmt.Sprintf(" (expire %s)", info.ExpiresAt.Local().Format(time.RFC3339))
				}
				fmt.Fprintln(c.out, line)
			}
			fmt.Fprintf(c.out, "Mode sombre: %t\n", app.Session.DarkMode())
			fmt.Fprintf(c.out, "Exports:   %s\n", c.cfg.App.ExportDir)
			return nil
		},
	}
}
