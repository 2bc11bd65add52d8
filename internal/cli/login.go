package cli

import (
	"fmt"

	"github.com/rpggio/clubboard/internal/config"
	"github.com/rpggio/clubboard/internal/domain/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the identity block for the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			id, err := a.Session.Login(cmd.Context(), session.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			if ok, err := printJSON(cmd, id); ok || err != nil {
				return err
			}

			block := struct {
				Identity config.IdentityConfig `yaml:"identity"`
			}{config.IdentityConfig{
				ID:      id.ID,
				Name:    id.Name,
				Email:   id.Email,
				Role:    string(id.Role),
				Team:    string(id.Team),
				Passkey: id.Passkey,
			}}
			out, err := yaml.Marshal(block)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s, %s). Add to your config file:\n\n%s", id.Name, id.Role, id.Team, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newSignupCmd() *cobra.Command {
	var req session.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a member account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.Session.Signup(cmd.Context(), req); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created account for %s; sign in with clubctl login\n", req.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "Password again")
	cmd.Flags().StringVar(&req.Department, "department", "", "Department")
	cmd.Flags().StringVar(&req.Year, "year", "", "Year of study")
	cmd.Flags().StringVar(&req.RegisterNumber, "register-number", "", "College register number")
	cmd.Flags().StringVar(&req.Linkedin, "linkedin", "", "LinkedIn profile")
	cmd.Flags().StringVar(&req.Github, "github", "", "GitHub profile")
	return cmd
}
