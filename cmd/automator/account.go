package main

import (
	"errors"
	"time"

	"account-automator/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	var data entity.RegistrationData
	cmd := &cobra.Command{
		Use:   "register <type>",
		Short: "Sign up for a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.parseType(args[0])
			if err != nil {
				return err
			}
			result := a.container.Manager.Register(cmd.Context(), t, data, a.container.Options)
			return a.report(cmd, string(t), result)
		},
	}
	f := cmd.Flags()
	f.StringVar(&data.Email, "email", "", "account email (required)")
	f.StringVar(&data.Password, "password", "", "account password (required)")
	f.StringVar(&data.Username, "username", "", "username")
	f.StringVar(&data.FirstName, "first-name", "", "first name")
	f.StringVar(&data.LastName, "last-name", "", "last name")
	f.StringVar(&data.Phone, "phone", "", "phone number")
	f.StringVar(&data.Company, "company", "", "company")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var data entity.LoginData
	cmd := &cobra.Command{
		Use:   "login <type>",
		Short: "Log in to a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.parseType(args[0])
			if err != nil {
				return err
			}
			result := a.container.Manager.Login(cmd.Context(), t, data, a.container.Options)
			return a.report(cmd, string(t), result)
		},
	}
	f := cmd.Flags()
	f.StringVar(&data.Email, "email", "", "account email (required)")
	f.StringVar(&data.Password, "password", "", "account password (required)")
	f.BoolVar(&data.RememberMe, "remember", false, "tick the remember-me box")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterGeneratedCmd(a *app) *cobra.Command {
	var req entity.GenerateRequest
	var export string
	cmd := &cobra.Command{
		Use:   "register-generated <type>",
		Short: "Generate credentials and sign up with them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.parseType(args[0])
			if err != nil {
				return err
			}
			result := a.container.Manager.RegisterGenerated(cmd.Context(), t, req, a.container.Options)
			reportErr := a.report(cmd, string(t), result)

			generated, ok := generatedFromData(result.Data)
			if !ok {
				return reportErr
			}
			if !a.jsonOut {
				a.container.Console.ShowGenerated(cmd.Context(), []entity.GeneratedAccount{generated})
			}
			// The credentials are worth keeping even when signup stalls.
			if export != "" {
				if _, err := a.container.Generator.Export([]entity.GeneratedAccount{generated}, export); err != nil {
					return errors.Join(reportErr, err)
				}
			}
			return reportErr
		},
	}
	addGenerateFlags(cmd, &req)
	cmd.Flags().StringVar(&export, "export", "", "also write the generated account to this file")
	return cmd
}

func generatedFromData(data map[string]any) (entity.GeneratedAccount, bool) {
	acc, ok := data["generated_account"].(map[string]any)
	if !ok {
		return entity.GeneratedAccount{}, false
	}
	generatedAt, _ := time.Parse(time.RFC3339, str(acc["generated_at"]))
	return entity.GeneratedAccount{
		Username:    str(acc["username"]),
		Email:       str(acc["email"]),
		Password:    str(acc["password"]),
		Domain:      str(acc["domain"]),
		PIN:         str(acc["pin"]),
		GeneratedAt: generatedAt,
	}, true
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
