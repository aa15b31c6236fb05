package main

import (
	"fmt"

	"account-automator/internal/domain/entity"

	"github.com/spf13/cobra"
)

func addGenerateFlags(cmd *cobra.Command, req *entity.GenerateRequest) {
	f := cmd.Flags()
	f.StringVar(&req.Domain, "domain", "", "email domain (default from config)")
	f.StringVar(&req.UsernamePrefix, "prefix", "", "username prefix (random when empty)")
	f.BoolVar(&req.IncludePIN, "pin", false, "also generate a PIN")
	f.StringVar(&req.PIN, "pin-value", "", "use this PIN instead of a random one")
	f.IntVar(&req.PasswordLength, "length", 0, "password length (default from config)")
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		req    entity.GenerateRequest
		count  int
		export string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate throwaway account credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			accounts, err := a.container.Generator.Batch(count, req)
			if err != nil {
				return err
			}

			if a.jsonOut {
				if err := a.printJSON(accounts); err != nil {
					return err
				}
			} else {
				a.container.Console.ShowGenerated(cmd.Context(), accounts)
			}

			if cmd.Flags().Changed("export") {
				path, err := a.container.Generator.Export(accounts, export)
				if err != nil {
					return err
				}
				a.container.Logger.Info("Generated accounts exported", "path", path, "count", len(accounts))
				if !a.jsonOut {
					fmt.Fprintf(a.out, "saved to %s\n", path)
				}
			}
			return nil
		},
	}
	addGenerateFlags(cmd, &req)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of accounts")
	cmd.Flags().StringVar(&export, "export", "", `write accounts to a .txt or .yaml file; --export "" picks a timestamped name`)
	return cmd
}
