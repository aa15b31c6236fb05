package main

import (
	"account-automator/internal/domain/entity"

	"github.com/spf13/cobra"
)

func newServicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List supported services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := a.container.Manager.Infos()
			if a.jsonOut {
				return a.printJSON(infos)
			}
			a.container.Console.ShowServices(cmd.Context(), infos)
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <type>",
		Short: "Show the URLs of one service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.parseType(args[0])
			if err != nil {
				return err
			}
			info, _ := a.container.Manager.ServiceInfo(t)
			if a.jsonOut {
				return a.printJSON(info)
			}
			a.container.Console.ShowServices(cmd.Context(), []entity.ServiceInfo{info})
			return nil
		},
	}
}
