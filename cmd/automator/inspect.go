package main

import (
	"fmt"
	"text/tabwriter"

	"account-automator/internal/infrastructure/browser/rod"

	"github.com/spf13/cobra"
)

// inspect helps write selector lists for a new service.
func newInspectCmd(a *app) *cobra.Command {
	var screenshot bool
	cmd := &cobra.Command{
		Use:   "inspect <url>",
		Short: "List the form controls of a page with selector candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			factory := rod.NewSessionFactory(a.container.Config.FactoryConfig(), a.container.Logger)
			sess, err := factory.OpenSession(ctx, a.container.Options)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.Navigate(ctx, args[0]); err != nil {
				return err
			}
			controls, err := sess.Controls(ctx)
			if err != nil {
				return err
			}
			if screenshot {
				if path := sess.Screenshot(ctx, "inspect"); path != "" {
					a.container.Logger.Info("Screenshot saved", "path", path)
				}
			}

			if a.jsonOut {
				return a.printJSON(controls)
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tTAG\tSELECTOR\tLABEL")
			for _, c := range controls {
				label := c.Text
				if label == "" {
					label = c.Placeholder
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Kind, c.Tag, c.Selector, label)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&screenshot, "screenshot", false, "also save a screenshot of the page")
	return cmd
}
