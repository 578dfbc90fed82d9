package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dvnc0/gimli/internal/app"
)

func routesCmd(configPath *string) *cobra.Command {
	var showPattern bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			a, err := app.New(app.Options{Config: cfg})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tTEMPLATE\tHANDLER\tMIDDLEWARE")
			for _, info := range a.Router.Table().Describe() {
				tpl := info.Template
				if showPattern {
					tpl = info.Pattern
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					info.Method, tpl, info.Handler, strings.Join(info.Middleware, ","))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&showPattern, "pattern", false, "print compiled patterns instead of templates")

	return cmd
}
