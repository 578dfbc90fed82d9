package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dvnc0/gimli/internal/app"
	"github.com/dvnc0/gimli/mux"
)

func runCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run <command> [--option value] [-x] [--flag]",
		Short: "Dispatch a CLI command",
		Long: `Dispatch a command through the CLI routes. Everything after "run"
is handed to the dispatcher unparsed:

  gimli run deploy --environment=production --force -v
  gimli run posts-list`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			a, err := app.New(app.Options{Config: cfg, Logger: logger, Tracer: tracer})
			if err != nil {
				return err
			}

			resp := a.Run(cmd.Context(), args)

			out := cmd.OutOrStdout()
			if mux.ExitCode(resp) != 0 {
				out = cmd.ErrOrStderr()
			}
			if _, err := out.Write(resp.Body); err != nil {
				return err
			}
			if len(resp.Body) > 0 && resp.Body[len(resp.Body)-1] != '\n' {
				_, _ = out.Write([]byte{'\n'})
			}

			if code := mux.ExitCode(resp); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}
