package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/dvnc0/gimli/config"
)

const tracerName = "github.com/dvnc0/gimli"

func main() {
	rootCmd := &cobra.Command{
		Use:   "gimli",
		Short: "Route HTTP requests and CLI commands through one dispatcher",
		Long: `gimli serves the example posts API over HTTP and dispatches the
same application's CLI commands through the shared route table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		runCmd(&configPath),
		routesCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gimli: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.Config) (*logrus.Logger, error) {
	return cfg.Log.NewLogger(os.Stderr)
}

var tracer = otel.Tracer(tracerName)
