package app

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dvnc0/gimli/cli"
	"github.com/dvnc0/gimli/mux"
)

// DeployInput holds the parsed arguments of the deploy command.
type DeployInput struct {
	Subcommand string       `route:"subcommand"`
	Options    *cli.Options `route:"options"`
	Flags      []string     `route:"flags"`
}

// DeployCommand simulates a deployment.
//
//	gimli run -- deploy --environment=production --force -v
type DeployCommand struct{}

// Invoke validates the target environment and reports what would run.
func (DeployCommand) Invoke(log logrus.FieldLogger, in DeployInput) *mux.Response {
	env, _ := in.Options.Get("environment")
	if env == "" {
		return mux.Text(http.StatusBadRequest, "deploy: --environment is required\n")
	}

	force := slices.Contains(in.Flags, "force")
	verbose := slices.Contains(in.Flags, "v")

	log.WithFields(logrus.Fields{
		"environment": env,
		"force":       force,
	}).Info("deploy requested")

	var sb strings.Builder
	fmt.Fprintf(&sb, "deploying to %s", env)
	if force {
		sb.WriteString(" (forced)")
	}
	sb.WriteString("\n")
	if verbose {
		for _, key := range in.Options.Keys() {
			v, _ := in.Options.Get(key)
			fmt.Fprintf(&sb, "  %s=%s\n", key, v)
		}
	}

	return mux.Text(http.StatusOK, sb.String())
}

// ListPostsCommand prints every post as JSON.
type ListPostsCommand struct{}

// Invoke returns the post list. The binder encodes it as JSON.
func (ListPostsCommand) Invoke(store PostStore) []Post {
	return store.List()
}
