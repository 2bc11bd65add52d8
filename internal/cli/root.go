// Package cli implements the clubctl command tree.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/clubboard/internal/app"
	"github.com/rpggio/clubboard/internal/config"
	"github.com/spf13/cobra"
)

type ctxKey struct{}

type options struct {
	cfg     config.Config
	asJSON  bool
	verbose bool
}

func withOptions(ctx context.Context, o *options) context.Context {
	return context.WithValue(ctx, ctxKey{}, o)
}

func optionsFrom(ctx context.Context) *options {
	o, _ := ctx.Value(ctxKey{}).(*options)
	if o == nil {
		return &options{}
	}
	return o
}

func NewRootCmd(version string) *cobra.Command {
	var (
		apiURL  string
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "clubctl",
		Short:        "clubctl: command line access to the club dashboard API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}
			// One-shot commands never share a snapshot cache with the server.
			cfg.Cache.Path = ""
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withOptions(ctx, &options{cfg: cfg, asJSON: asJSON, verbose: verbose}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api", "", "Club API base URL (default from config, env: CLUBBOARD_API_BASE_URL)")
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API requests to stderr")

	cmd.AddCommand(newEventsCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newQueriesCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newSignupCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

// openApp builds the services for one command. Callers close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	o := optionsFrom(cmd.Context())
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return app.New(o.cfg, logger)
}

// printJSON writes v when --json is set and reports whether it did.
func printJSON(cmd *cobra.Command, v any) (bool, error) {
	if !optionsFrom(cmd.Context()).asJSON {
		return false, nil
	}
	return true, writeJSON(cmd.OutOrStdout(), v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
