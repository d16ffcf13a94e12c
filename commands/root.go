// Package commands holds the onboarding-console command tree.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"onboarding-console/buildinfo"
	"onboarding-console/config"
	"onboarding-console/gateway"
	"onboarding-console/logging"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configDir  string
	backendURL string
	jsonOut    bool

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "onboarding-console",
		Short:   "Back-office console for customer onboarding and account operations",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configDir, "config-dir", ".", "directory holding the optional .env file")
	flags.StringVar(&a.backendURL, "backend-url", "", "bank backend base URL (overrides BACKEND_URL)")
	flags.BoolVar(&a.jsonOut, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newServeCommand(a),
		newMockBackendCommand(a),
		newCustomersCommand(a),
		newAccountsCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the command tree against the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) load(cmd *cobra.Command) error {
	if err := godotenv.Load(filepath.Join(a.configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.backendURL != "" {
		cfg.BackendURL = strings.TrimRight(strings.TrimSpace(a.backendURL), "/")
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	if strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) client() *gateway.Client {
	return gateway.NewClient(a.cfg.BackendURL, a.cfg.RequestTimeout)
}

func (a *app) printer(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), json: a.jsonOut}
}
