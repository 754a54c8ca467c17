package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
	"github.com/certipro/certipro-cli/internal/api"
)

var (
	verbose    bool
	apiURL     string
	statePath  string
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "certipro",
	Short: "Terminal client for the CertiPro certification platform",
	Long: `A CLI client for the CertiPro certification-management platform.

Talk to the CertiPro backend from your terminal: browse ISO standards,
chat with the certification assistant, and manage organization and
certification-body requests according to your role.

Features:
  • Streaming chat assistant with persistent sessions
  • ISO standards search with category filters and pagination
  • Organization / certification-body request workflows
  • Role-gated views (admin, manager, employee, guest)
  • Invitation and member management for organizations
  • Transcript export (JSONL, Markdown, YAML, JSON)

Quick Start:
  certipro login                         # Authenticate
  certipro chat                          # Talk to the assistant
  certipro standards --keyword 9001      # Search the catalog
  certipro requests list                 # View your requests

Configuration lives in ~/.certipro/config.yaml; CERTIPRO_API_URL
overrides the backend address.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// .env is optional; local dev convenience only
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Custom state database location")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file location")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// appEnv bundles the client-side wiring shared by every command: config,
// the local state store, and the API client reading its token from it.
type appEnv struct {
	cfg    *internal.Config
	store  *internal.Store
	client *api.Client
}

func newAppEnv() (*appEnv, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	dbPath := statePath
	if dbPath == "" {
		dbPath = cfg.StatePath
	}
	if dbPath == "" {
		dbPath, err = internal.DefaultStatePath()
		if err != nil {
			return nil, err
		}
	}

	store, err := internal.OpenStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, store.Token)
	return &appEnv{cfg: cfg, store: store, client: client}, nil
}

func (e *appEnv) Close() {
	if err := e.store.Close(); err != nil {
		internal.LogWarn("Failed to close state store: %v", err)
	}
}

// resolveProfile runs the auth gate once for this invocation
func (e *appEnv) resolveProfile(ctx context.Context) *internal.UserProfile {
	return internal.ResolveProfile(ctx, e.store, e.client)
}

// requireAccess resolves the profile and applies the route guard for the
// view a command renders. The route-guard redirects of the web app map to
// errors telling the user where they ended up instead.
func (e *appEnv) requireAccess(ctx context.Context, route string) (*internal.UserProfile, error) {
	profile := e.resolveProfile(ctx)
	decision := internal.CheckAccess(profile, route)
	if decision.Allowed {
		return profile, nil
	}
	if decision.Redirect == "/login" {
		return nil, fmt.Errorf("not logged in (wanted %s): run `certipro login` first", decision.From)
	}
	return nil, fmt.Errorf("your role does not grant access to %s", decision.From)
}
