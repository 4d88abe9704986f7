package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Archasion/arlox/config"
	"github.com/Archasion/arlox/roblox"
	"github.com/Archasion/arlox/roblox/users"
)

var (
	cfgFile     string
	cookieFlag  string
	cfg         *config.Config
	logger      zerolog.Logger
	rbxClient   *roblox.Client
	usersClient *users.Client

	// Command flags
	filterExpr    string
	preset        string
	searchLimit   int
	excludeBanned bool
	byUsername    bool

	version   = "dev"
	buildTime = "unknown"
)

// SetVersion records build metadata injected through ldflags.
func SetVersion(v, t string) {
	version = v
	buildTime = t
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, t)
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "arlox",
	Short: "Query the Roblox web API from the command line",
	Long: `arlox is a CLI for the Roblox web API. It looks up user profiles,
resolves usernames to IDs and back, searches users with filter
expressions, and lists username history.

Authenticated endpoints need a .ROBLOSECURITY cookie, supplied via the
config file, the ARLOX_ROBLOX_COOKIE environment variable, or --cookie.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&cookieFlag, "cookie", "", ".ROBLOSECURITY cookie value (overrides config)")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override cookie from command line if specified
	if cmd.Flags().Changed("cookie") {
		cfg.Roblox.Cookie = cookieFlag
	}

	rbxClient = roblox.NewClient(logger, roblox.WithUserAgent("arlox/"+version))

	// Establish the session up front so every command runs with the
	// same credentials.
	if cfg.Roblox.Cookie != "" {
		if err := rbxClient.Authenticate(context.Background(), sessionCookie(cfg.Roblox.Cookie)); err != nil {
			return fmt.Errorf("failed to authenticate with Roblox: %w", err)
		}
		logger.Debug().Msg("Authenticated Roblox session established")
	}

	usersClient = users.NewClient(rbxClient, logger)

	return nil
}

// sessionCookie turns a bare .ROBLOSECURITY value into the Cookie
// header form the API expects. Values that already name a cookie pass
// through untouched.
func sessionCookie(value string) string {
	if strings.Contains(value, "=") {
		return value
	}
	return ".ROBLOSECURITY=" + value
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when stderr is actually a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.Default, nil
}
