package cmd

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roheim/tvdbctl/config"
	"github.com/roheim/tvdbctl/httpcache"
	"github.com/roheim/tvdbctl/tvdb"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *tvdb.Client

	version   = "dev"
	buildTime = "unknown"

	// Persistent flags
	languageFlag string
	jsonOutput   bool
	noCache      bool
	selectFirst  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tvdbctl",
	Short: "A CLI for querying TheTVDB",
	Long: `tvdbctl looks up series and episode metadata from TheTVDB.

It handles the token lifecycle transparently and caches responses on
disk, so repeated lookups stay fast and cheap.`,
}

// SetVersion sets the version information shown by --version.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
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
	rootCmd.PersistentFlags().StringVar(&languageFlag, "language", "", "metadata language (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of tables")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "bypass the on-disk response cache")
	rootCmd.PersistentFlags().BoolVar(&selectFirst, "first", false, "return only the first search match")

	rootCmd.AddCommand(testCmd)
}

// initializeApp loads the configuration and builds the API client. It
// runs as PreRunE on every command that talks to the service; commands
// like update stay usable without a config file.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override config from command line if specified
	if cmd.Flags().Changed("language") {
		cfg.TVDB.Language = languageFlag
	}
	if cmd.Flags().Changed("first") {
		cfg.TVDB.SelectFirst = selectFirst
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	client, err = newAPIClient()
	if err != nil {
		return fmt.Errorf("failed to create TVDB client: %w", err)
	}

	return nil
}

// newAPIClient builds the tvdb client from the loaded configuration,
// wiring the response cache into its transport when enabled.
func newAPIClient() (*tvdb.Client, error) {
	opts := []tvdb.Option{
		tvdb.WithBaseURL(cfg.TVDB.ServiceURL),
		tvdb.WithLanguage(cfg.TVDB.Language),
		tvdb.WithSelectFirst(cfg.TVDB.SelectFirst),
	}

	switch {
	case cfg.Cache.Enabled:
		var inner http.RoundTripper = http.DefaultTransport
		if !cfg.TVDB.VerifyTLS {
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
			inner = transport
		}
		cached := httpcache.NewTransport(cfg.Cache.Dir, logger,
			httpcache.WithMaxAge(cfg.Cache.MaxAge),
			httpcache.WithInnerTransport(inner),
		)
		opts = append(opts, tvdb.WithHTTPClient(&http.Client{
			Transport: cached,
			Timeout:   30 * time.Second,
		}))
	case !cfg.TVDB.VerifyTLS:
		opts = append(opts, tvdb.WithInsecureTLS())
	}

	return tvdb.NewClient(cfg.TVDB.APIKey, cfg.TVDB.Username, cfg.TVDB.Password, logger, opts...)
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

	// Console format, colored only on real terminals
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test authentication against TheTVDB",
	Long:    `Authenticate against the configured TheTVDB service and report the session state.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing authentication against %s...\n", cfg.TVDB.ServiceURL)

	ctx := context.Background()
	if err := client.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Println("✓ Authentication successful!")
	fmt.Printf("- Language: %s\n", client.Language())
	fmt.Printf("- Select first match: %s\n", boolToStatus(cfg.TVDB.SelectFirst))
	fmt.Printf("- Response cache: %s\n", boolToStatus(cfg.Cache.Enabled))
	if cfg.Cache.Enabled {
		fmt.Printf("- Cache directory: %s (max age %s)\n", cfg.Cache.Dir, cfg.Cache.MaxAge)
	}

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
