package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/insightsgpt/insightsgpt/internal/cache"
	"github.com/insightsgpt/insightsgpt/internal/fetch"
	"github.com/insightsgpt/insightsgpt/internal/model"
	"github.com/insightsgpt/insightsgpt/internal/store"
)

var (
	cfgFile string
	verbose bool
	dataDir string
	noCache bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "insightsgpt",
	Short: "InsightsGPT - Fetch and analyze U.S. legislative and regulatory data",
	Long: `InsightsGPT makes government data accessible from the command line.

It fetches structured JSON from Congress.gov, the Federal Register,
Regulations.gov, GovInfo, the FEC, and the Senate lobbying disclosure
system, archives every response verbatim to disk, and ships analysis
tools on top: dataset validation, keyword monitoring, trend charts, and
an embedding-based bill text similarity detector.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for InsightsGPT.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("insightsgpt v1.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.insightsgpt/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "base directory for archived JSON (default: data)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable response cache (force fresh fetch)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file, and INSIGHTSGPT_* env vars
func initConfig() {
	// API keys commonly live in a local .env file
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.insightsgpt")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match INSIGHTSGPT_*
	viper.SetEnvPrefix("INSIGHTSGPT")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: defaults, then
// config file, then flags.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("http.timeout") {
		cfg.HTTP.Timeout = viper.GetDuration("http.timeout")
	}
	if viper.IsSet("http.user_agent") {
		cfg.HTTP.UserAgent = viper.GetString("http.user_agent")
	}
	if viper.IsSet("http.max_body_bytes") {
		cfg.HTTP.MaxBodyBytes = viper.GetInt64("http.max_body_bytes")
	}
	if viper.IsSet("http.max_retries") {
		cfg.HTTP.MaxRetries = viper.GetInt("http.max_retries")
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}
	if viper.IsSet("rate_limit.requests_per_second") {
		cfg.RateLimit.RequestsPerSecond = viper.GetFloat64("rate_limit.requests_per_second")
	}
	if viper.IsSet("rate_limit.burst") {
		cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")
	}
	if viper.IsSet("similarity.provider") {
		cfg.Similarity.Provider = viper.GetString("similarity.provider")
	}
	if viper.IsSet("similarity.model") {
		cfg.Similarity.Model = viper.GetString("similarity.model")
	}
	if viper.IsSet("similarity.base_url") {
		cfg.Similarity.BaseURL = viper.GetString("similarity.base_url")
	}

	if dataDir != "" {
		cfg.Output.DataDir = dataDir
	} else if viper.IsSet("output.data_dir") {
		if d := viper.GetString("output.data_dir"); d != "" {
			cfg.Output.DataDir = d
		}
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// newFetchClient builds the shared HTTP client from the configuration.
func newFetchClient(cfg *model.Config) *fetch.Client {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}
	return fetch.NewClient(cfg.HTTP, cfg.RateLimit, c, cfg.Cache.TTL)
}

// newStore builds the JSON archive rooted at the data directory.
func newStore(cfg *model.Config) *store.Store {
	return store.New(cfg.Output.DataDir)
}

// statusf prints a green status line to stderr.
func statusf(format string, a ...interface{}) {
	_, _ = color.New(color.FgGreen).Fprintf(os.Stderr, format, a...)
}

// warnf prints a yellow warning line to stderr.
func warnf(format string, a ...interface{}) {
	_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, format, a...)
}
