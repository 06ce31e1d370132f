package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/billtrack/internal/model"
)

// Version is set at build time.
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "billtrack",
	Short: "billtrack - follow U.S. legislation from the terminal",
	Long: `billtrack keeps a local, offline-first copy of the bills you follow.

Bills come from the remote bill service when networked mode is enabled and
the service is reachable. Otherwise they come from the on-device cache, and
on first run from the bundled seed data. Likes, dislikes and subscriptions
are always saved locally.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "billtrack %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Flag defaults become viper defaults, so they must match DefaultConfig.
	defaults := model.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/billtrack/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("mode", string(defaults.Mode), "resolver mode: offline or networked")
	flags.String("base-url", defaults.API.BaseURL, "remote bill service URL")
	flags.String("data-dir", defaults.Storage.DataDir, "directory for local state")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("api.base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("storage.data_dir", flags.Lookup("data-dir"))

	rootCmd.AddCommand(versionCmd)
}

// defaultConfigPath is where config init writes and initConfig looks.
func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "billtrack", "config.yaml")
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(filepath.Dir(defaultConfigPath()))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// BILLTRACK_API_BASE_URL overrides api.base_url, and so on.
	viper.SetEnvPrefix("BILLTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers defaults, the config file, the environment and flags.
func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()

	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range configKeys(reflect.TypeOf(*cfg), "") {
		_ = v.BindEnv(key)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: decode config: %v", model.ErrConfiguration, err)
	}

	llmFromEnv(&cfg.LLM)

	switch cfg.Mode {
	case model.ModeOffline, model.ModeNetworked:
	default:
		return nil, fmt.Errorf("%w: unknown mode %q (offline or networked)", model.ErrConfiguration, cfg.Mode)
	}
	return cfg, nil
}

// configKeys lists the dotted mapstructure key of every leaf field in t.
func configKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			keys = append(keys, configKeys(f.Type, name)...)
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

// llmFromEnv fills the provider's conventional environment variables into
// unset fields.
func llmFromEnv(c *model.LLMConfig) {
	if c.APIKey == "" {
		switch strings.ToLower(c.Provider) {
		case "openai":
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if c.BaseURL == "" && strings.EqualFold(c.Provider, "ollama") {
		c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
