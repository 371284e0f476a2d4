package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PlaceholderAPIKey is the out-of-the-box Street View key value. Runs with
// this key still execute, but every lookup comes back REQUEST_DENIED.
const PlaceholderAPIKey = "YOUR_GOOGLE_MAPS_API_KEY_HERE"

// Config holds the full application configuration.
type Config struct {
	Works      []int            `yaml:"works" mapstructure:"works"`
	Dedupe     bool             `yaml:"dedupe" mapstructure:"dedupe"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Catalog    CatalogConfig    `yaml:"catalog" mapstructure:"catalog"`
	StreetView StreetViewConfig `yaml:"streetview" mapstructure:"streetview"`
	Resolve    ResolveConfig    `yaml:"resolve" mapstructure:"resolve"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// OutputConfig holds the export destinations.
type OutputConfig struct {
	CSVPath     string `yaml:"csv_path" mapstructure:"csv_path"`
	URLListPath string `yaml:"url_list_path" mapstructure:"url_list_path"`
}

// CatalogConfig holds anitabi catalog API settings.
type CatalogConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// StreetViewConfig holds Google Street View metadata API settings.
type StreetViewConfig struct {
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Radius      int    `yaml:"radius" mapstructure:"radius"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ResolveConfig configures the panorama resolution phase.
type ResolveConfig struct {
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
	QPS         float64 `yaml:"qps" mapstructure:"qps"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PANOTABI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The Street View key also binds to the provider's own variable so a
	// key exported for other Maps tooling is picked up as-is.
	if err := v.BindEnv("streetview.api_key", "PANOTABI_STREETVIEW_API_KEY", "GOOGLE_MAPS_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind env")
	}

	// Defaults
	v.SetDefault("dedupe", true)
	v.SetDefault("output.csv_path", "output.csv")
	v.SetDefault("output.url_list_path", "tuxun_output.txt")
	v.SetDefault("catalog.base_url", "https://api.anitabi.cn")
	v.SetDefault("catalog.timeout_secs", 10)
	v.SetDefault("streetview.api_key", PlaceholderAPIKey)
	v.SetDefault("streetview.base_url", "https://maps.googleapis.com/maps/api/streetview")
	v.SetDefault("streetview.radius", 50)
	v.SetDefault("streetview.timeout_secs", 10)
	v.SetDefault("resolve.concurrency", 1)
	v.SetDefault("resolve.qps", 0.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable for a resolve run. The
// placeholder API key passes validation; it is warned about at run time
// instead so dry runs against the catalog still work.
func (c *Config) Validate() error {
	var problems []string

	if c.StreetView.APIKey == "" {
		problems = append(problems, "streetview.api_key is required")
	}
	if c.StreetView.Radius <= 0 {
		problems = append(problems, "streetview.radius must be > 0")
	}
	if c.StreetView.TimeoutSecs <= 0 {
		problems = append(problems, "streetview.timeout_secs must be > 0")
	}
	if c.Catalog.TimeoutSecs <= 0 {
		problems = append(problems, "catalog.timeout_secs must be > 0")
	}
	if c.Resolve.Concurrency < 1 || c.Resolve.Concurrency > 32 {
		problems = append(problems, "resolve.concurrency must be between 1 and 32")
	}
	if c.Resolve.QPS < 0 {
		problems = append(problems, "resolve.qps must be >= 0")
	}
	if c.Output.CSVPath == "" {
		problems = append(problems, "output.csv_path is required")
	}
	if c.Output.URLListPath == "" {
		problems = append(problems, "output.url_list_path is required")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
