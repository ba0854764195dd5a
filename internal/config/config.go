package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Share   ShareConfig   `yaml:"share" mapstructure:"share"`
	Insight InsightConfig `yaml:"insight" mapstructure:"insight"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the LocalRank API client.
type APIConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Key         string  `yaml:"key" mapstructure:"key"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst   int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// ServerConfig configures the tool server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// ShareConfig configures public visual report links.
type ShareConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// InsightConfig tunes the analytics layer.
type InsightConfig struct {
	StableBand    float64 `yaml:"stable_band" mapstructure:"stable_band"`
	ScanPageLimit int     `yaml:"scan_page_limit" mapstructure:"scan_page_limit"`
	Playbook      string  `yaml:"playbook" mapstructure:"playbook"`
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
	v.SetEnvPrefix("LOCALRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy deployments set LOCALRANK_API_URL and a bare PORT.
	if err := v.BindEnv("api.base_url", "LOCALRANK_API_BASE_URL", "LOCALRANK_API_URL"); err != nil {
		return nil, eris.Wrap(err, "config: bind api env")
	}
	if err := v.BindEnv("server.port", "LOCALRANK_SERVER_PORT", "PORT"); err != nil {
		return nil, eris.Wrap(err, "config: bind port env")
	}

	// Defaults
	v.SetDefault("api.base_url", "https://api.localrank.so")
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.rate_limit", 5)
	v.SetDefault("api.rate_burst", 5)
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.timeout_secs", 60)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("share.base_url", "https://app.localrank.so")
	v.SetDefault("insight.stable_band", 0.5)
	v.SetDefault("insight.scan_page_limit", 50)
	v.SetDefault("insight.playbook", "")
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

// Validate checks the configuration for the given run mode. The API key
// is deliberately not required here: requests may carry their own
// credentials, and the missing-credential case surfaces per call.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
		if c.Server.TimeoutSecs <= 0 {
			problems = append(problems, "server.timeout_secs must be > 0")
		}
	case "call":
		// One-shot tool calls have no serving requirements.
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.API.BaseURL == "" {
		problems = append(problems, "api.base_url is required")
	}
	if c.API.TimeoutSecs <= 0 {
		problems = append(problems, "api.timeout_secs must be > 0")
	}
	if c.API.RateLimit <= 0 {
		problems = append(problems, "api.rate_limit must be > 0")
	}
	if c.API.RateBurst < 1 {
		problems = append(problems, "api.rate_burst must be >= 1")
	}
	if c.Insight.StableBand < 0 {
		problems = append(problems, "insight.stable_band must be >= 0")
	}
	if c.Insight.ScanPageLimit < 1 || c.Insight.ScanPageLimit > 50 {
		problems = append(problems, "insight.scan_page_limit must be between 1 and 50")
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
