package configloader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"simulation_preview/internal/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "CONFIG_PATH"

// DefaultConfigPath is used when CONFIG_PATH is not set.
const DefaultConfigPath = "config/config.yaml"

// ServerConfig holds the server-specific configuration. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" validate:"required,numeric"`
	ReadTimeout  int    `yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout int    `yaml:"writeTimeout" validate:"gte=0"`
	IdleTimeout  int    `yaml:"idleTimeout" validate:"gte=0"`
	// MaxBodyBytes caps a preview request body.
	MaxBodyBytes int64 `yaml:"maxBodyBytes" validate:"gte=0"`
	// Pprof exposes /debug/pprof; keep it off in production.
	Pprof bool `yaml:"pprof"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
	File   string `yaml:"file"`
}

// DEXScreenerConfig holds DEXScreener API specific configurations.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL" validate:"required,url"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis" validate:"gt=0"`
}

// TokenPriceServiceConfig holds configuration for the TokenPriceService.
type TokenPriceServiceConfig struct {
	MaxTokensPerBatchRequest int     `yaml:"maxTokensPerBatchRequest" validate:"gt=0,lte=30"`
	CacheTTLMinutes          int     `yaml:"cacheTTLMinutes" validate:"gt=0"`
	RequestTimeoutMillis     int64   `yaml:"requestTimeoutMillis" validate:"gt=0"`
	MaxConcurrentRequests    int     `yaml:"maxConcurrentRequests" validate:"gt=0"`
	RateLimit                float64 `yaml:"rateLimit" validate:"gt=0"` // requests per second
	BurstLimit               int     `yaml:"burstLimit" validate:"gt=0"`
}

// PreviewConfig holds configuration for building balance change previews.
type PreviewConfig struct {
	DefaultChainID     uint64            `yaml:"defaultChainId" validate:"gt=0"`
	MaxBalanceChanges  int               `yaml:"maxBalanceChanges" validate:"gt=0"`
	MaxDisplayDecimals int32             `yaml:"maxDisplayDecimals" validate:"gte=0,lte=18"`
	ValuateByDefault   bool              `yaml:"valuateByDefault"`
	NativeBadgeImages  map[uint64]string `yaml:"nativeBadgeImages"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig            `yaml:"server"`
	Logging       LoggingConfig           `yaml:"logging"`
	DEXScreener   DEXScreenerConfig       `yaml:"dexScreener"`
	TokenPriceSvc TokenPriceServiceConfig `yaml:"tokenPriceService"`
	Preview       PreviewConfig           `yaml:"preview"`
	Swagger       SwaggerConfig           `yaml:"swagger"`
}

// PathFromEnv returns CONFIG_PATH or the default path.
func PathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultConfigPath
}

// Load reads the YAML configuration file from the given path, applies defaults and validates it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		logrus.Errorf("Invalid config in %s: %v", path, err)
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse decodes raw YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills every unset field with its default.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000 // 10 seconds
		logrus.Infof("DEXScreener.RequestTimeoutMillis not set, defaulting to %d ms", cfg.DEXScreener.RequestTimeoutMillis)
	}

	if cfg.TokenPriceSvc.MaxTokensPerBatchRequest == 0 {
		cfg.TokenPriceSvc.MaxTokensPerBatchRequest = 30 // DEXScreener limit
		logrus.Infof("MaxTokensPerBatchRequest for TokenPriceSvc not set, defaulting to %d", cfg.TokenPriceSvc.MaxTokensPerBatchRequest)
	}
	if cfg.TokenPriceSvc.CacheTTLMinutes == 0 {
		cfg.TokenPriceSvc.CacheTTLMinutes = 5
		logrus.Infof("CacheTTLMinutes for TokenPriceSvc not set, defaulting to %d minutes", cfg.TokenPriceSvc.CacheTTLMinutes)
	}
	if cfg.TokenPriceSvc.RequestTimeoutMillis == 0 {
		cfg.TokenPriceSvc.RequestTimeoutMillis = cfg.DEXScreener.RequestTimeoutMillis
		logrus.Infof("TokenPriceSvc.RequestTimeoutMillis not set, defaulting to DEXScreener.RequestTimeoutMillis: %d ms", cfg.TokenPriceSvc.RequestTimeoutMillis)
	}
	if cfg.TokenPriceSvc.MaxConcurrentRequests == 0 {
		cfg.TokenPriceSvc.MaxConcurrentRequests = 4
	}
	if cfg.TokenPriceSvc.RateLimit == 0 {
		cfg.TokenPriceSvc.RateLimit = 5 // DEXScreener allows 300 req/min
	}
	if cfg.TokenPriceSvc.BurstLimit == 0 {
		cfg.TokenPriceSvc.BurstLimit = cfg.TokenPriceSvc.MaxConcurrentRequests
	}

	if cfg.Preview.DefaultChainID == 0 {
		cfg.Preview.DefaultChainID = 1
	}
	if cfg.Preview.MaxBalanceChanges == 0 {
		cfg.Preview.MaxBalanceChanges = 100
	}
	if cfg.Preview.MaxDisplayDecimals == 0 {
		cfg.Preview.MaxDisplayDecimals = utils.DefaultDisplayDecimals
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "docs/swagger.yaml"
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config validation: %s", strings.Join(msgs, "; "))
}
