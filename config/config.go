package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/configparser"
	"github.com/go-playground/validator/v10"
)

// Flags
var (
	modeFlag   = flag.String("mode", string(types.ProcessMode), "application mode: process, serve or token")
	sourceFlag = flag.String("source", "", "path to the ride records file (overrides PIPELINE_SOURCE_PATH)")
	outFlag    = flag.String("out", "", "output directory for artifacts (overrides PIPELINE_OUTPUT_DIR)")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode `ignored:"true"`

		App      AppConfig      `envconfig:"APP"`
		Pipeline PipelineConfig `envconfig:"PIPELINE"`
		Export   ExportConfig   `envconfig:"EXPORT"`
		Database DatabaseConfig `envconfig:"DATABASE"`
		RabbitMQ RabbitMQConfig `envconfig:"RABBITMQ"`
		HTTP     HTTPConfig     `envconfig:"HTTP"`
		Auth     Auth           `envconfig:"AUTH"`
	}

	// Inner fields rely on split_words: an explicit envconfig tag would make
	// envconfig fall back to the bare name (USER, PORT, ...) when the
	// prefixed key is unset.
	AppConfig struct {
		ServiceName string `split_words:"true" default:"ride-analytics" validate:"required"`
		LogLevel    string `split_words:"true" default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	}

	PipelineConfig struct {
		SourcePath string `split_words:"true" default:"data/raw_rides.csv" validate:"required"`
		OutputDir  string `split_words:"true" default:"data/processed" validate:"required"`
		Delimiter  string `default:"," validate:"len=1"`
		// -1 keeps the shortest exact representation of floats.
		FloatPrecision int `split_words:"true" default:"-1" validate:"min=-1,max=15"`
	}

	ExportConfig struct {
		BOMPrefix    bool   `split_words:"true" default:"false"`
		XLSXEnabled  bool   `split_words:"true" default:"false"`
		XLSXFileName string `split_words:"true" default:"analytics.xlsx" validate:"required,endswith=.xlsx"`
	}

	DatabaseConfig struct {
		Enabled  bool   `default:"false"`
		Host     string `default:"localhost" validate:"required_if=Enabled true"`
		Port     string `default:"5432" validate:"required_if=Enabled true"`
		User     string `default:"analytics_user"`
		Password string `default:"analytics_pass"`
		Database string `default:"analytics_db" validate:"required_if=Enabled true"`
		Schema   string `default:"analytics" validate:"required_if=Enabled true"`

		MaxConns        int32         `split_words:"true" default:"10"`  // максимум открытых соединений
		MinConns        int32         `split_words:"true" default:"1"`   // минимум соединений в пуле
		MaxConnLifetime time.Duration `split_words:"true" default:"30m"` // макс. "время жизни" соединения
		MaxConnIdleTime time.Duration `split_words:"true" default:"5m"`  // макс. "время простоя" соединения
	}

	RabbitMQConfig struct {
		Enabled  bool   `default:"false"`
		Host     string `default:"localhost" validate:"required_if=Enabled true"`
		Port     string `default:"5672" validate:"required_if=Enabled true"`
		User     string `default:"guest"`
		Password string `default:"guest"`
	}

	HTTPConfig struct {
		Host string `default:"0.0.0.0"`
		Port string `default:"8080" validate:"required,numeric"`
	}

	Auth struct {
		AccessTokenTTL time.Duration `split_words:"true" default:"15m" validate:"gt=0"`
		JWTSecret      string        `split_words:"true" default:"supersecretkey" validate:"required,min=8"`
		// Subject written into tokens issued by -mode token.
		TokenSubject string `split_words:"true" default:"operator" validate:"required"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c DatabaseConfig) PoolLimits() (maxConns, minConns int32, maxLifetime, maxIdle time.Duration) {
	return c.MaxConns, c.MinConns, c.MaxConnLifetime, c.MaxConnIdleTime
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

// DelimiterRune returns the configured field separator as a rune.
func (c PipelineConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and the mode.
func (c *Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidMode, c.Mode)
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	cfg.Mode = types.ServiceMode(*modeFlag)

	if sourceFlag != nil && *sourceFlag != "" {
		cfg.Pipeline.SourcePath = *sourceFlag
	}
	if outFlag != nil && *outFlag != "" {
		cfg.Pipeline.OutputDir = *outFlag
	}

	return nil
}
