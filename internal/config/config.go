package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/yashgyy/ISPASS-Results/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Run     RunConfig     `yaml:"run" envconfig:"RUN"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes where raw counter exports are read from
type InputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"Raw_Files" validate:"required"`
}

// OutputConfig describes how summary tables are written
type OutputConfig struct {
	Dir       string `yaml:"dir" envconfig:"DIR" default:"Results_Parsed" validate:"required"`
	Format    string `yaml:"format" envconfig:"FORMAT" default:"csv" validate:"oneof=csv xlsx both"`
	Timestamp bool   `yaml:"timestamp" envconfig:"TIMESTAMP" default:"true"`
}

// RunConfig contains per-run processing knobs
type RunConfig struct {
	// DurationSeconds is the profiling run duration used to normalize
	// bandwidth counters. The raw exports do not record it, so it must be
	// supplied here and must match the actual run length.
	DurationSeconds float64 `yaml:"duration_seconds" envconfig:"DURATION_SECONDS" default:"300" validate:"gt=0"`
	// MinTableRows is the minimum number of valid data rows an aggregated
	// table export must contain before it is accepted.
	MinTableRows int `yaml:"min_table_rows" envconfig:"MIN_TABLE_ROWS" default:"1" validate:"gte=1"`
	// Categories optionally restricts the run to the named file categories.
	// Empty means all known categories.
	Categories []string `yaml:"categories" envconfig:"CATEGORIES" validate:"dive,oneof=energy performance bandwidth ipc cache instructions aggregate"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/perfsummary.log"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// Env values left at their defaults are replaced by file values when the
// file sets something different.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if fileConfig.Input.Dir != "" && envConfig.Input.Dir == DefaultInputDir {
		envConfig.Input.Dir = fileConfig.Input.Dir
	}
	if fileConfig.Output.Dir != "" && envConfig.Output.Dir == DefaultOutputDir {
		envConfig.Output.Dir = fileConfig.Output.Dir
	}
	if fileConfig.Output.Format != "" && envConfig.Output.Format == DefaultOutputFormat {
		envConfig.Output.Format = fileConfig.Output.Format
	}
	if fileConfig.Run.DurationSeconds != 0 && envConfig.Run.DurationSeconds == DefaultDurationSeconds {
		envConfig.Run.DurationSeconds = fileConfig.Run.DurationSeconds
	}
	if fileConfig.Run.MinTableRows != 0 && envConfig.Run.MinTableRows == DefaultMinTableRows {
		envConfig.Run.MinTableRows = fileConfig.Run.MinTableRows
	}
	if len(fileConfig.Run.Categories) > 0 && len(envConfig.Run.Categories) == 0 {
		envConfig.Run.Categories = fileConfig.Run.Categories
	}
	if fileConfig.Logging.Level != "" && envConfig.Logging.Level == "info" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && envConfig.Logging.Format == "json" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Logging.Output != "" && envConfig.Logging.Output == "console" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && envConfig.Logging.FilePath == "logs/perfsummary.log" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}

// Validate checks the configuration using struct validation tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the configuration file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}
	return ConfigFileName
}
