package contract

import (
	"fmt"
	"strings"

	"github.com/arboclima/arboclima/schema"
)

// Default values for configuration.
const (
	DefaultLagMin    = 0
	DefaultLagMax    = 3
	MaxLag           = 11 // a lag past the series length can never pair a month
	DefaultPrecision = 3
	DefaultDataDir   = "data"
)

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir    string
	Disease    schema.Disease
	Variable   schema.ClimateVariable
	Region     schema.Region
	Year       int
	LagMin     int
	LagMax     int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// Clone returns a deep copy of the config, used by the MCP handlers to
// apply per-request overrides without touching the base config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	DataDir        string `mapstructure:"data-dir"`
	Disease        string `mapstructure:"disease"`
	Variable       string `mapstructure:"variable"`
	Region         string `mapstructure:"region"`
	Year           int    `mapstructure:"year"`
	LagMin         int    `mapstructure:"lag-min"`
	LagMax         int    `mapstructure:"lag-max"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
}

// ProcessAndValidate populates cfg from the raw input, validating
// every field. It is the single funnel between viper and the engine.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateRequestInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// validateRequestInputs processes the analysis request tuple.
func validateRequestInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	cfg.Disease = schema.Disease(strings.ToLower(input.Disease))
	if _, ok := schema.ValidDiseases[cfg.Disease]; !ok {
		return fmt.Errorf("invalid disease '%s'. must be dengue, zika, chikungunya", input.Disease)
	}

	cfg.Variable = schema.ClimateVariable(strings.ToLower(input.Variable))
	if _, ok := schema.ValidClimateVariables[cfg.Variable]; !ok {
		return fmt.Errorf("invalid climate variable '%s'. must be temperature, precipitation, humidity", input.Variable)
	}

	cfg.Region = schema.Region(strings.ToLower(input.Region))
	if _, ok := schema.ValidRegions[cfg.Region]; !ok {
		return fmt.Errorf("invalid region '%s'. must be one of %v", input.Region, schema.AllRegions)
	}

	if input.Year <= 0 {
		return fmt.Errorf("year is required (got %d)", input.Year)
	}
	cfg.Year = input.Year

	if input.LagMin < 0 {
		return fmt.Errorf("lag-min must be zero or positive (got %d)", input.LagMin)
	}
	if input.LagMax > MaxLag {
		return fmt.Errorf("lag-max must be at most %d (got %d)", MaxLag, input.LagMax)
	}
	if input.LagMin > input.LagMax {
		return fmt.Errorf("lag-min %d exceeds lag-max %d", input.LagMin, input.LagMax)
	}
	cfg.LagMin = input.LagMin
	cfg.LagMax = input.LagMax

	return nil
}

// validateOutputInputs processes output formatting fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > 10 {
		return fmt.Errorf("precision must be between 0 and 10 (got %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width must be zero or positive (got %d)", input.Width)
	}
	cfg.Width = input.Width

	switch strings.ToLower(input.Color) {
	case "", "yes", "on", "true":
		cfg.UseColors = true
	case "no", "off", "false":
		cfg.UseColors = false
	default:
		return fmt.Errorf("invalid color setting '%s'. must be yes or no", input.Color)
	}

	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' with the host:port to dial")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
