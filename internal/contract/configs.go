package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/binbridge/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 3
	MaxPrecision     = 12
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	Source         string
	Scope          []string

	Name    string // Object name from positional args
	Pattern string // Listing filter from positional args

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Rebin       int
	RebinX      int
	RebinY      int
	Scale       float64
	XScale      float64
	YScale      float64
	Shift       float64
	WidthFactor float64
	KillZeros   bool
	Transpose   bool
	Norm        bool   // Scale 1D results to unit total
	NormTo      string // Scale 1D results to the total of this object

	Axis     schema.Axis
	FirstBin int
	LastBin  int
}

// DefaultConfig returns a Config that leaves every dataset as stored.
func DefaultConfig() *Config {
	return &Config{
		StoreBackend: schema.SQLiteBackend,
		Precision:    DefaultPrecision,
		Output:       schema.TextOut,
		Rebin:        1,
		RebinX:       1,
		RebinY:       1,
		Scale:        1,
		XScale:       1,
		YScale:       1,
		WidthFactor:  1,
		KillZeros:    true,
		Axis:         schema.XAxis,
		LastBin:      -1,
	}
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	NameStr    string
	PatternStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-connect"`
	Source         string `mapstructure:"source"`
	Scope          string `mapstructure:"scope"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`

	// --- Fields from the plotting commands ---
	Rebin       int     `mapstructure:"rebin"`
	RebinX      int     `mapstructure:"rebinx"`
	RebinY      int     `mapstructure:"rebiny"`
	Scale       float64 `mapstructure:"scale"`
	XScale      float64 `mapstructure:"xscale"`
	YScale      float64 `mapstructure:"yscale"`
	Shift       float64 `mapstructure:"shift"`
	WidthFactor float64 `mapstructure:"width-factor"`
	KillZeros   string  `mapstructure:"kill-zeros"`
	Transpose   bool    `mapstructure:"transpose"`
	Norm        bool    `mapstructure:"norm"`
	NormTo      string  `mapstructure:"norm-to"`

	// --- Fields from projectCmd.Flags() ---
	Axis     string `mapstructure:"axis"`
	FirstBin int    `mapstructure:"first-bin"`
	LastBin  int    `mapstructure:"last-bin"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Scope != nil {
		clone.Scope = make([]string, len(c.Scope))
		copy(clone.Scope, c.Scope)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfigs(cfg, input); err != nil {
		return err
	}
	if err := validatePlotInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.FileBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
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

// SplitScope turns "a/b/c" into its path segments. Empty segments are dropped.
func SplitScope(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, "/") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateOutputInputs processes the output related fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Name = input.NameStr
	cfg.Pattern = input.PatternStr
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, xlsx, svg", input.Output)
	}
	if (cfg.Output == schema.ParquetOut || cfg.Output == schema.XLSXOut) && cfg.OutputFile == "" {
		return fmt.Errorf("output format '%s' requires --output-file", cfg.Output)
	}
	return nil
}

// validateStoreConfigs validates the store backend configuration.
func validateStoreConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, file", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}
	cfg.Source = input.Source
	if cfg.StoreBackend == schema.FileBackend && cfg.Source == "" {
		return fmt.Errorf("--source is required when using %s backend", schema.FileBackend)
	}
	cfg.Scope = SplitScope(input.Scope)
	return nil
}

// validatePlotInputs validates the transformation options.
func validatePlotInputs(cfg *Config, input *ConfigRawInput) error {
	for flag, v := range map[string]int{"rebin": input.Rebin, "rebinx": input.RebinX, "rebiny": input.RebinY} {
		if v < 1 {
			return fmt.Errorf("%s must be a positive integer (received %d)", flag, v)
		}
	}
	cfg.Rebin = input.Rebin
	cfg.RebinX = input.RebinX
	cfg.RebinY = input.RebinY

	if input.WidthFactor <= 0 {
		return fmt.Errorf("width-factor must be greater than 0 (received %g)", input.WidthFactor)
	}
	cfg.Scale = input.Scale
	cfg.XScale = input.XScale
	cfg.YScale = input.YScale
	cfg.Shift = input.Shift
	cfg.WidthFactor = input.WidthFactor
	cfg.Transpose = input.Transpose

	if input.Norm && input.NormTo != "" {
		return fmt.Errorf("norm and norm-to cannot be combined")
	}
	cfg.Norm = input.Norm
	cfg.NormTo = input.NormTo

	killZeros, err := ParseBoolString(input.KillZeros)
	if err != nil {
		return fmt.Errorf("invalid --kill-zeros value: %w", err)
	}
	cfg.KillZeros = killZeros

	cfg.Axis = schema.Axis(strings.ToLower(input.Axis))
	if cfg.Axis != schema.XAxis && cfg.Axis != schema.YAxis {
		return fmt.Errorf("invalid axis '%s'. must be x or y", input.Axis)
	}
	if input.FirstBin < 0 {
		return fmt.Errorf("first-bin cannot be negative (received %d)", input.FirstBin)
	}
	cfg.FirstBin = input.FirstBin
	cfg.LastBin = input.LastBin
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
