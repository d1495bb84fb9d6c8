package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/finsight-cli/internal/validate"
)

// Global configuration structure.
type Global struct {
	LogLevel     string `mapstructure:"log_level" yaml:"log_level" json:"log_level" validate:"oneof=debug info warn warning error"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format" json:"output_format" validate:"oneof=json text"`

	// Number parsing; empty means auto-detect per value.
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator" json:"decimal_separator" validate:"max=1"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator" json:"thousands_separator" validate:"max=1"`

	// Contribution defaults
	MinContribution float64 `mapstructure:"min_contribution" yaml:"min_contribution" json:"min_contribution" validate:"gte=0,lte=100"`
	ShowOthers      bool    `mapstructure:"show_others" yaml:"show_others" json:"show_others"`

	// Variance and trend defaults
	PeriodType  string `mapstructure:"period_type" yaml:"period_type" json:"period_type" validate:"oneof=week weekly month monthly quarter quarterly year yearly annual"`
	TrendWindow int    `mapstructure:"trend_window" yaml:"trend_window" json:"trend_window" validate:"gte=2"`
	TrendType   string `mapstructure:"trend_type" yaml:"trend_type" json:"trend_type" validate:"oneof=simple exponential"`

	// Outlier defaults
	OutlierMethod   string  `mapstructure:"outlier_method" yaml:"outlier_method" json:"outlier_method" validate:"oneof=iqr zscore both"`
	ZScoreThreshold float64 `mapstructure:"zscore_threshold" yaml:"zscore_threshold" json:"zscore_threshold" validate:"gt=0"`
	IQRMultiplier   float64 `mapstructure:"iqr_multiplier" yaml:"iqr_multiplier" json:"iqr_multiplier" validate:"gt=0"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"log_level", "output_format", "decimal_separator", "thousands_separator",
	"min_contribution", "show_others", "period_type", "trend_window", "trend_type",
	"outlier_method", "zscore_threshold", "iqr_multiplier",
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".finsight"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.finsight/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		LogLevel:        "info",
		OutputFormat:    "json",
		MinContribution: 1,
		ShowOthers:      true,
		PeriodType:      "monthly",
		TrendWindow:     3,
		TrendType:       "simple",
		OutlierMethod:   "both",
		ZScoreThreshold: 2,
		IQRMultiplier:   1.5,
	}
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.finsight/config.yaml) > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FINSIGHT")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("decimal_separator", d.DecimalSeparator)
	v.SetDefault("thousands_separator", d.ThousandsSeparator)
	v.SetDefault("min_contribution", d.MinContribution)
	v.SetDefault("show_others", d.ShowOthers)
	v.SetDefault("period_type", d.PeriodType)
	v.SetDefault("trend_window", d.TrendWindow)
	v.SetDefault("trend_type", d.TrendType)
	v.SetDefault("outlier_method", d.OutlierMethod)
	v.SetDefault("zscore_threshold", d.ZScoreThreshold)
	v.SetDefault("iqr_multiplier", d.IQRMultiplier)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

// Get renders the value of key as set would accept it.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "output_format":
		return c.OutputFormat, nil
	case "decimal_separator":
		return c.DecimalSeparator, nil
	case "thousands_separator":
		return c.ThousandsSeparator, nil
	case "min_contribution":
		return strconv.FormatFloat(c.MinContribution, 'f', -1, 64), nil
	case "show_others":
		return strconv.FormatBool(c.ShowOthers), nil
	case "period_type":
		return c.PeriodType, nil
	case "trend_window":
		return strconv.Itoa(c.TrendWindow), nil
	case "trend_type":
		return c.TrendType, nil
	case "outlier_method":
		return c.OutlierMethod, nil
	case "zscore_threshold":
		return strconv.FormatFloat(c.ZScoreThreshold, 'f', -1, 64), nil
	case "iqr_multiplier":
		return strconv.FormatFloat(c.IQRMultiplier, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val for key and applies it. The config is left unchanged when
// the value does not parse or fails validation.
func (c *Global) Set(key, val string) error {
	next := *c
	switch key {
	case "log_level":
		next.LogLevel = strings.ToLower(val)
	case "output_format":
		next.OutputFormat = strings.ToLower(val)
	case "decimal_separator":
		next.DecimalSeparator = val
	case "thousands_separator":
		next.ThousandsSeparator = val
	case "min_contribution":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for min_contribution: %w", err)
		}
		next.MinContribution = f
	case "show_others":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for show_others: %w", err)
		}
		next.ShowOthers = b
	case "period_type":
		next.PeriodType = strings.ToLower(val)
	case "trend_window":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for trend_window: %w", err)
		}
		next.TrendWindow = i
	case "trend_type":
		next.TrendType = strings.ToLower(val)
	case "outlier_method":
		next.OutlierMethod = strings.ToLower(val)
	case "zscore_threshold":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for zscore_threshold: %w", err)
		}
		next.ZScoreThreshold = f
	case "iqr_multiplier":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for iqr_multiplier: %w", err)
		}
		next.IQRMultiplier = f
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err := validate.Struct(next); err != nil {
		return err
	}
	*c = next
	return nil
}

// Separator returns the first rune of s, or 0 when s is empty.
func Separator(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
