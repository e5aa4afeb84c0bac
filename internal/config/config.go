package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/l2skilldata/internal/skilldata"
)

// Builder holds all configuration for a skill data build.
type Builder struct {
	LogLevel string `yaml:"log_level"`

	// Paths
	OriginalDir string `yaml:"original_dir"` // unmodified client .dat files
	OutputDir   string `yaml:"output_dir"`   // where patched files are written
	NpcsDir     string `yaml:"npcs_dir"`     // server NPC XML
	ItemsDir    string `yaml:"items_dir"`    // server item XML (display names)

	// Categories
	Info   bool `yaml:"info"`
	Drops  bool `yaml:"drops"`
	Spoils bool `yaml:"spoils"`

	Rates Rates `yaml:"rates"`

	// NPC source: "xml" (default) or "database"
	Source   string         `yaml:"source"`
	Database DatabaseConfig `yaml:"database"`

	// Parallel NPC XML parsing; <= 0 means one worker per CPU.
	ParseWorkers int `yaml:"parse_workers"`
}

// Rates holds the scaled ("VIP") mode multipliers.
type Rates struct {
	Scaled         bool    `yaml:"scaled"`
	ExpSP          float64 `yaml:"exp_sp"`
	ItemDrop       float64 `yaml:"item_drop"`
	CurrencyChance float64 `yaml:"currency_chance"`
	CurrencyAmount float64 `yaml:"currency_amount"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

const (
	SourceXML      = "xml"
	SourceDatabase = "database"
)

// DefaultBuilder returns Builder config with every category on and scaled
// mode off.
func DefaultBuilder() Builder {
	scaled := skilldata.DefaultScaledRates()
	return Builder{
		LogLevel:    "info",
		OriginalDir: "./original_data",
		OutputDir:   "./new_data",
		NpcsDir:     "./npcs",
		ItemsDir:    "./items",
		Info:        true,
		Drops:       true,
		Spoils:      true,
		Rates: Rates{
			Scaled:         false,
			ExpSP:          scaled.ExpSP,
			ItemDrop:       scaled.ItemDrop,
			CurrencyChance: scaled.CurrencyChance,
			CurrencyAmount: scaled.CurrencyAmount,
		},
		Source: SourceXML,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "la2go",
			Password: "la2go",
			DBName:   "la2go",
			SSLMode:  "disable",
		},
	}
}

// LoadBuilder loads builder config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBuilder(path string) (Builder, error) {
	cfg := DefaultBuilder()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late in a build.
func (b Builder) Validate() error {
	switch b.Source {
	case SourceXML, SourceDatabase:
	default:
		return fmt.Errorf("unknown source %q (want %q or %q)", b.Source, SourceXML, SourceDatabase)
	}
	for name, v := range map[string]float64{
		"exp_sp":          b.Rates.ExpSP,
		"item_drop":       b.Rates.ItemDrop,
		"currency_chance": b.Rates.CurrencyChance,
		"currency_amount": b.Rates.CurrencyAmount,
	} {
		if v < 0 {
			return fmt.Errorf("rates.%s must not be negative, got %g", name, v)
		}
	}
	return nil
}

// Categories converts the category toggles.
func (b Builder) Categories() skilldata.Categories {
	return skilldata.Categories{Information: b.Info, Drop: b.Drops, Spoil: b.Spoils}
}

// SkillRates converts the rate settings.
func (b Builder) SkillRates() skilldata.Rates {
	return skilldata.Rates{
		Enabled:        b.Rates.Scaled,
		ExpSP:          b.Rates.ExpSP,
		ItemDrop:       b.Rates.ItemDrop,
		CurrencyChance: b.Rates.CurrencyChance,
		CurrencyAmount: b.Rates.CurrencyAmount,
	}
}
