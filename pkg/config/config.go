// Package config loads inspekt settings from an optional YAML file,
// overlaid by INSPEKT_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // Field devices may lack a zoneinfo database

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/inspekt/pkg/adapters/location"
	"github.com/aretw0/inspekt/pkg/export"
	"github.com/aretw0/inspekt/pkg/report"
)

// FileName is the config file searched for by root discovery.
const FileName = "inspekt.yaml"

// Config holds every tunable of the pipeline.
type Config struct {
	Root           string `yaml:"root" env:"INSPEKT_ROOT,overwrite"`
	MetadataFormat string `yaml:"metadata_format" env:"INSPEKT_METADATA_FORMAT,overwrite"`

	Report  Report  `yaml:"report"`
	Export  Export  `yaml:"export"`
	Capture Capture `yaml:"capture"`

	MetricsFile string `yaml:"metrics_file" env:"INSPEKT_METRICS_FILE,overwrite"`
}

// Report configures the compiler.
type Report struct {
	Engine    string `yaml:"engine" env:"INSPEKT_ENGINE,overwrite"`
	Locale    string `yaml:"locale" env:"INSPEKT_LOCALE,overwrite"`
	DateStyle string `yaml:"date_style" env:"INSPEKT_DATE_STYLE,overwrite"`
	Timezone  string `yaml:"timezone" env:"INSPEKT_TIMEZONE,overwrite"`

	ChromePath      string `yaml:"chrome_path" env:"INSPEKT_CHROME_PATH,overwrite"`
	ChromeNoSandbox bool   `yaml:"chrome_no_sandbox" env:"INSPEKT_CHROME_NO_SANDBOX,overwrite"`
}

// Export configures the publisher.
type Export struct {
	Naming       string `yaml:"naming" env:"INSPEKT_NAMING,overwrite"`
	ShareCommand string `yaml:"share_command" env:"INSPEKT_SHARE_COMMAND,overwrite"`
	ValidatePDF  bool   `yaml:"validate_pdf" env:"INSPEKT_VALIDATE_PDF,overwrite"`
}

// Capture configures the form defaults.
type Capture struct {
	Technician string `yaml:"technician" env:"INSPEKT_TECHNICIAN,overwrite"`
	// Location is a fixed "lat,long" used when no position is given.
	Location string `yaml:"location" env:"INSPEKT_LOCATION,overwrite"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Root:           "captures",
		MetadataFormat: ".json",
		Report: Report{
			Engine:    report.EngineHTML,
			Locale:    string(report.LocaleEnglish),
			DateStyle: string(report.DateISO),
			Timezone:  "UTC",
		},
		Export: Export{
			Naming:      string(export.NamingTimestamp),
			ValidatePDF: true,
		},
	}
}

// Load reads path over the defaults (an empty path skips the file), applies
// the environment overlay and validates the result.
func Load(ctx context.Context, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	switch strings.TrimPrefix(c.MetadataFormat, ".") {
	case "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("unsupported metadata format %q", c.MetadataFormat))
	}
	switch c.Report.Engine {
	case report.EngineHTML, report.EnginePDF:
	default:
		errs = append(errs, fmt.Errorf("unknown report engine %q", c.Report.Engine))
	}
	if _, err := report.ParseLocale(c.Report.Locale); err != nil {
		errs = append(errs, err)
	}
	if _, err := report.ParseDateStyle(c.Report.DateStyle); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := export.ParseNaming(c.Export.Naming); err != nil {
		errs = append(errs, err)
	}
	if c.Capture.Location != "" {
		if _, err := location.ParseStatic(c.Capture.Location); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Location resolves the report time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Report.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Report.Timezone, err)
	}
	return loc, nil
}
