// Package config resolves the viewer configuration from flags, VENOMDOCS_*
// environment variables and an optional config file, in that order of
// precedence.
package config

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"venomdocs/internal/errors"
)

const EnvPrefix = "VENOMDOCS"

// Keys shared by flags, environment variables and config files.
const (
	KeyConfig        = "config"
	KeySpecURL       = "spec-url"
	KeySpecFile      = "spec-file"
	KeyRoutesFile    = "routes-file"
	KeyRoutesURL     = "routes-url"
	KeyVersionPrefix = "version-prefix"
	KeyTitle         = "title"
	KeyAddr          = "addr"
	KeyLogLevel      = "log-level"
	KeyLogFormat     = "log-format"
	KeyDebug         = "debug"
)

type SourceKind string

const (
	SourceOpenAPIURL  SourceKind = "openapi-url"
	SourceOpenAPIFile SourceKind = "openapi-file"
	SourceRoutesFile  SourceKind = "routes-file"
	SourceRoutesURL   SourceKind = "routes-url"
)

type Config struct {
	SpecURL    string `validate:"omitempty,url"`
	SpecFile   string
	RoutesFile string
	RoutesURL  string `validate:"omitempty,url"`

	// Version is the API version whose /api/v<version> prefix is hidden in
	// displayed paths.
	Version string
	Title   string
	Addr    string `validate:"omitempty,hostname_port"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console text"`
	Debug     bool
}

// Source returns the single configured route source.
func (c Config) Source() (SourceKind, string) {
	switch {
	case c.SpecURL != "":
		return SourceOpenAPIURL, c.SpecURL
	case c.SpecFile != "":
		return SourceOpenAPIFile, c.SpecFile
	case c.RoutesFile != "":
		return SourceRoutesFile, c.RoutesFile
	default:
		return SourceRoutesURL, c.RoutesURL
	}
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	return v
}

// BindFlags makes set flags take precedence over every other source.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	return v.BindPFlags(flags)
}

// Load reads the optional config file and returns the validated Config.
func Load(v *viper.Viper) (Config, error) {
	if path := strings.TrimSpace(v.GetString(KeyConfig)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.NewConfigError("read config file "+path, err)
		}
	}

	cfg := Config{
		SpecURL:    strings.TrimSpace(v.GetString(KeySpecURL)),
		SpecFile:   strings.TrimSpace(v.GetString(KeySpecFile)),
		RoutesFile: strings.TrimSpace(v.GetString(KeyRoutesFile)),
		RoutesURL:  strings.TrimSpace(v.GetString(KeyRoutesURL)),
		Version:    strings.TrimSpace(v.GetString(KeyVersionPrefix)),
		Title:      strings.TrimSpace(v.GetString(KeyTitle)),
		Addr:       strings.TrimSpace(v.GetString(KeyAddr)),
		LogLevel:   strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		Debug:      v.GetBool(KeyDebug),
	}
	for _, p := range []*string{&cfg.SpecFile, &cfg.RoutesFile} {
		if *p == "" {
			continue
		}
		if abs, err := filepath.Abs(*p); err == nil {
			*p = abs
		}
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		cfg := sl.Current().Interface().(Config)
		n := 0
		for _, s := range []string{cfg.SpecURL, cfg.SpecFile, cfg.RoutesFile, cfg.RoutesURL} {
			if s != "" {
				n++
			}
		}
		if n != 1 {
			sl.ReportError(cfg.SpecURL, "SpecURL", "SpecURL", "onesource", "")
		}
	}, Config{})
	return v
}

// Validate checks field formats and that exactly one route source is set.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				if fe.Tag() == "onesource" {
					return errors.NewConfigError("exactly one route source required (use --spec-url, --spec-file, --routes-file or --routes-url, or set VENOMDOCS_SPEC_URL/VENOMDOCS_SPEC_FILE/VENOMDOCS_ROUTES_FILE/VENOMDOCS_ROUTES_URL)", nil)
				}
			}
		}
		return errors.NewConfigError("invalid configuration", err)
	}
	return nil
}
