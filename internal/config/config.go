// Package config loads the service settings from defaults, an optional file,
// SCMBOARD_* environment variables and command line flags.
package config

import (
	"github.com/denismitr/scmboard"
	"github.com/denismitr/scmboard/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"strings"
	"time"
)

var ErrInvalid = errors.New("invalid configuration")

const EnvPrefix = "SCMBOARD"

const (
	KeyAddr            = "addr"
	KeyHealthAddr      = "health_addr"
	KeyLogLevel        = "log_level"
	KeySeedFile        = "seed_file"
	KeySeedRoutes      = "seed_routes"
	KeyIDStrategy      = "id_strategy"
	KeyValidation      = "validation"
	KeyAssignSeedIDs   = "assign_seed_ids"
	KeyCacheBytes      = "cache_bytes"
	KeyWriteRateLimit  = "write_rate_limit"
	KeyWriteBurst      = "write_burst"
	KeyCORSOrigins     = "cors_origins"
	KeyGzip            = "gzip"
	KeyShutdownTimeout = "shutdown_timeout"
)

type SeedRoutes string

const (
	// SeedRoutesPrefixed serves the initial data under /seed/<dataset>.
	SeedRoutesPrefixed SeedRoutes = "prefixed"
	// SeedRoutesShadow registers /api/<dataset> GET routes that answer with
	// the initial data instead of the live dataset.
	SeedRoutesShadow SeedRoutes = "shadow"
	SeedRoutesOff    SeedRoutes = "off"
)

type Config struct {
	Addr            string
	HealthAddr      string
	LogLevel        string
	SeedFile        string
	SeedRoutes      SeedRoutes
	IDStrategy      scmboard.IDStrategy
	Validation      scmboard.ValidationMode
	AssignSeedIDs   bool
	CacheBytes      uint64
	WriteRateLimit  float64
	WriteBurst      int
	CORSOrigins     []string
	Gzip            bool
	ShutdownTimeout time.Duration
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":5000")
	v.SetDefault(KeyHealthAddr, ":8086")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeySeedFile, "")
	v.SetDefault(KeySeedRoutes, string(SeedRoutesPrefixed))
	v.SetDefault(KeyIDStrategy, string(scmboard.CounterIDs))
	v.SetDefault(KeyValidation, string(scmboard.ValidationWarn))
	v.SetDefault(KeyAssignSeedIDs, false)
	v.SetDefault(KeyCacheBytes, 0)
	v.SetDefault(KeyWriteRateLimit, 0)
	v.SetDefault(KeyWriteBurst, 0)
	v.SetDefault(KeyCORSOrigins, []string{"*"})
	v.SetDefault(KeyGzip, true)
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)
}

// Load reads the configuration into a Config. An explicit file must exist;
// without one an optional scmboard.{toml,json,yaml} in the working directory
// is used.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", file)
		}
	} else {
		v.SetConfigName("scmboard")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "could not read config file")
			}
		}
	}

	cfg := &Config{
		Addr:            v.GetString(KeyAddr),
		HealthAddr:      v.GetString(KeyHealthAddr),
		LogLevel:        v.GetString(KeyLogLevel),
		SeedFile:        v.GetString(KeySeedFile),
		SeedRoutes:      SeedRoutes(strings.ToLower(v.GetString(KeySeedRoutes))),
		IDStrategy:      scmboard.IDStrategy(strings.ToLower(v.GetString(KeyIDStrategy))),
		Validation:      scmboard.ValidationMode(strings.ToLower(v.GetString(KeyValidation))),
		AssignSeedIDs:   v.GetBool(KeyAssignSeedIDs),
		CacheBytes:      v.GetUint64(KeyCacheBytes),
		WriteRateLimit:  v.GetFloat64(KeyWriteRateLimit),
		WriteBurst:      v.GetInt(KeyWriteBurst),
		CORSOrigins:     splitList(v.GetStringSlice(KeyCORSOrigins)),
		Gzip:            v.GetBool(KeyGzip),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "addr is empty")
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.SeedRoutes {
	case SeedRoutesPrefixed, SeedRoutesShadow, SeedRoutesOff:
	default:
		problems = append(problems, "seed_routes must be prefixed, shadow or off")
	}

	switch c.IDStrategy {
	case scmboard.CounterIDs, scmboard.TimestampIDs, scmboard.UUIDs:
	default:
		problems = append(problems, "id_strategy must be counter, timestamp or uuid")
	}

	switch c.Validation {
	case scmboard.ValidationOff, scmboard.ValidationWarn, scmboard.ValidationStrict:
	default:
		problems = append(problems, "validation must be off, warn or strict")
	}

	if c.WriteRateLimit < 0 {
		problems = append(problems, "write_rate_limit is negative")
	}

	if c.WriteBurst < 0 {
		problems = append(problems, "write_burst is negative")
	}

	if c.ShutdownTimeout <= 0 {
		problems = append(problems, "shutdown_timeout must be positive")
	}

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalid, strings.Join(problems, "; "))
	}

	return nil
}

// Store converts the settings the store cares about. The validation hook is
// left to the caller.
func (c *Config) Store() *scmboard.Config {
	return &scmboard.Config{
		IDStrategy:    c.IDStrategy,
		Validation:    c.Validation,
		AssignSeedIDs: c.AssignSeedIDs,
	}
}

// splitList accepts both list values and a comma separated string from the
// environment.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
