package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/qatrack/internal/paths"
	"github.com/mesh-intelligence/qatrack/internal/sqlite"
	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// Config keys. Each can be overridden by QATRACK_<KEY> with dots replaced
// by underscores, e.g. QATRACK_API_ADDR.
const (
	keyBackend            = "backend"
	keyDataDir            = "data_dir"
	keyDSN                = "dsn"
	keyAPIAddr            = "api.addr"
	keyAPIReadTimeout     = "api.read_timeout"
	keyAPIWriteTimeout    = "api.write_timeout"
	keyAPIShutdownTimeout = "api.shutdown_timeout"
	keyAPIExposeErrors    = "api.expose_errors"
	keyAPIAuthRateLimit   = "api.auth_rate_limit"
	keyAuthJWTSecret      = "auth.jwt_secret"
	keyAuthTokenTTL       = "auth.token_ttl"
	keyAuthRequireToken   = "auth.require_token"
	keyLogLevel           = "log.level"
	keyLogFormat          = "log.format"
)

const envPrefix = "QATRACK"

var defaults = map[string]any{
	keyBackend:            types.BackendSQLite,
	keyAPIAddr:            ":3000",
	keyAPIReadTimeout:     15 * time.Second,
	keyAPIWriteTimeout:    15 * time.Second,
	keyAPIShutdownTimeout: 10 * time.Second,
	keyAPIExposeErrors:    false,
	keyAPIAuthRateLimit:   20,
	keyAuthTokenTTL:       24 * time.Hour,
	keyAuthRequireToken:   false,
	keyLogLevel:           "info",
	keyLogFormat:          "text",
}

// settings is the resolved configuration for one command run.
type settings struct {
	configDir string
	tracker   types.Config

	apiAddr         string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	exposeErrors    bool
	authRateLimit   int

	jwtSecret    string
	tokenTTL     time.Duration
	requireToken bool

	logLevel  string
	logFormat string
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadSettings resolves directories, loads the optional env file and the
// config file, and applies flag overrides.
func loadSettings(flags *rootFlags) (*settings, error) {
	if flags.envFile != "" {
		if err := godotenv.Load(flags.envFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	s := &settings{
		configDir: configDir,
		tracker: types.Config{
			Backend: v.GetString(keyBackend),
			DSN:     v.GetString(keyDSN),
		},
		apiAddr:         v.GetString(keyAPIAddr),
		readTimeout:     v.GetDuration(keyAPIReadTimeout),
		writeTimeout:    v.GetDuration(keyAPIWriteTimeout),
		shutdownTimeout: v.GetDuration(keyAPIShutdownTimeout),
		exposeErrors:    v.GetBool(keyAPIExposeErrors),
		authRateLimit:   v.GetInt(keyAPIAuthRateLimit),
		jwtSecret:       v.GetString(keyAuthJWTSecret),
		tokenTTL:        v.GetDuration(keyAuthTokenTTL),
		requireToken:    v.GetBool(keyAuthRequireToken),
		logLevel:        v.GetString(keyLogLevel),
		logFormat:       v.GetString(keyLogFormat),
	}

	if s.tracker.Backend == types.BackendSQLite {
		s.tracker.DataDir, err = paths.ResolveDataDir(flags.dataDir, v.GetString(keyDataDir))
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
	}
	return s, nil
}

// openTracker attaches a backend for s. The caller must Detach it.
func openTracker(s *settings) (*sqlite.Backend, error) {
	b := sqlite.NewBackend()
	if err := b.Attach(s.tracker); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", s.tracker.Backend, err)
	}
	return b, nil
}

// withTracker runs fn against an attached tracker and detaches afterwards.
func withTracker(flags *rootFlags, fn func(b *sqlite.Backend) error) error {
	s, err := loadSettings(flags)
	if err != nil {
		return err
	}
	b, err := openTracker(s)
	if err != nil {
		return err
	}
	defer b.Detach()
	return fn(b)
}
