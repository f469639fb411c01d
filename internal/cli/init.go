package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/qatrack/internal/paths"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend string     `yaml:"backend"`
	DataDir string     `yaml:"data_dir,omitempty"`
	DSN     string     `yaml:"dsn,omitempty"`
	API     apiConfig  `yaml:"api"`
	Auth    authConfig `yaml:"auth"`
	Log     logConfig  `yaml:"log"`
}

type apiConfig struct {
	Addr         string `yaml:"addr"`
	ExposeErrors bool   `yaml:"expose_errors"`
}

type authConfig struct {
	JWTSecret    string `yaml:"jwt_secret"`
	TokenTTL     string `yaml:"token_ttl"`
	RequireToken bool   `yaml:"require_token"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize qatrack storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, and create the database schema.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(s.configDir, 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			configPath := filepath.Join(s.configDir, paths.ConfigFileName)
			written, err := writeConfigIfMissing(configPath, s)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			b, err := openTracker(s)
			if err != nil {
				return err
			}
			if err := b.Detach(); err != nil {
				return fmt.Errorf("finalize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "Wrote %s\n", configPath)
			}
			if s.tracker.DataDir != "" {
				fmt.Fprintf(out, "Data directory: %s\n", s.tracker.DataDir)
			}
			fmt.Fprintln(out, "qatrack initialized successfully")
			return nil
		},
	}
}

// writeConfigIfMissing creates config.yaml from the resolved settings when
// the file does not exist, with a freshly generated JWT secret. It reports
// whether a file was written.
func writeConfigIfMissing(path string, s *settings) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	secret := s.jwtSecret
	if secret == "" {
		var err error
		if secret, err = randomSecret(); err != nil {
			return false, err
		}
	}

	cfg := configFile{
		Backend: s.tracker.Backend,
		DataDir: s.tracker.DataDir,
		DSN:     s.tracker.DSN,
		API:     apiConfig{Addr: s.apiAddr, ExposeErrors: s.exposeErrors},
		Auth:    authConfig{JWTSecret: secret, TokenTTL: s.tokenTTL.String(), RequireToken: s.requireToken},
		Log:     logConfig{Level: s.logLevel, Format: s.logFormat},
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	// The file carries the signing secret.
	return true, os.WriteFile(path, data, 0o600)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
