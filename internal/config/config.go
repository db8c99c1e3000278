// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/rukata-org/rukata/internal/issue"
	"github.com/rukata-org/rukata/pkg/cueutil"
	"github.com/rukata-org/rukata/pkg/platform"
)

const (
	// AppID names the per-user configuration directory.
	AppID = "dev.engineern.rukata"
	// SettingsFileName is the settings file inside ConfigDir.
	SettingsFileName = "settings.json"
	// EnvPrefix prefixes environment overrides (RUKATA_DIRECTORY).
	EnvPrefix = "RUKATA"
)

var (
	//go:embed settings_schema.cue
	settingsSchemaSrc string

	settingsSchema = cueutil.MustCompileSchema(settingsSchemaSrc, "#Settings")
)

// ConfigDir returns the rukata configuration directory: %APPDATA% on Windows,
// ~/Library/Application Support on macOS and $XDG_CONFIG_HOME (default
// ~/.config) elsewhere.
//
//nolint:revive // config.ConfigDir reads better than config.Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case platform.Windows:
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppID), nil
}

// SettingsPath returns the settings file location for opts.
func SettingsPath(opts LoadOptions) (string, error) {
	if opts.SettingsFilePath != "" {
		return opts.SettingsFilePath, nil
	}
	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// Load reads the settings from the default location.
func Load(ctx context.Context) (*Settings, error) {
	return NewProvider().Load(ctx, LoadOptions{})
}

// loadWithOptions returns the effective settings and the file they came
// from ("" when only defaults and environment applied).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Settings, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load settings canceled: %w", err)
	}

	path, err := SettingsPath(opts)
	if err != nil {
		return nil, "", err
	}

	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("version", string(defaults.Version))
	v.SetDefault("directory", defaults.Directory)
	v.SetDefault("test_command", defaults.TestCommand)
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range []string{"directory", "test_command"} {
		if err := v.BindEnv(key); err != nil {
			return nil, "", fmt.Errorf("bind %s: %w", key, err)
		}
	}

	resolved := ""
	switch err := loadJSONCIntoViper(v, path); {
	case errors.Is(err, os.ErrNotExist) && opts.SettingsFilePath == "":
	case err != nil:
		return nil, "", issue.NewErrorContext().
			WithOperation("load settings").
			WithResource(path).
			WithSuggestion("Fix the file by hand; comments and trailing commas are allowed").
			WithSuggestion("Or store new values with 'rukata settings --directory <dir>'").
			Wrap(err).
			BuildError()
	default:
		resolved = path
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return &s, resolved, nil
}

// loadJSONCIntoViper validates the settings file against #Settings and
// merges it into v. Decoding goes through a map so that Viper keeps the
// defaults for absent fields and the environment still wins.
func loadJSONCIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	m, err := cueutil.Decode[map[string]any](settingsSchema, jsonc.ToJSON(data), cueutil.WithFilename(path))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return v.MergeConfigMap(*m)
}

// Save writes s as indented JSON to the settings file for opts, creating
// the configuration directory when needed.
func Save(s *Settings, opts LoadOptions) (string, error) {
	path, err := SettingsPath(opts)
	if err != nil {
		return "", err
	}

	out := *s
	out.Version = VersionV1
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", issue.WrapWithContext(err, "create configuration directory", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", issue.WrapWithContext(err, "save settings", path)
	}
	return path, nil
}
