// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions selects where settings are read from.
type LoadOptions struct {
	// SettingsFilePath forces a specific settings file when set.
	SettingsFilePath string
	// ConfigDirPath replaces the platform config directory when set.
	ConfigDirPath string
}

// Provider loads settings.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Settings, error)
}

type fileProvider struct{}

// NewProvider returns a Provider reading settings files from disk.
func NewProvider() Provider {
	return &fileProvider{}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Settings, error) {
	s, _, err := loadWithOptions(ctx, opts)
	return s, err
}
