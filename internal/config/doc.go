// SPDX-License-Identifier: MPL-2.0

// Package config stores rukata's user settings.
//
// Settings live in settings.json under the platform configuration directory
// (dev.engineern.rukata inside $XDG_CONFIG_HOME, ~/Library/Application Support
// or %APPDATA%). The file is JSON with optional comments, validated against
// the embedded settings_schema.cue and layered over defaults with Viper, so
// RUKATA_DIRECTORY and RUKATA_TEST_COMMAND override the stored values.
package config
