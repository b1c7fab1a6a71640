// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"encoding/json"
	"os"

	"jailshell/internal/shell"
)

// Config represents the application configuration
type Config struct {
	RootDir     string      `json:"root_dir,omitempty"`
	ListenAddr  string      `json:"listen_addr,omitempty"`
	HistoryFile string      `json:"history_file,omitempty"`
	Limits      ShellLimits `json:"limits,omitempty"`
}

// ShellLimits configures resource limits for command handlers.
type ShellLimits struct {
	MaxFileSizeBytes    int64 `json:"max_file_size_bytes,omitempty"`
	MaxDirectoryDepth   int   `json:"max_directory_depth,omitempty"`
	MaxDirectoryEntries int   `json:"max_directory_entries,omitempty"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	defaults := shell.DefaultLimits()
	return &Config{
		ListenAddr:  ":8080",
		HistoryFile: ".jailshell_history",
		Limits: ShellLimits{
			MaxFileSizeBytes:    defaults.MaxFileSizeBytes,
			MaxDirectoryDepth:   defaults.MaxDirectoryDepth,
			MaxDirectoryEntries: defaults.MaxDirectoryEntries,
		},
	}
}

// LoadConfig loads configuration from a JSON file and applies env
// overrides. A missing file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	if val := os.Getenv("JAILSHELL_ROOT"); val != "" {
		config.RootDir = val
	}
	if val := os.Getenv("JAILSHELL_LISTEN"); val != "" {
		config.ListenAddr = val
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}

	return config, nil
}

// ShellLimits converts the configured limits into the handler limits type.
func (c *Config) ShellLimits() shell.Limits {
	return shell.Limits{
		MaxFileSizeBytes:    c.Limits.MaxFileSizeBytes,
		MaxDirectoryDepth:   c.Limits.MaxDirectoryDepth,
		MaxDirectoryEntries: c.Limits.MaxDirectoryEntries,
	}
}
