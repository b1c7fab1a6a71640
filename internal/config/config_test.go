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
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.HistoryFile != ".jailshell_history" {
		t.Fatalf("expected default history file, got %q", cfg.HistoryFile)
	}
	if cfg.Limits.MaxFileSizeBytes <= 0 {
		t.Fatal("expected default limits to be set")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"root_dir":"/srv/jail","listen_addr":":9000","limits":{"max_file_size_bytes":1024}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RootDir != "/srv/jail" {
		t.Fatalf("expected root dir override, got %q", cfg.RootDir)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected listen addr override, got %q", cfg.ListenAddr)
	}
	if cfg.Limits.MaxFileSizeBytes != 1024 {
		t.Fatalf("expected limit override, got %d", cfg.Limits.MaxFileSizeBytes)
	}
	if cfg.HistoryFile != ".jailshell_history" {
		t.Fatalf("expected untouched default, got %q", cfg.HistoryFile)
	}
}

func TestLoadConfigRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("JAILSHELL_ROOT", "/opt/jail")
	t.Setenv("JAILSHELL_LISTEN", ":7070")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RootDir != "/opt/jail" {
		t.Fatalf("expected env root dir, got %q", cfg.RootDir)
	}
	if cfg.ListenAddr != ":7070" {
		t.Fatalf("expected env listen addr, got %q", cfg.ListenAddr)
	}
}

func TestShellLimitsConversion(t *testing.T) {
	cfg := DefaultConfig()
	limits := cfg.ShellLimits()
	if limits.MaxFileSizeBytes != cfg.Limits.MaxFileSizeBytes {
		t.Fatal("expected matching file size limit")
	}
	if limits.MaxDirectoryEntries != cfg.Limits.MaxDirectoryEntries {
		t.Fatal("expected matching entry limit")
	}
}
