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

// Package shell emulates a Unix-like shell confined to a jail directory.
// A Session holds the navigation state for one logical terminal; its
// Dispatch method turns one raw command line into the text the terminal
// would print, and is the only entry point callers need.
package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	apperrors "jailshell/internal/errors"
	"jailshell/internal/paths"
)

// jailSubdirs are created under a fresh jail root.
var jailSubdirs = []string{"home", "documents", "downloads", "projects"}

// Session is the mutable navigation state for one terminal instance.
// The current directory is always inside the jail root; every mutation
// re-validates that before committing. Dispatch serializes on mu, so one
// session handles one command at a time.
type Session struct {
	mu   sync.Mutex
	jail string // absolute, symlink-resolved, fixed at construction
	cwd  string // absolute, descendant of or equal to jail
	log  zerolog.Logger
}

// NewSession creates a session rooted at dir, creating the jail layout
// idempotently. When dir is unusable it falls back to a root under the
// system temp directory rather than failing outright.
func NewSession(dir string, logger zerolog.Logger) (*Session, error) {
	if dir == "" {
		dir = DefaultRoot()
	}
	jail, err := ensureLayout(dir)
	if err != nil {
		fallback := filepath.Join(os.TempDir(), "jailshell_root")
		logger.Warn().Err(err).Str("root", dir).Str("fallback", fallback).
			Msg("Jail root unusable, falling back")
		jail, err = ensureLayout(fallback)
		if err != nil {
			return nil, fmt.Errorf("failed to create jail root: %w", err)
		}
	}

	resolved, err := filepath.EvalSymlinks(jail)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve jail root: %w", err)
	}

	s := &Session{jail: resolved, cwd: resolved, log: logger}
	logger.Info().Str("jail", resolved).Msg("Session initialized")
	return s, nil
}

// DefaultRoot is the jail location used when none is configured.
func DefaultRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(os.TempDir(), "jailshell_root")
	}
	return filepath.Join(cwd, "terminal_root")
}

func ensureLayout(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", err
	}
	for _, sub := range jailSubdirs {
		if err := os.MkdirAll(filepath.Join(abs, sub), 0o755); err != nil {
			return "", err
		}
	}
	if err := canWrite(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// Pwd reports the current directory relative to the jail root.
func (s *Session) Pwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return paths.RelDisplay(s.jail, s.cwd)
}

// resolve canonicalizes a user-supplied path and confines it to the
// jail. Containment violations are reported as not-found; the caller
// never learns whether the path exists outside.
func (s *Session) resolve(input string) (string, error) {
	resolved, err := paths.ResolveInJail(s.jail, s.cwd, input)
	if err != nil {
		return "", wrapResolveError(err)
	}
	return resolved, nil
}

// resolveNoFollow confines a path like resolve but keeps a symlink in
// the final component unresolved, for operations on the link itself
// (rm, mv, ln, rmdir).
func (s *Session) resolveNoFollow(input string) (string, error) {
	resolved, err := paths.ResolveInJailNoFollow(s.jail, s.cwd, input)
	if err != nil {
		return "", wrapResolveError(err)
	}
	return resolved, nil
}

func wrapResolveError(err error) error {
	if errors.Is(err, paths.ErrJailEscape) {
		return apperrors.Wrap(apperrors.CodeContainment, "path not found", err)
	}
	return apperrors.Wrap(apperrors.CodeNotFound, "path not found", err)
}
