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

// Package paths implements jail-confined path resolution. Every path a
// session touches goes through ResolveInJail, which clamps upward
// traversal at the jail root and canonicalizes symlinks before the
// containment check, so a link pointing outside the jail can never be
// followed.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPathLength bounds raw path input accepted from a command line.
const MaxPathLength = 4096

// ErrJailEscape marks a resolution whose canonical result falls outside
// the jail root. Callers report it as not-found to the user; the
// sentinel lets them tell containment apart from a genuinely missing
// path.
var ErrJailEscape = errors.New("path escapes jail root")

// ValidatePathString validates raw path input before resolution.
func ValidatePathString(path string, maxLen int) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if strings.IndexByte(path, 0) != -1 {
		return fmt.Errorf("path contains null byte")
	}
	if !utf8.ValidString(path) {
		return fmt.Errorf("path is not valid UTF-8")
	}
	for _, r := range path {
		if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r) {
			return fmt.Errorf("path contains unsupported unicode combining mark")
		}
	}
	if maxLen > 0 && len(path) > maxLen {
		return fmt.Errorf("path exceeds maximum length of %d characters", maxLen)
	}
	return nil
}

// ClampLexical resolves input against cwd without touching the
// filesystem. "." segments are skipped and ".." pops at most down to the
// jail root; ascending past the root is a no-op, not an error. Absolute
// input is rebased onto the jail root, so "/home" means "<jail>/home".
// jail and cwd must be absolute, with cwd inside jail.
func ClampLexical(jail, cwd, input string) string {
	current := cwd
	if filepath.IsAbs(input) {
		current = jail
	}
	for _, seg := range strings.Split(filepath.ToSlash(input), "/") {
		switch seg {
		case "", ".":
		case "..":
			if current != jail {
				current = filepath.Dir(current)
			}
		default:
			current = filepath.Join(current, seg)
		}
	}
	return current
}

// ResolveInJail resolves input relative to cwd and returns an absolute,
// symlink-canonicalized path guaranteed to be inside jail. "~" (alone or
// as a leading segment) maps to the home directory under the jail. The
// jail argument must itself be symlink-resolved.
func ResolveInJail(jail, cwd, input string) (string, error) {
	if err := ValidatePathString(input, MaxPathLength); err != nil {
		return "", err
	}

	if input == "~" {
		input = "home"
		cwd = jail
	} else if strings.HasPrefix(input, "~/") {
		input = "home/" + strings.TrimPrefix(input, "~/")
		cwd = jail
	}

	abs := ClampLexical(jail, cwd, input)
	resolved, err := ResolveSymlinkedPath(abs, jail)
	if err != nil {
		return "", err
	}
	if !HasPathPrefix(resolved, jail) {
		return "", ErrJailEscape
	}
	return resolved, nil
}

// ResolveInJailNoFollow resolves like ResolveInJail but does not follow
// a symlink in the final component, so operations on a link itself
// (remove, move, relink) act on the link and not on its target. The
// parent chain is still symlink-canonicalized and containment-checked.
func ResolveInJailNoFollow(jail, cwd, input string) (string, error) {
	if err := ValidatePathString(input, MaxPathLength); err != nil {
		return "", err
	}
	if input == "~" {
		input = "home"
		cwd = jail
	} else if strings.HasPrefix(input, "~/") {
		input = "home/" + strings.TrimPrefix(input, "~/")
		cwd = jail
	}

	abs := ClampLexical(jail, cwd, input)
	parentResolved, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no such file or directory")
		}
		return "", fmt.Errorf("failed to resolve parent path: %v", err)
	}
	if !HasPathPrefix(parentResolved, jail) {
		return "", ErrJailEscape
	}
	return filepath.Join(parentResolved, filepath.Base(abs)), nil
}

// ResolveSymlinkedPath resolves symlinks while ensuring the base stays
// within bounds. A path that does not exist yet is resolved through its
// parent, so dangling targets (mkdir, touch, mv destinations) still get
// a canonical, checkable location.
func ResolveSymlinkedPath(path, base string) (string, error) {
	if _, err := os.Lstat(path); err == nil {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path: %v", err)
		}
		return resolved, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat path: %v", err)
	}

	// Walk up to the deepest existing ancestor so multi-level creation
	// (mkdir nested/dirs) still resolves through real directories.
	var suffix []string
	current := path
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no such file or directory")
		}
		suffix = append([]string{filepath.Base(current)}, suffix...)
		current = parent
		if _, err := os.Lstat(current); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat path: %v", err)
		}
	}
	resolved, err := filepath.EvalSymlinks(current)
	if err != nil {
		return "", fmt.Errorf("failed to resolve parent path: %v", err)
	}
	if !HasPathPrefix(resolved, base) {
		return "", ErrJailEscape
	}
	return filepath.Join(append([]string{resolved}, suffix...)...), nil
}

// HasPathPrefix returns true when path is within base.
func HasPathPrefix(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(os.PathSeparator)) && rel != "..")
}

// RelDisplay reports path relative to the jail root for user-facing
// output; the root itself displays as ".". Host layout never leaks.
func RelDisplay(jail, path string) string {
	rel, err := filepath.Rel(jail, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "."
	}
	return rel
}
