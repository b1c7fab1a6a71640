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

package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// underlying unwraps os path/link errors down to the bare reason so
// user-facing messages never echo absolute host paths.
func underlying(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}

func isPermission(err error) bool {
	if errors.Is(err, fs.ErrPermission) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "permission denied")
}

// readFileText reads a regular file fully as opaque text, bounded by the
// configured size limit. The second return value is a ready-to-print
// error message; it is empty on success.
func readFileText(s *Session, name string) (string, string) {
	resolved, err := s.resolve(name)
	if err != nil {
		return "", "No such file: " + name
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", "No such file: " + name
	}
	if info.Size() > getLimits().MaxFileSizeBytes {
		return "", fmt.Sprintf("%s: file exceeds maximum size of %d bytes", name, getLimits().MaxFileSizeBytes)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if isPermission(err) {
			return "", fmt.Sprintf("%s: Permission denied", name)
		}
		return "", fmt.Sprintf("Error reading %s: %v", name, underlying(err))
	}
	return string(data), ""
}

// splitLines splits text the way a terminal sees lines: CRLF folded to
// LF, no phantom empty line after a trailing newline, and empty content
// yields no lines.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
