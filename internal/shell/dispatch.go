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
	"context"
	"fmt"
	"strings"
	"time"

	shquote "mvdan.cc/sh/v3/shell"

	apperrors "jailshell/internal/errors"
)

// ClearScreen is the sentinel output that tells the caller to clear the
// display instead of printing it.
const ClearScreen = "<CLEAR_SCREEN>"

// Dispatch parses one raw command line and runs the matching handler.
// It always returns a string and never panics outward: parse errors,
// unknown commands and handler faults all come back as text.
func (s *Session) Dispatch(ctx context.Context, raw string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	// POSIX-style quoting rules; variable references expand to nothing
	// so host environment values never reach the jail.
	fields, err := shquote.Fields(trimmed, func(string) string { return "" })
	if err != nil {
		return apperrors.Wrap(apperrors.CodeParse, "parse error", err).Error()
	}
	if len(fields) == 0 {
		return ""
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd, ok := defaultRegistry.Lookup(name)
	if !ok {
		return fmt.Sprintf("Command not found: %s. Type 'help' for available commands.", name)
	}
	if cmd.Run == nil {
		return fmt.Sprintf("Handler for '%s' not implemented yet.", name)
	}

	start := time.Now()
	out := invoke(ctx, s, cmd, args)
	s.log.Debug().
		Str("command", name).
		Int("args", len(args)).
		Dur("elapsed", time.Since(start)).
		Int("output_bytes", len(out)).
		Msg("Command dispatched")
	return out
}

// invoke is the fault boundary around a handler: a panic or an
// unexpected error becomes a generic textual error naming the command,
// and state committed before the fault is left untouched.
func invoke(ctx context.Context, s *Session, cmd *Command, args []string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			fault := apperrors.New(apperrors.CodeHandler, fmt.Sprint(r))
			s.log.Error().Str("command", cmd.Name).Str("code", string(fault.Code)).Interface("panic", r).Msg("Handler fault")
			out = fmt.Sprintf("Error running %s: %v", cmd.Name, fault)
		}
	}()

	text, err := cmd.Run(ctx, s, args)
	if err != nil {
		err = classifyFault(err)
		s.log.Debug().Str("command", cmd.Name).Str("code", string(apperrors.CodeOf(err))).Err(err).Msg("Handler error")
		return fmt.Sprintf("Error running %s: %v", cmd.Name, shortError(err))
	}
	return text
}

// classifyFault assigns a code to errors that escaped a handler without
// one. Coded resolution errors pass through untouched.
func classifyFault(err error) error {
	if apperrors.CodeOf(err) != "" {
		return err
	}
	if isPermission(err) {
		return apperrors.Wrap(apperrors.CodePermission, "", err)
	}
	return apperrors.Wrap(apperrors.CodeHandler, "", err)
}

// shortError strips host paths from wrapped os errors before they reach
// the terminal.
func shortError(err error) string {
	return underlying(err).Error()
}
