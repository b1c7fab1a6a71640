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

// Terminal-control and environment commands. The environment is
// synthetic: nothing from the host process leaks through env, export
// or which.

package shell

import (
	"context"
	"fmt"
)

func registerTerminalCommands(r *Registry) {
	r.register(&Command{Name: "clear", Category: catTerminal, Help: "Clear the terminal screen", Run: cmdClear})
	r.register(&Command{Name: "history", Category: catTerminal, Help: "Show command history", Run: cmdHistory})
	r.register(&Command{Name: "alias", Category: catTerminal, Help: "Define a command alias", Run: cmdAlias})
	r.register(&Command{Name: "export", Category: catTerminal, Help: "Set an environment variable", Run: cmdExport})
	r.register(&Command{Name: "env", Category: catTerminal, Help: "Display environment variables", Run: cmdEnv})
	r.register(&Command{Name: "which", Category: catTerminal, Help: "Locate a command", Run: cmdWhich})
	r.register(&Command{Name: "whereis", Category: catTerminal, Help: "Locate a command's binary", Run: cmdWhereis})
}

func cmdClear(ctx context.Context, s *Session, args []string) (string, error) {
	return ClearScreen, nil
}

func cmdHistory(ctx context.Context, s *Session, args []string) (string, error) {
	return "No history available", nil
}

func cmdAlias(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "No aliases defined", nil
	}
	return fmt.Sprintf("Alias '%s' created", args[0]), nil
}

func cmdExport(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "No environment variables to export", nil
	}
	return fmt.Sprintf("Exported %s", args[0]), nil
}

func cmdEnv(ctx context.Context, s *Session, args []string) (string, error) {
	return "PATH=/usr/bin:/bin\nHOME=/home/terminal_user\nUSER=terminal_user", nil
}

func cmdWhich(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: which <command>", nil
	}
	if _, ok := defaultRegistry.Lookup(args[0]); ok {
		return fmt.Sprintf("/usr/bin/%s", args[0]), nil
	}
	return fmt.Sprintf("which: no %s in (/usr/bin:/bin)", args[0]), nil
}

func cmdWhereis(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: whereis <command>", nil
	}
	if _, ok := defaultRegistry.Lookup(args[0]); ok {
		return fmt.Sprintf("%s: /usr/bin/%s", args[0], args[0]), nil
	}
	return fmt.Sprintf("%s:", args[0]), nil
}
