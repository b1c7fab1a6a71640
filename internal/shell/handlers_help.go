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

	"jailshell/internal/paths"
)

func registerHelpCommands(r *Registry) {
	r.register(&Command{Name: "help", Category: catHelp, Help: "Show available commands", Run: cmdHelp})
	r.register(&Command{Name: "man", Category: catHelp, Help: "Display a command's manual page", Run: cmdMan})
	r.register(&Command{Name: "info", Category: catHelp, Help: "Display a command's info entry", Run: cmdInfo})
}

// cmdHelp renders the full command catalog grouped by category, in a
// fixed category order with commands alphabetized within each group.
func cmdHelp(ctx context.Context, s *Session, args []string) (string, error) {
	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, category := range categoryOrder {
		cmds := defaultRegistry.byCategory(category)
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", category)
		for _, cmd := range cmds {
			fmt.Fprintf(&b, "  %-10s - %s\n", cmd.Name, cmd.Help)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Current directory: %s\n", paths.RelDisplay(s.jail, s.cwd))
	b.WriteString("Tip: Use 'cd ..' to go up one directory level")
	return b.String(), nil
}

func cmdMan(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: man <command>", nil
	}
	name := strings.ToLower(args[0])
	if cmd, ok := defaultRegistry.Lookup(name); ok && cmd.Help != "" {
		return fmt.Sprintf("Manual page for %s\n\n%s", name, cmd.Help), nil
	}
	return fmt.Sprintf("No manual entry for %s", args[0]), nil
}

func cmdInfo(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: info <command>", nil
	}
	name := strings.ToLower(args[0])
	if cmd, ok := defaultRegistry.Lookup(name); ok && cmd.Help != "" {
		return fmt.Sprintf("Info: %s\n\n%s", name, cmd.Help), nil
	}
	return fmt.Sprintf("No info entry for %s", args[0]), nil
}
