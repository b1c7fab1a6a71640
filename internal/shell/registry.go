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
	"sort"
	"strings"
)

// Command categories, rendered in this order by help.
const (
	catFile     = "File & Directory Operations"
	catText     = "Text Processing"
	catSystem   = "System Information"
	catNetwork  = "Network & Utilities"
	catTerminal = "Terminal Control"
	catHelp     = "Help & Documentation"
)

var categoryOrder = []string{catFile, catText, catSystem, catNetwork, catTerminal, catHelp}

// HandlerFunc implements one emulated command. It returns the text block
// the terminal prints; an error escapes only for unexpected internal
// failures and is converted to text at the dispatch boundary.
type HandlerFunc func(ctx context.Context, s *Session, args []string) (string, error)

// Command is one registry entry. A nil Run marks a command that is
// advertised but not implemented yet.
type Command struct {
	Name     string
	Category string
	Help     string
	Run      HandlerFunc
}

// Registry is the static command table. It is built once at package
// init and never mutated afterwards, so lookups need no locking.
type Registry struct {
	cmds map[string]*Command
}

// Assigned in init rather than at declaration: help and lookup
// handlers read defaultRegistry, so a declaration-time assignment
// would form an initialization cycle.
var defaultRegistry *Registry

func init() {
	defaultRegistry = newRegistry()
}

func newRegistry() *Registry {
	r := &Registry{cmds: make(map[string]*Command)}
	registerFileCommands(r)
	registerTextCommands(r)
	registerSystemCommands(r)
	registerNetworkCommands(r)
	registerTerminalCommands(r)
	registerHelpCommands(r)
	return r
}

func (r *Registry) register(cmd *Command) {
	if cmd.Name == "" || cmd.Name != strings.ToLower(cmd.Name) {
		panic(fmt.Sprintf("invalid command name %q", cmd.Name))
	}
	if _, exists := r.cmds[cmd.Name]; exists {
		panic(fmt.Sprintf("duplicate command %q", cmd.Name))
	}
	r.cmds[cmd.Name] = cmd
}

// Lookup finds a command by its lowercase name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// Names returns all command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Autocomplete returns registered command names matching prefix,
// case-insensitively, in alphabetical order.
func (r *Registry) Autocomplete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	matches := make([]string, 0, 8)
	for _, name := range r.Names() {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// byCategory returns the commands of one category that carry help text,
// alphabetized.
func (r *Registry) byCategory(category string) []*Command {
	var cmds []*Command
	for _, cmd := range r.cmds {
		if cmd.Category == category && cmd.Help != "" {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// CommandNames lists every registered command name, sorted.
func CommandNames() []string {
	return defaultRegistry.Names()
}

// Autocomplete filters registered command names by prefix.
func Autocomplete(prefix string) []string {
	return defaultRegistry.Autocomplete(prefix)
}
