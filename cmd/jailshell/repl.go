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

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"jailshell/internal/config"
	"jailshell/internal/shell"
)

func runREPL(sess *shell.Session, cfg *config.Config, logger zerolog.Logger) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(sess),
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    commandCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize readline")
	}
	defer rl.Close()

	fmt.Println("Jailshell by Dyne.org")
	fmt.Println("Type 'help' for commands, 'exit' or Ctrl+D to leave")
	fmt.Println()

	ctx := context.Background()

	for {
		line, err := rl.Readline()
		switch classifyReadlineError(line, err) {
		case readlineContinue:
			continue
		case readlineExit:
			logger.Info().Msg("Session ended")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			logger.Info().Msg("Session ended")
			return
		}

		output := sess.Dispatch(ctx, line)
		switch output {
		case "":
		case shell.ClearScreen:
			fmt.Print("\033[H\033[2J")
		default:
			fmt.Println(output)
		}

		// The prompt tracks the working directory, like a real shell.
		rl.SetPrompt(prompt(sess))
	}
}

func prompt(sess *shell.Session) string {
	return sess.Pwd() + " ❯ "
}

// commandCompleter builds a readline completer from the registered
// command names.
func commandCompleter() *readline.PrefixCompleter {
	names := shell.CommandNames()
	items := make([]readline.PrefixCompleterInterface, len(names))
	for i, name := range names {
		items[i] = readline.PcItem(name)
	}
	return readline.NewPrefixCompleter(items...)
}
