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
	"unicode/utf8"
)

func registerTextCommands(r *Registry) {
	r.register(&Command{Name: "head", Category: catText, Help: "Output the first lines of a file", Run: cmdHead})
	r.register(&Command{Name: "tail", Category: catText, Help: "Output the last lines of a file", Run: cmdTail})
	r.register(&Command{Name: "grep", Category: catText, Help: "Search for a substring in a file", Run: cmdGrep})
	r.register(&Command{Name: "sed", Category: catText, Help: "Stream editor for filtering text"})
	r.register(&Command{Name: "awk", Category: catText, Help: "Pattern scanning and processing"})
	r.register(&Command{Name: "sort", Category: catText, Help: "Sort the lines of a file", Run: cmdSort})
	r.register(&Command{Name: "uniq", Category: catText, Help: "Collapse adjacent duplicate lines", Run: cmdUniq})
	r.register(&Command{Name: "wc", Category: catText, Help: "Count lines, words and characters", Run: cmdWc})
	r.register(&Command{Name: "cut", Category: catText, Help: "Extract the first field of each line", Run: cmdCut})
}

// headTailLines is the fixed window for head and tail.
const headTailLines = 10

func cmdHead(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: head <file>", nil
	}
	content, errText := readFileText(s, args[0])
	if errText != "" {
		return errText, nil
	}
	lines := splitLines(content)
	if len(lines) > headTailLines {
		lines = lines[:headTailLines]
	}
	return strings.Join(lines, "\n"), nil
}

func cmdTail(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: tail <file>", nil
	}
	content, errText := readFileText(s, args[0])
	if errText != "" {
		return errText, nil
	}
	lines := splitLines(content)
	if len(lines) > headTailLines {
		lines = lines[len(lines)-headTailLines:]
	}
	return strings.Join(lines, "\n"), nil
}

// cmdGrep is a plain substring match, no regular expressions. Matches
// are reported as "<1-based line number>:<line>".
func cmdGrep(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: grep <pattern> <file>", nil
	}
	pattern, filename := args[0], args[1]
	content, errText := readFileText(s, filename)
	if errText != "" {
		return errText, nil
	}
	var matches []string
	for i, line := range splitLines(content) {
		if strings.Contains(line, pattern) {
			matches = append(matches, fmt.Sprintf("%d:%s", i+1, line))
		}
	}
	if len(matches) == 0 {
		return "(no matches)", nil
	}
	return strings.Join(matches, "\n"), nil
}

func cmdSort(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: sort <file>", nil
	}
	content, errText := readFileText(s, args[0])
	if errText != "" {
		return errText, nil
	}
	lines := splitLines(content)
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}

// cmdUniq collapses adjacent duplicates only, like uniq(1); it is not a
// global dedup.
func cmdUniq(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: uniq <file>", nil
	}
	content, errText := readFileText(s, args[0])
	if errText != "" {
		return errText, nil
	}
	lines := splitLines(content)
	if len(lines) == 0 {
		return "", nil
	}
	output := lines[:1]
	for _, line := range lines[1:] {
		if line != output[len(output)-1] {
			output = append(output, line)
		}
	}
	return strings.Join(output, "\n"), nil
}

func cmdWc(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: wc <file>", nil
	}
	content, errText := readFileText(s, args[0])
	if errText != "" {
		return errText, nil
	}
	lines := len(splitLines(content))
	words := len(strings.Fields(content))
	// Character count, not byte count: multi-byte runes count once.
	chars := utf8.RuneCountInString(content)
	return fmt.Sprintf("%d %d %d %s", lines, words, chars, args[0]), nil
}

// cmdCut is a deliberately reduced cut: it extracts the first
// whitespace-separated field of every line, ignoring any -d/-f options.
func cmdCut(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: cut -d<delimiter> -f<field> <file>", nil
	}
	filename := args[len(args)-1]
	content, errText := readFileText(s, filename)
	if errText != "" {
		return errText, nil
	}
	var result []string
	for _, line := range splitLines(content) {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			result = append(result, fields[0])
		}
	}
	return strings.Join(result, "\n"), nil
}
