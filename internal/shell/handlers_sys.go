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

// System information commands. Apart from uname and du these are
// deliberately simulated: fixed or lightly parameterized text with no
// real process or host effect, which is what keeps the emulator safe to
// expose.

package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func registerSystemCommands(r *Registry) {
	r.register(&Command{Name: "whoami", Category: catSystem, Help: "Print the current user", Run: cmdWhoami})
	r.register(&Command{Name: "date", Category: catSystem, Help: "Display the current date and time", Run: cmdDate})
	r.register(&Command{Name: "uptime", Category: catSystem, Help: "Show how long the system has been up", Run: cmdUptime})
	r.register(&Command{Name: "uname", Category: catSystem, Help: "Print system information", Run: cmdUname})
	r.register(&Command{Name: "df", Category: catSystem, Help: "Report disk space usage", Run: cmdDf})
	r.register(&Command{Name: "du", Category: catSystem, Help: "Estimate directory space usage", Run: cmdDu})
	r.register(&Command{Name: "free", Category: catSystem, Help: "Display memory usage", Run: cmdFree})
	r.register(&Command{Name: "top", Category: catSystem, Help: "Display running processes", Run: cmdTop})
	r.register(&Command{Name: "ps", Category: catSystem, Help: "Report process status", Run: cmdPs})
	r.register(&Command{Name: "kill", Category: catSystem, Help: "Terminate a process", Run: cmdKill})
	r.register(&Command{Name: "killall", Category: catSystem, Help: "Terminate processes by name", Run: cmdKillall})
	r.register(&Command{Name: "jobs", Category: catSystem, Help: "List background jobs", Run: cmdJobs})
	r.register(&Command{Name: "bg", Category: catSystem, Help: "Resume a job in the background", Run: cmdBg})
	r.register(&Command{Name: "fg", Category: catSystem, Help: "Bring a job to the foreground", Run: cmdFg})
}

func cmdWhoami(ctx context.Context, s *Session, args []string) (string, error) {
	return "terminal_user", nil
}

func cmdDate(ctx context.Context, s *Session, args []string) (string, error) {
	return time.Now().Format("Mon Jan 02 15:04:05 MST 2006"), nil
}

func cmdUptime(ctx context.Context, s *Session, args []string) (string, error) {
	return fmt.Sprintf("up %d hours", time.Now().Unix()/3600), nil
}

func cmdUname(ctx context.Context, s *Session, args []string) (string, error) {
	platform, release, machine := systemIdentity()
	return fmt.Sprintf("%s %s %s", platform, release, machine), nil
}

func cmdDf(ctx context.Context, s *Session, args []string) (string, error) {
	return "Filesystem     1K-blocks    Used Available Use% Mounted on\n" +
		"/dev/root       1000000   500000    500000  50% /", nil
}

var errWalkLimit = errors.New("directory entry limit exceeded")

func cmdDu(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: du <directory>", nil
	}
	resolved, err := s.resolve(args[0])
	if err != nil {
		return fmt.Sprintf("du: cannot access '%s': No such file or directory", args[0]), nil
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return fmt.Sprintf("du: cannot access '%s': No such file or directory", args[0]), nil
	}

	limits := getLimits()
	var total int64
	entries := 0
	walkErr := filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && walkDepth(resolved, path) > limits.MaxDirectoryDepth {
			return fs.SkipDir
		}
		entries++
		if entries > limits.MaxDirectoryEntries {
			return errWalkLimit
		}
		if d.Type().IsRegular() {
			fi, err := d.Info()
			if err != nil {
				return err
			}
			total += fi.Size()
		}
		return nil
	})
	if walkErr != nil {
		if errors.Is(walkErr, errWalkLimit) {
			return fmt.Sprintf("du: cannot access '%s': %v", args[0], errWalkLimit), nil
		}
		return "", underlying(walkErr)
	}
	return fmt.Sprintf("%d\t%s", total/1024, args[0]), nil
}

// walkDepth counts directory levels of path below root; the root
// itself is depth zero.
func walkDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}

func cmdFree(ctx context.Context, s *Session, args []string) (string, error) {
	return "              total        used        free      shared  buff/cache   available\n" +
		"Mem:        8000000     4000000     2000000          0     2000000     4000000\n" +
		"Swap:       2000000           0     2000000", nil
}

func cmdTop(ctx context.Context, s *Session, args []string) (string, error) {
	return "PID USER      PR  NI    VIRT    RES    SHR S  %CPU  %MEM     TIME+ COMMAND\n" +
		"1 root      20   0   12345    1234    1234 S   0.0   0.1   0:00.01 init", nil
}

func cmdPs(ctx context.Context, s *Session, args []string) (string, error) {
	return "PID TTY          TIME CMD\n1 ?        00:00:00 init\n2 ?        00:00:00 kthreadd", nil
}

func cmdKill(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "kill: missing operand", nil
	}
	return fmt.Sprintf("Process %s terminated", args[0]), nil
}

func cmdKillall(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "killall: missing operand", nil
	}
	return fmt.Sprintf("Process %s terminated", args[0]), nil
}

func cmdJobs(ctx context.Context, s *Session, args []string) (string, error) {
	return "No jobs running", nil
}

func cmdBg(ctx context.Context, s *Session, args []string) (string, error) {
	return "No jobs to run in background", nil
}

func cmdFg(ctx context.Context, s *Session, args []string) (string, error) {
	return "No jobs to bring to foreground", nil
}
