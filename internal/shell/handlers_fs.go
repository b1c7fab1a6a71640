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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	corecat "github.com/u-root/u-root/pkg/core/cat"
	corecp "github.com/u-root/u-root/pkg/core/cp"
	coremkdir "github.com/u-root/u-root/pkg/core/mkdir"
	coremv "github.com/u-root/u-root/pkg/core/mv"
	corerm "github.com/u-root/u-root/pkg/core/rm"
	coretouch "github.com/u-root/u-root/pkg/core/touch"

	"jailshell/internal/paths"
)

func registerFileCommands(r *Registry) {
	r.register(&Command{Name: "ls", Category: catFile, Help: "List directory contents", Run: cmdLs})
	r.register(&Command{Name: "cd", Category: catFile, Help: "Change the current directory", Run: cmdCd})
	r.register(&Command{Name: "pwd", Category: catFile, Help: "Print the working directory", Run: cmdPwd})
	r.register(&Command{Name: "mkdir", Category: catFile, Help: "Create a directory", Run: cmdMkdir})
	r.register(&Command{Name: "rm", Category: catFile, Help: "Remove a file", Run: cmdRm})
	r.register(&Command{Name: "rmdir", Category: catFile, Help: "Remove an empty directory", Run: cmdRmdir})
	r.register(&Command{Name: "touch", Category: catFile, Help: "Create a file or update its timestamp", Run: cmdTouch})
	r.register(&Command{Name: "cat", Category: catFile, Help: "Print file contents", Run: cmdCat})
	r.register(&Command{Name: "echo", Category: catFile, Help: "Display a line of text", Run: cmdEcho})
	r.register(&Command{Name: "mv", Category: catFile, Help: "Move or rename a file", Run: cmdMv})
	r.register(&Command{Name: "cp", Category: catFile, Help: "Copy a file or directory", Run: cmdCp})
	r.register(&Command{Name: "ln", Category: catFile, Help: "Create a symbolic link", Run: cmdLn})
	r.register(&Command{Name: "chmod", Category: catFile, Help: "Change file permissions", Run: cmdChmod})
	r.register(&Command{Name: "chown", Category: catFile, Help: "Change file owner"})
	r.register(&Command{Name: "file", Category: catFile, Help: "Determine file type", Run: cmdFile})
	r.register(&Command{Name: "stat", Category: catFile, Help: "Display file status", Run: cmdStat})
}

func cmdLs(ctx context.Context, s *Session, args []string) (string, error) {
	entries, err := os.ReadDir(s.cwd)
	if err != nil {
		if isPermission(err) {
			return "Permission denied", nil
		}
		return fmt.Sprintf("Error listing directory: %v", underlying(err)), nil
	}
	if len(entries) == 0 {
		return "(empty directory)", nil
	}

	// ReadDir returns entries sorted by name; the trailing slash marks
	// directories, following symlinks the way a real ls -p would.
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if info, err := os.Stat(filepath.Join(s.cwd, name)); err == nil && info.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return strings.Join(names, "\n"), nil
}

func cmdCd(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 || args[0] == "~" {
		s.cwd = filepath.Join(s.jail, "home")
		return "Changed to home directory: home", nil
	}

	target := args[0]
	if target == ".." {
		// Clamp at the jail root: ascending from the root is a no-op.
		if s.cwd != s.jail {
			s.cwd = filepath.Dir(s.cwd)
		}
		return "Changed to parent directory: " + paths.RelDisplay(s.jail, s.cwd), nil
	}

	resolved, err := s.resolve(target)
	if err != nil {
		return "Directory not found: " + target, nil
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "Directory not found: " + target, nil
	}
	s.cwd = resolved
	return "Changed to: " + paths.RelDisplay(s.jail, s.cwd), nil
}

func cmdPwd(ctx context.Context, s *Session, args []string) (string, error) {
	return paths.RelDisplay(s.jail, s.cwd), nil
}

func cmdMkdir(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "mkdir: missing operand", nil
	}
	dirname := args[0]
	resolved, err := s.resolve(dirname)
	if err != nil {
		return fmt.Sprintf("Permission denied: cannot create directory %s", dirname), nil
	}
	if _, err := os.Lstat(resolved); err == nil {
		return "Directory already exists: " + dirname, nil
	}
	if _, err := runCore(ctx, s.cwd, coremkdir.New(), []string{"-p", resolved}); err != nil {
		if isPermission(err) {
			return fmt.Sprintf("Permission denied: cannot create directory %s", dirname), nil
		}
		return "", err
	}
	return "Created directory: " + dirname, nil
}

func cmdRm(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "rm: missing operand", nil
	}
	filename := args[0]
	resolved, err := s.resolveNoFollow(filename)
	if err != nil {
		return fmt.Sprintf("rm: cannot remove '%s': No such file or directory", filename), nil
	}
	info, err := os.Lstat(resolved)
	if err != nil {
		return fmt.Sprintf("rm: cannot remove '%s': No such file or directory", filename), nil
	}
	if info.IsDir() {
		return fmt.Sprintf("rm: %s is a directory (use rmdir or rm -r)", filename), nil
	}
	if _, err := runCore(ctx, s.cwd, corerm.New(), []string{resolved}); err != nil {
		if isPermission(err) {
			return fmt.Sprintf("rm: cannot remove '%s': Permission denied", filename), nil
		}
		return "", err
	}
	return "Removed file: " + filename, nil
}

func cmdRmdir(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "rmdir: missing operand", nil
	}
	dirname := args[0]
	resolved, err := s.resolveNoFollow(dirname)
	if err != nil {
		return fmt.Sprintf("rmdir: failed to remove '%s': Not a directory", dirname), nil
	}
	info, err := os.Lstat(resolved)
	if err != nil || !info.IsDir() {
		return fmt.Sprintf("rmdir: failed to remove '%s': Not a directory", dirname), nil
	}
	// os.Remove only deletes empty directories; the underlying reason
	// (e.g. "directory not empty") is surfaced verbatim.
	if err := os.Remove(resolved); err != nil {
		return fmt.Sprintf("rmdir: failed to remove '%s': %v", dirname, underlying(err)), nil
	}
	return "Removed directory: " + dirname, nil
}

func cmdTouch(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "touch: missing operand", nil
	}
	filename := args[0]
	resolved, err := s.resolve(filename)
	if err != nil {
		return fmt.Sprintf("touch: cannot touch '%s': No such file or directory", filename), nil
	}
	if _, err := runCore(ctx, s.cwd, coretouch.New(), []string{resolved}); err != nil {
		if isPermission(err) {
			return fmt.Sprintf("touch: cannot touch '%s': Permission denied", filename), nil
		}
		return "", err
	}
	return "Created/updated file: " + filename, nil
}

func cmdCat(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: cat <file>", nil
	}
	resolved, err := s.resolve(args[0])
	if err != nil {
		return "No such file: " + args[0], nil
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "No such file: " + args[0], nil
	}
	if info.Size() > getLimits().MaxFileSizeBytes {
		return fmt.Sprintf("cat: %s: file exceeds maximum size of %d bytes", args[0], getLimits().MaxFileSizeBytes), nil
	}
	return runCore(ctx, s.cwd, corecat.New(), []string{resolved})
}

func cmdEcho(ctx context.Context, s *Session, args []string) (string, error) {
	return strings.Join(args, " "), nil
}

func cmdMv(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: mv <src> <dest>", nil
	}
	src, err := s.resolveNoFollow(args[0])
	if err != nil {
		return "", err
	}
	dst, err := s.resolveNoFollow(args[1])
	if err != nil {
		return "", err
	}
	if _, err := runCore(ctx, s.cwd, coremv.New(), []string{src, dst}); err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved '%s' to '%s'", args[0], args[1]), nil
}

func cmdCp(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) != 2 {
		return "Usage: cp <src> <dest>", nil
	}
	src, err := s.resolve(args[0])
	if err != nil {
		return "", err
	}
	dst, err := s.resolveNoFollow(args[1])
	if err != nil {
		return "", err
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", underlying(err)
	}

	cmdArgs := make([]string, 0, 3)
	if info.IsDir() {
		cmdArgs = append(cmdArgs, "-r")
	} else if info.Size() > getLimits().MaxFileSizeBytes {
		return fmt.Sprintf("cp: %s: file exceeds maximum size of %d bytes", args[0], getLimits().MaxFileSizeBytes), nil
	}
	cmdArgs = append(cmdArgs, src, dst)
	if _, err := runCore(ctx, s.cwd, corecp.New(), cmdArgs); err != nil {
		return "", err
	}
	return fmt.Sprintf("Copied '%s' to '%s'", args[0], args[1]), nil
}

func cmdLn(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: ln <target> <link_name>", nil
	}
	// The target is stored after lexical clamping only; whether it can
	// actually be followed is re-validated on every traversal, so a link
	// can never be used to leave the jail.
	target := paths.ClampLexical(s.jail, s.cwd, args[0])
	link, err := s.resolveNoFollow(args[1])
	if err != nil {
		return fmt.Sprintf("Error creating link: %v", underlying(err)), nil
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Sprintf("Error creating link: %v", underlying(err)), nil
	}
	return fmt.Sprintf("Created symbolic link: %s -> %s", args[1], args[0]), nil
}

func cmdChmod(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) < 2 {
		return "Usage: chmod <mode> <file>", nil
	}
	mode, filename := args[0], args[1]
	parsed, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return fmt.Sprintf("Error changing permissions: invalid mode '%s'", mode), nil
	}
	resolved, err := s.resolve(filename)
	if err != nil {
		return "Error changing permissions: no such file or directory", nil
	}
	if err := os.Chmod(resolved, os.FileMode(parsed)); err != nil {
		return fmt.Sprintf("Error changing permissions: %v", underlying(err)), nil
	}
	return fmt.Sprintf("Changed permissions of %s to %s", filename, mode), nil
}

func cmdFile(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: file <filename>", nil
	}
	resolved, err := s.resolve(args[0])
	if err != nil {
		return args[0] + ": cannot open", nil
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return args[0] + ": cannot open", nil
	}
	switch {
	case info.IsDir():
		return args[0] + ": directory", nil
	case info.Mode().IsRegular():
		return args[0] + ": regular file", nil
	default:
		return args[0] + ": special file", nil
	}
}

func cmdStat(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: stat <file>", nil
	}
	resolved, err := s.resolve(args[0])
	if err != nil {
		return fmt.Sprintf("stat: cannot stat '%s': No such file or directory", args[0]), nil
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return fmt.Sprintf("stat: cannot stat '%s': No such file or directory", args[0]), nil
	}
	modified := info.ModTime().Format(statTimeLayout)
	return fmt.Sprintf("File: %s\nSize: %d bytes\nModified: %s", args[0], info.Size(), modified), nil
}

// statTimeLayout mirrors ctime(3): "Mon Jan  2 15:04:05 2006".
const statTimeLayout = "Mon Jan  2 15:04:05 2006"
