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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLsListsEntriesWithDirSuffix(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "ls")
	want := "documents/\ndownloads/\nhome/\nprojects/"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestLsEmptyDirectory(t *testing.T) {
	sess := newTestSession(t)
	run(t, sess, "cd home")
	if out := run(t, sess, "ls"); out != "(empty directory)" {
		t.Fatalf("expected empty marker, got %q", out)
	}
}

func TestCdHome(t *testing.T) {
	sess := newTestSession(t)
	run(t, sess, "cd documents")
	out := run(t, sess, "cd")
	if out != "Changed to home directory: home" {
		t.Fatalf("unexpected output %q", out)
	}
	if got := sess.Pwd(); got != "home" {
		t.Fatalf("expected home, got %q", got)
	}
}

func TestCdMissingDirectory(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "cd nowhere"); out != "Directory not found: nowhere" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMkdirRoundtrip(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "mkdir work"); out != "Created directory: work" {
		t.Fatalf("unexpected mkdir output %q", out)
	}
	if out := run(t, sess, "mkdir work"); out != "Directory already exists: work" {
		t.Fatalf("unexpected duplicate output %q", out)
	}
	if out := run(t, sess, "rmdir work"); out != "Removed directory: work" {
		t.Fatalf("unexpected rmdir output %q", out)
	}
}

func TestMkdirNested(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "mkdir a/b/c"); out != "Created directory: a/b/c" {
		t.Fatalf("unexpected output %q", out)
	}
	info, err := os.Stat(filepath.Join(sess.jail, "a", "b", "c"))
	if err != nil || !info.IsDir() {
		t.Fatal("expected nested directory to exist")
	}
}

func TestRmOnDirectory(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "rm home")
	if out != "rm: home is a directory (use rmdir or rm -r)" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRmMissingFile(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "rm ghost.txt")
	if out != "rm: cannot remove 'ghost.txt': No such file or directory" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRmdirNonEmpty(t *testing.T) {
	sess := newTestSession(t)
	run(t, sess, "mkdir full")
	run(t, sess, "touch full/keep.txt")
	out := run(t, sess, "rmdir full")
	if !strings.HasPrefix(out, "rmdir: failed to remove 'full':") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTouchCatEmptyFile(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "touch note.txt"); out != "Created/updated file: note.txt" {
		t.Fatalf("unexpected touch output %q", out)
	}
	if out := run(t, sess, "cat note.txt"); out != "" {
		t.Fatalf("expected empty cat output, got %q", out)
	}
}

func TestCatMissingFile(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "cat nothing.txt"); out != "No such file: nothing.txt" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCatSizeLimit(t *testing.T) {
	sess := newTestSession(t)
	ConfigureLimits(Limits{MaxFileSizeBytes: 4})
	t.Cleanup(func() { ConfigureLimits(DefaultLimits()) })
	writeJailFile(t, sess, "big.txt", "more than four bytes")
	out := run(t, sess, "cat big.txt")
	if !strings.Contains(out, "exceeds maximum size") {
		t.Fatalf("expected size limit message, got %q", out)
	}
}

func TestEcho(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "echo hello world"); out != "hello world" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := run(t, sess, "echo"); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestMvRenamesFile(t *testing.T) {
	sess := newTestSession(t)
	writeJailFile(t, sess, "old.txt", "data")
	out := run(t, sess, "mv old.txt new.txt")
	if out != "Moved 'old.txt' to 'new.txt'" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(sess.jail, "new.txt")); err != nil {
		t.Fatal("expected moved file to exist")
	}
	if _, err := os.Stat(filepath.Join(sess.jail, "old.txt")); !os.IsNotExist(err) {
		t.Fatal("expected original file to be gone")
	}
}

func TestCpCopiesFile(t *testing.T) {
	sess := newTestSession(t)
	writeJailFile(t, sess, "src.txt", "payload")
	out := run(t, sess, "cp src.txt dst.txt")
	if out != "Copied 'src.txt' to 'dst.txt'" {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(filepath.Join(sess.jail, "dst.txt"))
	if err != nil || string(data) != "payload" {
		t.Fatalf("expected copied contents, got %q (%v)", data, err)
	}
}

func TestCpCopiesDirectory(t *testing.T) {
	sess := newTestSession(t)
	run(t, sess, "mkdir srcdir")
	writeJailFile(t, sess, "srcdir/a.txt", "a")
	out := run(t, sess, "cp srcdir dstdir")
	if out != "Copied 'srcdir' to 'dstdir'" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(sess.jail, "dstdir", "a.txt")); err != nil {
		t.Fatal("expected copied tree to exist")
	}
}

func TestLnCreatesLink(t *testing.T) {
	sess := newTestSession(t)
	writeJailFile(t, sess, "target.txt", "t")
	out := run(t, sess, "ln target.txt link.txt")
	if out != "Created symbolic link: link.txt -> target.txt" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := run(t, sess, "cat link.txt"); out != "t" {
		t.Fatalf("expected link to resolve inside jail, got %q", out)
	}
}

func TestChmod(t *testing.T) {
	sess := newTestSession(t)
	writeJailFile(t, sess, "mode.txt", "m")
	out := run(t, sess, "chmod 600 mode.txt")
	if out != "Changed permissions of mode.txt to 600" {
		t.Fatalf("unexpected output %q", out)
	}
	info, err := os.Stat(filepath.Join(sess.jail, "mode.txt"))
	if err != nil || info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 600, got %v (%v)", info.Mode(), err)
	}
}

func TestChmodInvalidMode(t *testing.T) {
	sess := newTestSession(t)
	writeJailFile(t, sess, "mode.txt", "m")
	out := run(t, sess, "chmod 99z mode.txt")
	if out != "Error changing permissions: invalid mode '99z'" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFileTypes(t *testing.T) {
	sess := newTestSession(t)
	writeJailFile(t, sess, "plain.txt", "p")
	if out := run(t, sess, "file plain.txt"); out != "plain.txt: regular file" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := run(t, sess, "file home"); out != "home: directory" {
		t.Fatalf("unexpected output %q", out)
	}
	if out := run(t, sess, "file missing"); out != "missing: cannot open" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStatOutput(t *testing.T) {
	sess := newTestSession(t)
	writeJailFile(t, sess, "s.txt", "12345")
	out := run(t, sess, "stat s.txt")
	if !strings.HasPrefix(out, "File: s.txt\nSize: 5 bytes\nModified: ") {
		t.Fatalf("unexpected output %q", out)
	}
}

func writeJailFile(t *testing.T, s *Session, rel, content string) {
	t.Helper()
	path := filepath.Join(s.jail, filepath.FromSlash(rel))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}
