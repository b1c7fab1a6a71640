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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	apperrors "jailshell/internal/errors"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	sess, err := NewSession(filepath.Join(t.TempDir(), "root"), zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return sess
}

func run(t *testing.T, s *Session, line string) string {
	t.Helper()
	return s.Dispatch(context.Background(), line)
}

func TestNewSessionCreatesLayout(t *testing.T) {
	sess := newTestSession(t)
	for _, sub := range jailSubdirs {
		info, err := os.Stat(filepath.Join(sess.jail, sub))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected subdirectory %s to exist", sub)
		}
	}
}

func TestNewSessionIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "root")
	first, err := NewSession(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("first session failed: %v", err)
	}
	second, err := NewSession(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("second session failed: %v", err)
	}
	if first.jail != second.jail {
		t.Fatalf("expected same jail, got %s and %s", first.jail, second.jail)
	}
}

func TestPwdAtRoot(t *testing.T) {
	sess := newTestSession(t)
	if got := sess.Pwd(); got != "." {
		t.Fatalf("expected '.', got %q", got)
	}
}

func TestCdParentClampsAtRoot(t *testing.T) {
	sess := newTestSession(t)
	for i := 0; i < 5; i++ {
		run(t, sess, "cd ..")
	}
	if got := sess.Pwd(); got != "." {
		t.Fatalf("expected to stay at root, got %q", got)
	}
}

func TestCdTraversalClamps(t *testing.T) {
	sess := newTestSession(t)
	run(t, sess, "cd home")
	out := run(t, sess, "cd ../../../../documents")
	if out != "Changed to: documents" {
		t.Fatalf("unexpected output %q", out)
	}
	if got := sess.Pwd(); got != "documents" {
		t.Fatalf("expected documents, got %q", got)
	}
}

func TestAbsoluteInputRebasedOnJail(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "cd /home")
	if out != "Changed to: home" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSymlinkEscapeContained(t *testing.T) {
	sess := newTestSession(t)
	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("s"), 0o644); err != nil {
		t.Fatalf("failed to write outside file: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(sess.jail, "escape")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if out := run(t, sess, "cd escape"); out != "Directory not found: escape" {
		t.Fatalf("expected containment on cd, got %q", out)
	}
	if out := run(t, sess, "cat escape/secret.txt"); !strings.HasPrefix(out, "No such file:") {
		t.Fatalf("expected containment on cat, got %q", out)
	}
}

func TestResolveErrorCodes(t *testing.T) {
	sess := newTestSession(t)
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(sess.jail, "escape")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, err := sess.resolve("escape")
	if apperrors.CodeOf(err) != apperrors.CodeContainment {
		t.Fatalf("expected containment code, got %q (%v)", apperrors.CodeOf(err), err)
	}

	_, err = sess.resolveNoFollow("nodir/child")
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %q (%v)", apperrors.CodeOf(err), err)
	}
}

func TestHostLayoutNeverPrinted(t *testing.T) {
	sess := newTestSession(t)
	outputs := []string{
		run(t, sess, "pwd"),
		run(t, sess, "cd home"),
		run(t, sess, "cat ../nope.txt"),
		run(t, sess, "stat nope"),
	}
	for _, out := range outputs {
		if strings.Contains(out, sess.jail) {
			t.Fatalf("output leaks jail location: %q", out)
		}
	}
}
