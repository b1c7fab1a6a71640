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
	"errors"
	"io/fs"
	"strings"
	"testing"

	apperrors "jailshell/internal/errors"
)

func TestDispatchEmptyLine(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "   "); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "xyzzy")
	want := "Command not found: xyzzy. Type 'help' for available commands."
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestDispatchCaseInsensitiveName(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "WHOAMI"); out != "terminal_user" {
		t.Fatalf("expected terminal_user, got %q", out)
	}
}

func TestDispatchQuotedArguments(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, `echo "hello world" 'and more'`)
	if out != "hello world and more" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDispatchMalformedQuoting(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, `echo "unterminated`)
	if !strings.HasPrefix(out, "parse error:") {
		t.Fatalf("expected parse error, got %q", out)
	}
}

func TestDispatchEnvReferencesEmpty(t *testing.T) {
	t.Setenv("JAILSHELL_TEST_LEAK", "leaked")
	sess := newTestSession(t)
	out := run(t, sess, "echo $JAILSHELL_TEST_LEAK")
	if out != "" {
		t.Fatalf("expected host env to be invisible, got %q", out)
	}
}

func TestDispatchUnimplementedHandler(t *testing.T) {
	sess := newTestSession(t)
	for _, name := range []string{"sed", "awk", "chown"} {
		out := run(t, sess, name)
		want := "Handler for '" + name + "' not implemented yet."
		if out != want {
			t.Fatalf("expected %q, got %q", want, out)
		}
	}
}

func TestInvokeRecoversPanic(t *testing.T) {
	sess := newTestSession(t)
	cmd := &Command{
		Name: "boom",
		Run: func(ctx context.Context, s *Session, args []string) (string, error) {
			panic("kablam")
		},
	}
	out := invoke(context.Background(), sess, cmd, nil)
	if out != "Error running boom: kablam" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestClassifyFault(t *testing.T) {
	if got := apperrors.CodeOf(classifyFault(fs.ErrPermission)); got != apperrors.CodePermission {
		t.Fatalf("expected permission code, got %q", got)
	}
	if got := apperrors.CodeOf(classifyFault(errors.New("boom"))); got != apperrors.CodeHandler {
		t.Fatalf("expected handler code, got %q", got)
	}
	coded := apperrors.New(apperrors.CodeNotFound, "gone")
	if got := apperrors.CodeOf(classifyFault(coded)); got != apperrors.CodeNotFound {
		t.Fatalf("expected coded error to pass through, got %q", got)
	}
}

func TestDispatchSerializesState(t *testing.T) {
	sess := newTestSession(t)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			run(t, sess, "cd home")
			run(t, sess, "cd ..")
		}
	}()
	for i := 0; i < 50; i++ {
		run(t, sess, "pwd")
	}
	<-done
	if got := sess.Pwd(); got != "." && got != "home" {
		t.Fatalf("unexpected final directory %q", got)
	}
}
