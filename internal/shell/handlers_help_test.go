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
	"strings"
	"testing"
)

func TestHelpListsAllCategories(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "help")
	if !strings.HasPrefix(out, "Available commands:\n\n") {
		t.Fatalf("unexpected header in %q", out)
	}
	for _, category := range categoryOrder {
		if !strings.Contains(out, category+":\n") {
			t.Fatalf("missing category %q in help output", category)
		}
	}
	if !strings.HasSuffix(out, "Tip: Use 'cd ..' to go up one directory level") {
		t.Fatalf("missing footer in %q", out)
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "help")
	for _, name := range CommandNames() {
		if !strings.Contains(out, "  "+name) {
			t.Fatalf("command %q missing from help output", name)
		}
	}
}

func TestHelpReportsCurrentDirectory(t *testing.T) {
	sess := newTestSession(t)
	run(t, sess, "cd documents")
	out := run(t, sess, "help")
	if !strings.Contains(out, "Current directory: documents\n") {
		t.Fatalf("expected current directory line in %q", out)
	}
}

func TestManPage(t *testing.T) {
	sess := newTestSession(t)
	if out := run(t, sess, "man"); out != "Usage: man <command>" {
		t.Fatalf("unexpected output %q", out)
	}
	out := run(t, sess, "man ls")
	if !strings.HasPrefix(out, "Manual page for ls\n\n") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := run(t, sess, "man frobnicate"); out != "No manual entry for frobnicate" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInfoPage(t *testing.T) {
	sess := newTestSession(t)
	out := run(t, sess, "info grep")
	if !strings.HasPrefix(out, "Info: grep\n\n") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := run(t, sess, "info frobnicate"); out != "No info entry for frobnicate" {
		t.Fatalf("unexpected output %q", out)
	}
}
