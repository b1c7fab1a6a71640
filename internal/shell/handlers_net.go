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

// Network and archive commands. All of these are simulated: no socket
// is ever opened and no archive is ever created. The responses mimic
// what the real tools print when the network is unreachable or the
// target file is missing.

package shell

import (
	"context"
	"fmt"
)

func registerNetworkCommands(r *Registry) {
	r.register(&Command{Name: "ping", Category: catNetwork, Help: "Send ICMP echo requests to a host", Run: cmdPing})
	r.register(&Command{Name: "curl", Category: catNetwork, Help: "Transfer data from a URL", Run: cmdCurl})
	r.register(&Command{Name: "wget", Category: catNetwork, Help: "Download files from the web", Run: cmdWget})
	r.register(&Command{Name: "ssh", Category: catNetwork, Help: "Connect to a remote host", Run: cmdSsh})
	r.register(&Command{Name: "scp", Category: catNetwork, Help: "Copy files to a remote host", Run: cmdScp})
	r.register(&Command{Name: "tar", Category: catNetwork, Help: "Archive files", Run: cmdTar})
	r.register(&Command{Name: "zip", Category: catNetwork, Help: "Package files into a zip archive", Run: cmdZip})
	r.register(&Command{Name: "unzip", Category: catNetwork, Help: "Extract files from a zip archive", Run: cmdUnzip})
}

func cmdPing(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: ping <host>", nil
	}
	return fmt.Sprintf("PING %s (127.0.0.1): 56 data bytes\n64 bytes from 127.0.0.1: icmp_seq=0 ttl=64 time=0.1 ms", args[0]), nil
}

func cmdCurl(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: curl <url>", nil
	}
	return fmt.Sprintf("curl: (6) Could not resolve host: %s", args[0]), nil
}

func cmdWget(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: wget <url>", nil
	}
	return fmt.Sprintf("wget: unable to resolve host address '%s'", args[0]), nil
}

func cmdSsh(ctx context.Context, s *Session, args []string) (string, error) {
	return "ssh: connect to host: Connection refused", nil
}

func cmdScp(ctx context.Context, s *Session, args []string) (string, error) {
	return "scp: connect to host: Connection refused", nil
}

func cmdTar(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: tar <options> <archive> [files...]", nil
	}
	return fmt.Sprintf("tar: %s: Cannot open: No such file or directory", args[len(args)-1]), nil
}

func cmdZip(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: zip <archive> [files...]", nil
	}
	return fmt.Sprintf("zip: %s: No such file or directory", args[0]), nil
}

func cmdUnzip(ctx context.Context, s *Session, args []string) (string, error) {
	if len(args) == 0 {
		return "Usage: unzip <archive>", nil
	}
	a := args[0]
	return fmt.Sprintf("unzip: cannot find or open %s, %s.zip or %s.ZIP", a, a, a), nil
}
