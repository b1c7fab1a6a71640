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

//go:build unix

package shell

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// systemIdentity reports kernel name, release and machine the way
// uname(1) prints them. Falls back to runtime constants if the
// syscall is unavailable.
func systemIdentity() (platform, release, machine string) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOOS, "unknown", runtime.GOARCH
	}
	return utsString(uts.Sysname[:]), utsString(uts.Release[:]), utsString(uts.Machine[:])
}

func utsString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
