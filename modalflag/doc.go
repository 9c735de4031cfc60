// This file is part of Dragon32Rev3Proto.
//
// Dragon32Rev3Proto is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dragon32Rev3Proto is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dragon32Rev3Proto.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag wraps the flag package from the standard library, adding
// the idea of program modes (and sub-modes) each with their own set of
// flags. It works in the manner of the go command, which has many distinct
// modes (build, doc, test, etc.) selected with the first non-flag argument.
//
// Usage differs from the flag package in that the argument list is supplied
// up front with NewArgs() and then Parse() is called without arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("run", "probe", "performance")
//	p, err := md.Parse()
//
// After a successful parse, Mode() names the selected sub-mode (the first
// listed sub-mode if none was given; comparisons are case insensitive).
// Each mode then declares its own flags with NewMode() and the Add*()
// functions before calling Parse() again:
//
//	switch md.Mode() {
//	case "PERFORMANCE":
//		md.NewMode()
//		duration := md.AddString("duration", "5s", "run duration")
//		p, err := md.Parse()
//		...
//	}
//
// Modes nest as deeply as required. Arguments left over once flags and the
// sub-mode selector have been consumed are available through
// RemainingArgs() and GetArg().
package modalflag
