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

// Package probe is a single-key terminal front end for stepping the board
// and watching the chip's pins, in the spirit of hanging a logic probe off
// the part. It drives the terminal in cbreak mode so keystrokes act
// immediately:
//
//	space    advance one primary clock step
//	c, enter advance one full bus cycle
//	l        advance one scan line
//	r        run at hardware speed until the next keypress
//	s        write the chip's internal state as a graphviz file
//	q        quit
package probe
