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

// Package hardware ties the address multiplexer to the rest of the board.
// The chip itself never initiates anything: the CPU puts addresses on the
// bus and the video generator supplies the pixel clock and sync levels.
// Both collaborators are interfaces so tests and tools can substitute
// their own traffic, with simple stub implementations provided for
// free-running use.
package hardware
