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

// Package curated is the error type used throughout the project. Errors are
// created with a pattern string which also acts as the error's identity.
// Sentinel comparisons are made against the pattern with the Is() and Has()
// functions rather than against error instances.
//
// Note that the chip model itself never returns a curated error. There are
// no recoverable errors at the pin level; impossible driver usage is a
// contract violation and fails fast. Curated errors appear in the outer
// surfaces only: command parsing, file output, terminal handling.
package curated
