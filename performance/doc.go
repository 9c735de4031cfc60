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

// Package performance contains helper functions relating to performance.
//
// Check() runs a free-running board for a fixed duration of wall time and
// reports the achieved simulation speed against the real part's crystal.
// It will optionally generate profiling information.
//
// RunProfiler() can be used to wrap any run function in the various
// profile types. On its own it does not limit how long the program runs
// for, so it is useful for more real-world situations.
//
// Limiter paces a run loop to hardware speed for interactive use.
package performance
