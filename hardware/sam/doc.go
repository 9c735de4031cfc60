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

// Package sam implements the synchronous address multiplexer, the timing
// heart of the board. The chip sits between the CPU, the video generator
// and the dynamic RAM, and from a single crystal derives every strobe the
// rest of the system runs on.
//
// The package is the integration point only. The real work happens in the
// sub-packages:
//
//	reftime    the sixteen reference-time states of a bus cycle
//	sequencer  rate and source decisions, refresh bursts
//	registers  the write-only, bit-addressed configuration bank
//	busmux     address classification and row/column multiplexing
//	video      the scan-address generator and its divider chains
//	divider    the divide-by-N counter primitives
//	resetgen   the reset filter and vertical preload generation
//
// The SAM type wires them together and presents the chip's pins. Inputs
// are presented as levels through the Set methods; the chip advances one
// reference-time step per call to Step, which corresponds to one falling
// edge of the primary clock. After any input change or step the Pins field
// holds the settled output levels.
package sam
