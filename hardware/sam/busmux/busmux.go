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

// Package busmux implements the address multiplexer and bank router. Both
// halves of the package are pure functions of current state: region
// classification of the CPU address into a select code, and the row/column
// multiplexing of the three address sources onto the nine bit physical bus.
package busmux

import (
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/reftime"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/registers"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/sequencer"
)

// Code is the three bit region/select code consumed by the rest of the
// board for chip-select routing.
type Code int

// The select codes.
const (
	CodeRAM  Code = 0
	CodeROM0 Code = 1
	CodeROM1 Code = 2
	CodeROM2 Code = 3
	CodeIO0  Code = 4
	CodeIO1  Code = 5
	CodeIO2  Code = 6
	CodeExt  Code = 7
)

func (c Code) String() string {
	switch c {
	case CodeRAM:
		return "RAM"
	case CodeROM0:
		return "ROM0"
	case CodeROM1:
		return "ROM1"
	case CodeROM2:
		return "ROM2"
	case CodeIO0:
		return "IO0"
	case CodeIO1:
		return "IO1"
	case CodeIO2:
		return "IO2"
	case CodeExt:
		return "EXT"
	}
	return "undefined"
}

// The origin of each fixed high-address window. Everything below OriginIO0
// classifies as RAM or ROM depending on map type.
const (
	OriginIO0     = uint16(0xff00)
	OriginIO1     = uint16(0xff20)
	OriginIO2     = uint16(0xff40)
	OriginExt     = uint16(0xff60)
	OriginVectors = uint16(0xffe0)
)

// the 8K sub-regions of the upper half of the CPU space in map type 0.
const (
	originROM0 = uint16(0x8000)
	originROM1 = uint16(0xa000)
	originROM2 = uint16(0xc000)
)

// MapAddress classifies a CPU address into its select code. The write flag
// matters in map type 0 where a write to a ROM-mapped region is redirected
// to RAM.
func MapAddress(address uint16, write bool, mapType bool) (Code, bool) {
	// the fixed high-address windows are independent of map type
	if address >= OriginIO0 {
		switch {
		case address >= OriginVectors:
			return CodeROM1, false
		case address >= OriginExt:
			return CodeExt, false
		case address >= OriginIO2:
			return CodeIO2, false
		case address >= OriginIO1:
			return CodeIO1, false
		}
		return CodeIO0, false
	}

	// map type 1: everything below the I/O windows is RAM
	if mapType {
		return CodeRAM, true
	}

	// map type 0: the upper half splits into 8K ROM regions. writes to
	// those regions redirect to RAM
	if address >= originROM0 {
		if write {
			return CodeRAM, true
		}
		switch {
		case address >= originROM2:
			return CodeROM2, false
		case address >= originROM1:
			return CodeROM1, false
		}
		return CodeROM0, false
	}

	return CodeRAM, true
}

// FastEligible returns true when an address-dependent rate cycle may run
// fast for this address: neither general RAM nor the first I/O window.
func FastEligible(address uint16, write bool, mapType bool) bool {
	code, isRAM := MapAddress(address, write, mapType)
	return !isRAM && code != CodeIO0
}

// Address computes the nine bit physical address presented to the memory
// for the current step. The row flag reports whether the row or column half
// is selected; the selection is a static function of reference time,
// independent of address source.
//
// scan is the video scan counter (bits 1 to 15); da0 is the current level
// of the external pixel clock, injected as the low video address bit.
func Address(rt reftime.RefTime, src sequencer.Source, cpuAddr uint16, scan uint16, da0 bool, refresh uint8, reg *registers.Registers) (bool, uint16) {
	row := rt.RowSelect()

	var addr uint16

	switch src {
	case sequencer.MPU:
		// bank selection splits the CPU space in half
		bank := reg.Bank[cpuAddr>>15]
		if row {
			addr = uint16(bank&0x01)<<8 | cpuAddr&0x00ff
		} else {
			high := cpuAddr >> 15 & 0x01
			if !reg.MapType {
				high = 0
				if reg.Page {
					high = 1
				}
			}
			addr = uint16(bank>>1&0x01)<<8 | high<<7 | cpuAddr>>8&0x007f
		}

	case sequencer.Video:
		video := scan
		if da0 {
			video |= 0x0001
		}
		if row {
			addr = uint16(reg.Bank[0]&0x01)<<8 | video&0x00ff
		} else {
			bank := uint16(reg.Bank[0] >> 1 & 0x01)
			if reg.VideoBank == registers.Fixed0 {
				bank = 0
			}
			addr = bank<<8 | video>>8
		}

	case sequencer.Refresh:
		// refresh does not distinguish banks. row and column halves both
		// carry the refresh row
		addr = uint16(refresh)
	}

	return row, addr
}
