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

// Package registers implements the configuration register bank of the
// address multiplexer. The registers are write only and bit addressed: the
// data written is carried by the address bus itself, not by the data bus.
//
// In the controller window, address bits 4 to 1 select the target bit and
// address bit 0 is the value stored. In the bank window, address bits 3 and
// 2 select the target register and bits 1 and 0 are the two bit value.
//
// Writes latch on the rising edge of the MPU enable strobe. The caller is
// responsible for only presenting writes at that instant, with address
// lines stable.
package registers

import (
	"fmt"
	"strings"
)

// The two write-only register windows in high memory.
const (
	OriginController = uint16(0xffc0)
	MemtopController = uint16(0xffdf)
	OriginBank       = uint16(0xffb0)
	MemtopBank       = uint16(0xffbf)
)

// VideoBank is the video bank selection mode. Only two of the four writable
// codes are defined; the other two are no-ops.
type VideoBank int

// Valid VideoBank values.
const (
	// video accesses use bankSelect[0], both bits
	Lower32K VideoBank = iota

	// the high bank bit of video accesses is forced to zero
	Fixed0
)

func (vb VideoBank) String() string {
	switch vb {
	case Lower32K:
		return "lower32k"
	case Fixed0:
		return "fixed0"
	}
	panic("unknown video bank mode")
}

// target identifies the configuration field addressed by a write. the
// decode tables below form a closed enumeration: every writable address
// maps to a target, with no-op as the declared default for the reserved
// slots.
type target int

const (
	targetVideoMode target = iota
	targetFrameOffset
	targetPage
	targetRate
	targetMemType
	targetMapType
	targetBank0
	targetBank1
	targetVideoBank
	targetNop
)

// controller window decode: offset (address bits 4..1) to field and bit
// position. field order fixed by the original part: V0-V2, F0-F6, P1,
// R0-R1, M0-M1, TY.
var controllerTable = [16]struct {
	tgt target
	bit int
}{
	{targetVideoMode, 0},
	{targetVideoMode, 1},
	{targetVideoMode, 2},
	{targetFrameOffset, 0},
	{targetFrameOffset, 1},
	{targetFrameOffset, 2},
	{targetFrameOffset, 3},
	{targetFrameOffset, 4},
	{targetFrameOffset, 5},
	{targetFrameOffset, 6},
	{targetPage, 0},
	{targetRate, 0},
	{targetRate, 1},
	{targetMemType, 0},
	{targetMemType, 1},
	{targetMapType, 0},
}

// bank window decode: address bits 3..2 to register.
var bankTable = [4]target{
	targetBank0,
	targetBank1,
	targetVideoBank,
	targetNop,
}

// number of E falling edges before a written video mode value is visible.
const modePipelineDepth = 3

// Registers is the configuration state of the address multiplexer.
//
// The exported fields are the committed values as seen by the rest of the
// chip. They should be treated as read-only outside of this package.
type Registers struct {
	// committed video mode. a written value passes through the mode
	// pipeline before appearing here
	VideoMode uint8

	FrameOffset uint8
	Page        bool
	Rate        uint8
	MapType     bool
	Bank        [2]uint8
	VideoBank   VideoBank

	// the memory type field is accepted and stored but has no effect on
	// addressing. the part always behaves as its 256K equivalent
	MemType uint8

	// the most recently written video mode, waiting to enter the pipeline
	writtenMode uint8

	// pipeline of pending video mode values, advanced once per E falling
	// edge. pipeline[modePipelineDepth-1] is the next value to commit
	pipeline [modePipelineDepth]uint8
}

// NewRegisters is the preferred method of initialisation for the Registers
// type.
func NewRegisters() *Registers {
	reg := &Registers{}
	reg.Reset()
	return reg
}

func (reg Registers) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("mode=%03b offset=%02x ", reg.VideoMode, reg.FrameOffset))
	s.WriteString(fmt.Sprintf("page=%v rate=%02b ty=%v ", reg.Page, reg.Rate, reg.MapType))
	s.WriteString(fmt.Sprintf("banks=[%02b %02b] video=%s", reg.Bank[0], reg.Bank[1], reg.VideoBank))
	return s.String()
}

// Reset returns every register to its documented default. Reset has
// priority over any concurrent write.
func (reg *Registers) Reset() {
	reg.VideoMode = 0
	reg.writtenMode = 0
	for i := range reg.pipeline {
		reg.pipeline[i] = 0
	}
	reg.FrameOffset = 0
	reg.Page = false
	reg.Rate = 0
	reg.MemType = 0
	reg.MapType = false
	reg.Bank[0] = 0
	reg.Bank[1] = 0
	reg.VideoBank = Lower32K
}

// Write decodes a CPU write to one of the two register windows. To honour
// the latching contract the function must only be called at the rising edge
// of the MPU enable strobe. Returns false if the address is not in either
// window.
func (reg *Registers) Write(address uint16) bool {
	switch {
	case address >= OriginController && address <= MemtopController:
		reg.writeController(address)
	case address >= OriginBank && address <= MemtopBank:
		reg.writeBank(address)
	default:
		return false
	}
	return true
}

func (reg *Registers) writeController(address uint16) {
	offset := (address - OriginController) >> 1
	value := address&0x01 == 0x01
	dec := controllerTable[offset]

	switch dec.tgt {
	case targetVideoMode:
		reg.writtenMode = setBit(reg.writtenMode, dec.bit, value)
	case targetFrameOffset:
		reg.FrameOffset = setBit(reg.FrameOffset, dec.bit, value)
	case targetPage:
		reg.Page = value
	case targetRate:
		reg.Rate = setBit(reg.Rate, dec.bit, value)
	case targetMemType:
		// stored but inert
		reg.MemType = setBit(reg.MemType, dec.bit, value)
	case targetMapType:
		reg.MapType = value
	default:
		panic(fmt.Sprintf("impossible controller register target (%d)", dec.tgt))
	}
}

func (reg *Registers) writeBank(address uint16) {
	value := uint8(address & 0x03)

	switch bankTable[(address>>2)&0x03] {
	case targetBank0:
		reg.Bank[0] = value
	case targetBank1:
		reg.Bank[1] = value
	case targetVideoBank:
		switch value {
		case 0x00:
			reg.VideoBank = Lower32K
		case 0x01:
			reg.VideoBank = Fixed0
		default:
			// the two remaining codes are don't-care slots
		}
	case targetNop:
		// reserved sub-address
	}
}

// AdvancePipeline moves the pending video mode one stage closer to being
// committed. Must be called once per falling edge of the MPU enable strobe.
// A written mode value becomes visible in the VideoMode field only after
// modePipelineDepth calls; the scan-address generator's glitch timing
// depends on this delay.
func (reg *Registers) AdvancePipeline() {
	for i := modePipelineDepth - 1; i > 0; i-- {
		reg.pipeline[i] = reg.pipeline[i-1]
	}
	reg.pipeline[0] = reg.writtenMode
	reg.VideoMode = reg.pipeline[modePipelineDepth-1]
}

func setBit(v uint8, bit int, set bool) uint8 {
	if set {
		return v | 1<<bit
	}
	return v &^ (1 << bit)
}
