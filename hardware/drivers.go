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

package hardware

import (
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam"
)

// BusOp is one entry in a StubCPU program.
type BusOp struct {
	Addr  uint16
	Write bool
}

// StubCPU replays a fixed program of bus operations, one per E cycle,
// wrapping at the end. It stands in for the CPU when only the timing chip
// is under study.
type StubCPU struct {
	program []BusOp
	pc      int
}

// NewStubCPU is the preferred method of initialisation for the StubCPU
// type. A nil or empty program is replaced with a fetch loop through the
// bottom of the first ROM region.
func NewStubCPU(program []BusOp) *StubCPU {
	if len(program) == 0 {
		program = make([]BusOp, 0, 64)
		for a := uint16(0x8000); a < 0x8040; a++ {
			program = append(program, BusOp{Addr: a})
		}
	}
	return &StubCPU{program: program}
}

// NextCycle implements the BusDriver interface.
func (cpu *StubCPU) NextCycle(_ sam.Pins) (uint16, bool) {
	op := cpu.program[cpu.pc]
	cpu.pc = (cpu.pc + 1) % len(cpu.program)
	return op.Addr, !op.Write
}

// StubVDG generates a pixel clock and horizontal sync pattern compatible
// with the chip's expectations: the pixel clock falls inside the sync
// window of each bus cycle, sync asserts for the first cycles of every
// line, and the release at the top of each frame lands while the pixel
// clock is high so the vertical preload fires once per frame.
type StubVDG struct {
	// bus cycles per scan line and frame geometry
	LineCycles int
	SyncCycles int
	FrameLines int
}

// NewStubVDG is the preferred method of initialisation for the StubVDG
// type.
func NewStubVDG() *StubVDG {
	return &StubVDG{
		LineCycles: 14,
		SyncCycles: 2,
		FrameLines: 262,
	}
}

// Levels implements the SyncDriver interface.
func (vdg *StubVDG) Levels(step uint64) (bool, bool) {
	// one pixel clock period per bus cycle, falling at the third step
	phase := int(step % 16)
	da0 := phase < 2 || phase >= 10

	lineSteps := uint64(vdg.LineCycles) * 16
	stepInLine := step % lineSteps
	line := int(step / lineSteps % uint64(vdg.FrameLines))

	// ordinary lines release sync mid-cycle, while the pixel clock is low.
	// the first line of each frame releases it at a cycle boundary, while
	// the pixel clock is high, marking the frame origin
	syncEnd := uint64(vdg.SyncCycles) * 16
	if line != 0 {
		syncEnd += 4
	}
	hsync := stepInLine >= syncEnd

	return da0, hsync
}
