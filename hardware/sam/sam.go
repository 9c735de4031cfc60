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

package sam

import (
	"fmt"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/busmux"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/registers"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/resetgen"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/sequencer"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/video"
	"github.com/jimbro1000/Dragon32Rev3Proto/logger"
)

// Pins are the settled output levels of the chip. The active low strobes
// keep their hardware sense: true means the pin reads high, so an asserted
// nRAS is a false NRAS field.
type Pins struct {
	// the CPU clock pair. Q leads E by a quarter cycle
	E bool
	Q bool

	// device select code for the address currently on the CPU bus
	S busmux.Code

	// the multiplexed physical address and which half it carries
	Z         uint16
	RowSelect bool

	// DRAM strobes, active low
	NRAS bool
	NCAS bool
	NWE  bool

	// reset shaping output, derived from the reset filter chain
	ResetShape bool
}

func (p Pins) String() string {
	return fmt.Sprintf("e=%v q=%v s=%s z=%03x row=%v ras=%v cas=%v we=%v",
		p.E, p.Q, p.S, p.Z, p.RowSelect, p.NRAS, p.NCAS, p.NWE)
}

// SAM is the synchronous address multiplexer.
type SAM struct {
	Regs *registers.Registers
	Seq  *sequencer.Sequencer
	Vid  *video.Video
	Rst  *resetgen.ResetGen

	// input levels as most recently presented
	addr   uint16
	rnw    bool
	hs     bool
	nreset bool

	// E level after the previous step, for edge-triggered register work
	prevE bool

	// previous internal reset condition and sync error, for logging the
	// transitions only
	prevIER     bool
	prevSyncErr bool

	Pins Pins
}

// NewSAM is the preferred method of initialisation for the SAM type.
func NewSAM() *SAM {
	sam := &SAM{
		Regs: registers.NewRegisters(),
		Seq:  sequencer.NewSequencer(),
		Vid:  video.NewVideo(),
		Rst:  resetgen.NewResetGen(),

		// both CPU-side inputs idle high
		rnw:    true,
		hs:     true,
		nreset: true,
	}
	sam.settle()
	return sam
}

func (sam *SAM) String() string {
	return fmt.Sprintf("%s rate=%02b map=%v %s", sam.Seq, sam.Regs.Rate, sam.Regs.MapType, sam.Pins)
}

// SetAddressBus presents a new CPU address and read/write direction. rnw is
// true for a read.
func (sam *SAM) SetAddressBus(addr uint16, rnw bool) {
	sam.addr = addr
	sam.rnw = rnw
	sam.settle()
}

// SetDA0 presents a new level of the external pixel clock.
func (sam *SAM) SetDA0(level bool) {
	sam.Vid.PixelClock(sam.Seq.RefTime, level, sam.hs)
	sam.applyPreload()
	sam.settle()
}

// SetHS presents a new level of the horizontal sync input (active low).
func (sam *SAM) SetHS(level bool) {
	sam.hs = level
	sam.Rst.Observe(sam.hs, sam.Vid.DA0())
	sam.applyPreload()
	sam.settle()
}

// SetNReset presents a new level of the external reset pin (active low).
// The level only takes effect through the reset filter as the chip steps.
func (sam *SAM) SetNReset(level bool) {
	sam.nreset = level
}

// Step advances the chip by one falling edge of the primary clock.
func (sam *SAM) Step() {
	sam.Rst.Step(sam.nreset)
	sam.Rst.Observe(sam.hs, sam.Vid.DA0())

	if sam.Rst.IER {
		if !sam.prevIER {
			logger.Log("sam", "internal reset asserted")
			sam.Regs.Reset()
			sam.Seq.Reset()
			sam.Vid.Reset()
			sam.prevE = false
		}
		sam.prevIER = true
		sam.settle()
		return
	}
	if sam.prevIER {
		logger.Log("sam", "internal reset released")
	}
	sam.prevIER = false

	fastEligible := busmux.FastEligible(sam.addr, !sam.rnw, sam.Regs.MapType)
	sam.Seq.Step(sam.Regs.Rate, fastEligible, sam.hs, false)

	if sam.Seq.RefTime.SyncRestart() {
		sam.Vid.Restart()
		sam.prevSyncErr = false
	}
	if sam.Vid.SyncError && !sam.prevSyncErr {
		logger.Logf("sam", "pixel clock edge outside sync window near %s", sam.Seq.RefTime)
		sam.prevSyncErr = true
	}

	e := sam.Seq.MPUEnable()
	if e && !sam.prevE && !sam.rnw {
		// register writes latch on the rising edge of E
		sam.Regs.Write(sam.addr)
	}
	if !e && sam.prevE {
		// the falling edge of E advances the video mode pipeline and
		// presents the committed mode to the scan-address generator
		sam.Regs.AdvancePipeline()
		sam.Vid.SetMode(sam.Regs.VideoMode)
	}
	sam.prevE = e

	sam.applyPreload()
	sam.settle()
}

// applyPreload loads the scan counter from the frame offset for as long as
// the vertical preload condition holds.
func (sam *SAM) applyPreload() {
	if sam.Rst.VerticalPreload(sam.hs) {
		sam.Vid.VerticalPreload(sam.Regs.FrameOffset)
	}
}

// settle recomputes the pin levels from current state.
func (sam *SAM) settle() {
	rt := sam.Seq.RefTime

	code, isRAM := busmux.MapAddress(sam.addr, !sam.rnw, sam.Regs.MapType)
	row, z := busmux.Address(rt, sam.Seq.Src, sam.addr, sam.Vid.Scan(), sam.Vid.DA0(), sam.Seq.RefreshCounter, sam.Regs)

	if sam.Rst.IER {
		// strobes idle throughout internal reset. the select code stays
		// live so the reset vector fetch that follows release resolves
		sam.Pins = Pins{
			S:          code,
			Z:          z,
			RowSelect:  row,
			NRAS:       true,
			NCAS:       true,
			NWE:        true,
			ResetShape: sam.Rst.ShapingClock(),
		}
		return
	}

	e := sam.Seq.MPUEnable()
	sam.Pins = Pins{
		E:          e,
		Q:          sam.Seq.QuadratureStrobe(),
		S:          code,
		Z:          z,
		RowSelect:  row,
		NRAS:       !rt.RowStrobe(),
		NCAS:       !rt.ColumnStrobe(),
		NWE:        !(e && !sam.rnw && isRAM),
		ResetShape: sam.Rst.ShapingClock(),
	}
}
