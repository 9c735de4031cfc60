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

// Package video implements the scan-address generator. A fifteen bit
// counter (bits 1 to 15; bit 0 of the video address is the external pixel
// clock itself) advances through two divider chains whose ratios are
// selected by the video mode:
//
//	bits 1-3   increment on the falling edge of the pixel clock
//	bit 4      toggles on the X-divided clock derived from bit 3
//	bits 5-15  increment on the Y-divided clock derived from bit 4
//
// All divider variants run continuously; the video mode selects which
// output drives the next stage. Mode changes between specific ratio pairs
// reproduce the transient "glitches" of the original part: for one divided
// clock pulse the selected input is substituted with a forced value. The
// glitches are required for software compatibility and are reproduced
// exactly; other theoretically possible glitches are documented as
// unreliable upstream and are not reproduced.
package video

import (
	"fmt"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/divider"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/reftime"
)

// DMA is the video mode in which the scan counter free-runs: the sync input
// neither clears the low bits nor forces bit 4.
const DMA = uint8(0x07)

// ratio selection for each of the eight video modes. X divides bit 3 into
// bit 4; Y divides bit 4 into bits 5-15. clearBit4 reports whether sync
// assertion clears bit 4 as well as bits 1-3.
var modeTable = [8]struct {
	x         int
	y         int
	clearBit4 bool
}{
	{1, 12, true},
	{3, 1, false},
	{1, 3, true},
	{2, 1, false},
	{1, 2, true},
	{1, 1, false},
	{1, 1, true},
	{1, 1, false}, // DMA: no clearing at all
}

// glitch substitution values.
type glitchValue int

const (
	glitchNone glitchValue = iota

	// the divider input is forced to zero
	glitchZero

	// the divider input is substituted with bit 4's own value
	glitchBit4
)

// Video is the scan-address generator.
type Video struct {
	// scan counter. bits 1 to 15 of the value are the counter bits of the
	// same number; bit 0 is always zero here (the pixel clock level is
	// injected by the address multiplexer)
	scan uint16

	// committed video mode as last presented by the register bank
	mode uint8

	// last observed pixel clock level
	da0 bool

	// free-running dividers. the mode muxes their outputs; it never stops
	// them
	x2, x3 *divider.Div
	y2, y3 *divider.Div
	y12    *divider.Chain

	// last levels of the selected divider outputs, before and after glitch
	// substitution
	prevXRaw, prevX bool
	prevYRaw, prevY bool

	// active glitch substitutions. a substitution lasts exactly one pulse
	// of the affected divided clock
	glitchX glitchValue
	glitchY glitchValue

	// SyncError is set when a pixel clock edge falls outside the expected
	// reference-time window. sticky until the generator restarts
	SyncError bool
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	vid := &Video{
		x2:  divider.NewDiv2(false, false),
		x3:  divider.NewDiv3(false, false),
		y2:  divider.NewDiv2(false, false),
		y3:  divider.NewDiv3(false, false),
		y12: divider.NewChain(divider.NewDiv3(false, false), divider.NewDiv4(false, false)),
	}
	vid.Reset()
	return vid
}

func (vid Video) String() string {
	return fmt.Sprintf("scan=%04x mode=%03b syncerr=%v", vid.scan, vid.mode, vid.SyncError)
}

// Reset returns the generator to its initial state.
func (vid *Video) Reset() {
	vid.scan = 0
	vid.mode = 0
	vid.x2.Reset()
	vid.x3.Reset()
	vid.y2.Reset()
	vid.y3.Reset()
	vid.y12.Reset()
	vid.prevXRaw = false
	vid.prevX = false
	vid.prevYRaw = false
	vid.prevY = false
	vid.glitchX = glitchNone
	vid.glitchY = glitchNone
	vid.SyncError = false
}

// Scan returns the current value of the scan counter (bits 1 to 15).
func (vid *Video) Scan() uint16 {
	return vid.scan
}

// DA0 returns the last observed pixel clock level.
func (vid *Video) DA0() bool {
	return vid.da0
}

// SetMode presents a new committed video mode. Transitions between specific
// adjacent-ratio pairs arm a glitch substitution on the affected divider
// input for exactly one divided-clock pulse.
func (vid *Video) SetMode(mode uint8) {
	mode &= 0x07
	if mode == vid.mode {
		return
	}
	old := vid.mode
	vid.mode = mode

	diff := old ^ mode
	switch {
	case diff == 0x02 && (old|mode) == 0x02:
		// Y ratio 12<->3 with only the middle mode bit changing
		// (000 <-> 010)
		vid.glitchY = glitchZero

	case diff == 0x04 && (old|mode) == 0x04:
		// Y ratio 12<->2 with only the top mode bit changing (000 <-> 100)
		vid.glitchY = glitchBit4

	case diff == 0x02 && old&0x05 == 0x01 && mode&0x05 == 0x01:
		// X ratio 3<->2 with only the middle mode bit changing while the
		// other two bits hold the 0x1 pattern (001 <-> 011)
		vid.glitchX = glitchZero
	}

	// the output mux has switched; settle any edge the switch created
	vid.settle(false)
}

// PixelClock presents a new level of the external pixel clock. The falling
// edge is the active edge: it advances bits 1-3 (or clears them when the
// sync input is asserted) and is validated against the expected
// reference-time window.
func (vid *Video) PixelClock(rt reftime.RefTime, level bool, hsync bool) {
	falling := vid.da0 && !level
	vid.da0 = level

	if !falling {
		return
	}

	// sync window check. an edge outside the window marks a sync error but
	// the generator carries on regardless
	if !rt.SyncWindow() {
		vid.SyncError = true
	}

	clearing := false
	if !hsync && vid.mode != DMA {
		// sync assertion clears the low bits instead of counting
		vid.scan &= ^uint16(0x000e)
		if modeTable[vid.mode].clearBit4 {
			vid.scan &= ^uint16(0x0010)
			clearing = true
		}
	} else {
		vid.scan = vid.scan&^uint16(0x000e) | (vid.scan+0x0002)&0x000e
	}

	vid.settle(clearing)
}

// VerticalPreload reloads the upper scan counter bits: bits 9-15 take the
// frame offset, bits 5-8 are zeroed.
func (vid *Video) VerticalPreload(frameOffset uint8) {
	vid.scan = vid.scan&0x001e | uint16(frameOffset&0x7f)<<9
}

// Restart unconditionally clears the sync error. Called by the chip at the
// designated reference-time step.
func (vid *Video) Restart() {
	vid.SyncError = false
}

// settle recomputes the divider chains to a fixed point after any change to
// bit 3 or to the output muxing. No observable intermediate state escapes
// this function.
//
// When clearing is true a sync assertion has just cleared bits 1-4 and the
// clear dominates: the bit 3 falling edge produced by the clear itself must
// not re-toggle bit 4. The Y chain still sees the forced bit 4 fall.
func (vid *Video) settle(clearing bool) {
	bit3 := vid.scan&0x0008 == 0x0008

	// the X dividers free-run on bit 3
	vid.x2.Step(bit3)
	vid.x3.Step(bit3)

	// select and, if a glitch is armed, substitute the X output. the
	// substitution holds until the raw divided clock completes one pulse
	rawX := vid.muxX(bit3)
	x := rawX
	if vid.glitchX != glitchNone {
		x = false
		if vid.prevXRaw && !rawX {
			vid.glitchX = glitchNone
		}
	}

	if vid.prevX && !x && !clearing {
		// bit 4 toggles on the falling edge of the X-divided clock
		vid.scan ^= 0x0010
	}
	vid.prevXRaw = rawX
	vid.prevX = x

	bit4 := vid.scan&0x0010 == 0x0010

	// the Y dividers free-run on bit 4
	vid.y2.Step(bit4)
	vid.y3.Step(bit4)
	vid.y12.Step(bit4)

	rawY := vid.muxY(bit4)
	y := rawY
	switch vid.glitchY {
	case glitchZero:
		y = false
	case glitchBit4:
		y = bit4
	}
	if vid.glitchY != glitchNone && vid.prevYRaw && !rawY {
		vid.glitchY = glitchNone
	}

	if vid.prevY && !y {
		// bits 5-15 increment on the falling edge of the Y-divided clock
		vid.scan = vid.scan&0x001e | (vid.scan+0x0020)&0xffe0
	}
	vid.prevYRaw = rawY
	vid.prevY = y
}

// muxX selects the divider output driving bit 4 for the current mode.
func (vid *Video) muxX(bit3 bool) bool {
	switch modeTable[vid.mode].x {
	case 1:
		return bit3
	case 2:
		return vid.x2.Output()
	case 3:
		return vid.x3.Output()
	}
	panic(fmt.Sprintf("impossible X ratio for mode %03b", vid.mode))
}

// muxY selects the divider output driving bits 5-15 for the current mode.
func (vid *Video) muxY(bit4 bool) bool {
	switch modeTable[vid.mode].y {
	case 1:
		return bit4
	case 2:
		return vid.y2.Output()
	case 3:
		return vid.y3.Output()
	case 12:
		return vid.y12.Output()
	}
	panic(fmt.Sprintf("impossible Y ratio for mode %03b", vid.mode))
}
