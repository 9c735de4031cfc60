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

// Package resetgen implements the reset filter and the frame-timing
// derivations built on it.
//
// The external reset pin is filtered through a two stage divide-by-2 chain
// clocked by the primary clock. While the pin is inactive both stages are
// preset high; while it is active the chain counts down and the internal
// reset condition asserts once both stages read zero, freezing the chain
// until the pin is released. A reset pulse shorter than the chain's
// settling time never reaches the internal reset condition. Eight primary
// clock cycles is the guaranteed bound.
package resetgen

import (
	"fmt"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/divider"
)

// FilterCycles is the number of primary-clock cycles an external reset must
// be held for the internal reset condition to be guaranteed asserted.
const FilterCycles = 8

// ResetGen is the reset filter and vertical preload generator.
type ResetGen struct {
	// the two filter stages. stage two advances on the rising edge of
	// stage one
	stage1 *divider.Div
	stage2 *divider.Div

	// IER is the internal reset condition
	IER bool

	// vertical preload state: the sampled inverse of the pixel clock and
	// the last level of horizontal reset
	sample bool
	prevHR bool
}

// NewResetGen is the preferred method of initialisation for the ResetGen
// type.
func NewResetGen() *ResetGen {
	gen := &ResetGen{
		stage1: divider.NewDiv2(false, true),
		stage2: divider.NewDiv2(true, true),
	}
	gen.preset()
	return gen
}

// preset both filter stages high. the second stage is told the first stage's
// level so the start of a countdown does not manufacture an edge.
func (gen *ResetGen) preset() {
	gen.stage1.Reset()
	gen.stage2.Reset()
	gen.stage2.Preset(gen.stage1.Output())
}

func (gen ResetGen) String() string {
	return fmt.Sprintf("ier=%v stages=%v%v", gen.IER, gen.stage1.Output(), gen.stage2.Output())
}

// Step advances the reset filter by one primary-clock cycle. The nreset
// argument is the level of the external reset pin (active low: true means
// inactive).
func (gen *ResetGen) Step(nreset bool) {
	if nreset {
		// the stages are held preset while the pin is inactive. release
		// therefore deasserts the internal reset immediately
		gen.preset()
		gen.IER = false
		return
	}

	if gen.IER {
		// the chain freezes once the condition asserts
		return
	}

	// one full primary-clock cycle through the chain
	gen.stage2.Step(gen.stage1.Step(true))
	gen.stage2.Step(gen.stage1.Step(false))

	gen.IER = !gen.stage1.Output() && !gen.stage2.Output()
}

// ShapingClock is the derived reset-shaping output: the inverse of the
// second filter stage.
func (gen *ResetGen) ShapingClock() bool {
	return !gen.stage2.Output()
}

// HorizontalReset is the logical OR of the internal reset condition and the
// inverted horizontal sync input.
func (gen *ResetGen) HorizontalReset(hsync bool) bool {
	return gen.IER || !hsync
}

// Observe samples the frame-timing state. Must be called whenever the
// horizontal sync or pixel clock inputs change. On each falling edge of
// horizontal reset the inverse of the pixel clock level is latched; the
// vertical preload output combines the latch with horizontal reset.
func (gen *ResetGen) Observe(hsync bool, da0 bool) {
	hr := gen.HorizontalReset(hsync)
	if gen.prevHR && !hr {
		gen.sample = !da0
	}
	gen.prevHR = hr
}

// VerticalPreload returns the current level of the vertical preload
// condition: NOR of the latched sample and horizontal reset, OR the
// internal reset. The result is a brief pulse once per frame, used to
// reload the scan counter's upper bits from the frame offset.
func (gen *ResetGen) VerticalPreload(hsync bool) bool {
	hr := gen.HorizontalReset(hsync)
	return (!gen.sample && !hr) || gen.IER
}
