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

// Package divider implements the divide-by-2/3/4 counter primitives used by
// the scan-address generator and the reset filter. A divider observes an
// input signal level, advances on one polarity of input edge and exposes a
// divided output level. Dividers know nothing about the rest of the chip.
package divider

import "fmt"

// Div is a single divide-by-N stage. The zero value is not usable; use one
// of the New functions.
type Div struct {
	ratio int

	// advance on rising edges of the input rather than falling edges
	rising bool

	// level the output takes on Reset()
	resetLevel bool

	prev  bool
	count int
	out   bool
}

func newDiv(ratio int, rising bool, resetLevel bool) *Div {
	div := &Div{
		ratio:      ratio,
		rising:     rising,
		resetLevel: resetLevel,
	}
	div.Reset()
	return div
}

// NewDiv2 is the preferred method of initialisation for a divide-by-2 stage.
func NewDiv2(rising bool, resetLevel bool) *Div {
	return newDiv(2, rising, resetLevel)
}

// NewDiv3 is the preferred method of initialisation for a divide-by-3 stage.
func NewDiv3(rising bool, resetLevel bool) *Div {
	return newDiv(3, rising, resetLevel)
}

// NewDiv4 is the preferred method of initialisation for a divide-by-4 stage.
func NewDiv4(rising bool, resetLevel bool) *Div {
	return newDiv(4, rising, resetLevel)
}

func (div *Div) String() string {
	return fmt.Sprintf("div%d: count=%d out=%v", div.ratio, div.count, div.out)
}

// Reset the divider synchronously. The count is zeroed and the output
// returns to its configured reset level. The remembered input level is not
// affected so a reset does not manufacture an input edge.
func (div *Div) Reset() {
	div.count = 0
	div.out = div.resetLevel
}

// Step presents a new input level to the divider. The divider advances only
// when the level change matches the configured edge polarity. Returns the
// output level after the step.
func (div *Div) Step(in bool) bool {
	edge := false
	if div.rising {
		edge = !div.prev && in
	} else {
		edge = div.prev && !in
	}
	div.prev = in

	if !edge {
		return div.out
	}

	switch div.ratio {
	case 2:
		div.out = !div.out
	case 3:
		// one third duty. the output falls on the first counted edge and
		// rises on the third
		div.count = (div.count + 1) % 3
		div.out = div.count == 0
	case 4:
		// square wave over four input edges
		div.count = (div.count + 1) % 4
		div.out = div.count < 2
	default:
		panic(fmt.Sprintf("unsupported divider ratio (%d)", div.ratio))
	}

	return div.out
}

// Preset the remembered input level without treating the change as an edge.
// Used when a divider is wired to a source whose idle level is known, so
// that leaving the idle state does not manufacture a spurious edge.
func (div *Div) Preset(in bool) {
	div.prev = in
}

// Output returns the current output level without stepping the divider.
func (div *Div) Output() bool {
	return div.out
}

// Chain is a series of dividers, the output of each feeding the input of the
// next. Used for ratios that are not primitive, such as the divide-by-12
// path of the scan-address generator (divide-by-3 into divide-by-4).
type Chain struct {
	stages []*Div
}

// NewChain is the preferred method of initialisation for the Chain type.
func NewChain(stages ...*Div) *Chain {
	return &Chain{stages: stages}
}

// Reset all stages in the chain.
func (chn *Chain) Reset() {
	for _, div := range chn.stages {
		div.Reset()
	}
}

// Step presents a new input level to the first stage, propagating through
// every stage in the same simulated instant. Returns the final output level.
func (chn *Chain) Step(in bool) bool {
	for _, div := range chn.stages {
		in = div.Step(in)
	}
	return in
}

// Output returns the current output level of the final stage.
func (chn *Chain) Output() bool {
	return chn.stages[len(chn.stages)-1].Output()
}
