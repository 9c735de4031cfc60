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

// Package sequencer implements the bus-timing state machine. The sequencer
// advances the reference time once per falling edge of the primary clock
// and decides, at the fixed decision points only, whether the cycle runs
// fast or slow and which source holds the address bus.
//
// There is no error recovery in the sequencer. A stuck primary clock is a
// fatal external condition and internal reset is the only override.
package sequencer

import (
	"fmt"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/reftime"
)

// Source identifies which of the three address sources drives the row and
// column bus.
type Source int

// The three address sources.
const (
	MPU Source = iota
	Video
	Refresh
)

func (src Source) String() string {
	switch src {
	case MPU:
		return "mpu"
	case Video:
		return "video"
	case Refresh:
		return "refresh"
	}
	panic("unknown address source")
}

// The MPU rate classes held in the two rate bits.
const (
	// RateSlow cycles are always the full sixteen steps
	RateSlow = 0x00

	// RateAddress cycles are fast only when the address is neither general
	// RAM nor the first I/O window
	RateAddress = 0x01

	// RateFastVideo is documented as fast-with-video but that path is
	// untried in the original part. it behaves as RateFast
	RateFastVideo = 0x02

	// RateFast cycles are always fast
	RateFast = 0x03
)

// the refresh burst ends when this bit of the refresh counter falls. the
// counter only advances during a burst so it always leaves a burst at a
// multiple of 8, making every burst exactly 8 rows
const refreshBurstBit = uint8(0x04)

// Sequencer is the bus-timing state machine.
type Sequencer struct {
	RefTime reftime.RefTime

	// fast cycle state. changes only at the reference-time decision points
	Fast bool

	// the source currently holding the address bus
	Src Source

	// RefreshCounter is the row counter for DRAM refresh. one increment per
	// completed refresh row
	RefreshCounter uint8

	refreshPending bool
}

// NewSequencer is the preferred method of initialisation for the Sequencer
// type.
func NewSequencer() *Sequencer {
	seq := &Sequencer{}
	seq.Reset()
	return seq
}

func (seq Sequencer) String() string {
	return fmt.Sprintf("%s src=%s fast=%v refresh=%02x pending=%v",
		seq.RefTime, seq.Src, seq.Fast, seq.RefreshCounter, seq.refreshPending)
}

// Reset returns the sequencer to its initial state. The refresh counter is
// realigned to a multiple of 8 rather than zeroed; its absolute value
// carries no meaning, but a burst interrupted by reset must not shorten the
// burst that follows.
func (seq *Sequencer) Reset() {
	seq.RefTime.Reset()
	seq.Fast = false
	seq.Src = MPU
	seq.RefreshCounter &^= 0x07
	seq.refreshPending = false
}

// Step advances the sequencer by one falling edge of the primary clock.
//
// The rate argument is the current value of the rate register. fastEligible
// reflects the address-dependent rate class for the address currently on
// the CPU bus. hsync is the level of the horizontal-sync-like input (active
// low). ier is the internal reset condition.
func (seq *Sequencer) Step(rate uint8, fastEligible bool, hsync bool, ier bool) {
	seq.RefTime.Tick()

	// a refresh burst is requested for as long as the sync input is held
	// low. the request outlives the input: it clears only when a burst
	// completes
	if !hsync {
		seq.refreshPending = true
	}

	switch {
	case seq.RefTime.RateDecision():
		seq.Fast = decideFast(rate, fastEligible)

	case seq.RefTime.RefreshRow() && seq.Src == Refresh:
		before := seq.RefreshCounter & refreshBurstBit
		seq.RefreshCounter++
		if before != 0 && seq.RefreshCounter&refreshBurstBit == 0 {
			// burst bit fell: a full 8 rows have been refreshed. the
			// request re-arms immediately if the sync input is still low
			seq.refreshPending = !hsync
		}

	case seq.RefTime.MPUHandover():
		// every cycle gives the CPU an address window regardless of rate
		seq.Src = MPU

	case seq.RefTime.SourceDecision():
		if seq.refreshPending && !ier {
			seq.Src = Refresh
		} else {
			seq.Src = Video
		}
	}
}

// MPUEnable returns the current level of the E strobe.
func (seq *Sequencer) MPUEnable() bool {
	return seq.RefTime.MPUEnable(seq.Fast)
}

// QuadratureStrobe returns the current level of the Q strobe.
func (seq *Sequencer) QuadratureStrobe() bool {
	return seq.RefTime.QuadratureStrobe(seq.Fast)
}

// decideFast resolves the rate class at a decision point.
func decideFast(rate uint8, fastEligible bool) bool {
	switch rate & 0x03 {
	case RateSlow:
		return false
	case RateAddress:
		return fastEligible
	case RateFastVideo, RateFast:
		return true
	}
	panic(fmt.Sprintf("impossible rate value (%02b)", rate))
}
