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

package sequencer_test

import (
	"testing"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/reftime"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/sequencer"
	"github.com/jimbro1000/Dragon32Rev3Proto/test"
)

func TestSlowCycle(t *testing.T) {
	seq := sequencer.NewSequencer()

	// one full slow cycle visits all sixteen steps and produces exactly one
	// rising and one falling E edge
	rising := 0
	falling := 0
	visited := 0
	prev := seq.MPUEnable()
	for i := 0; i < reftime.NumStates; i++ {
		seq.Step(sequencer.RateSlow, false, true, false)
		visited++
		e := seq.MPUEnable()
		if e && !prev {
			rising++
		}
		if !e && prev {
			falling++
		}
		prev = e
	}

	test.ExpectEquality(t, visited, reftime.NumStates)
	test.ExpectEquality(t, seq.RefTime, reftime.T0)
	test.ExpectEquality(t, rising, 1)
	test.ExpectEquality(t, falling, 1)
}

func TestFastCycle(t *testing.T) {
	seq := sequencer.NewSequencer()

	rising := 0
	prev := seq.MPUEnable()
	for i := 0; i < reftime.NumStates; i++ {
		seq.Step(sequencer.RateFast, false, true, false)
		if e := seq.MPUEnable(); e && !prev {
			rising++
		}
		prev = seq.MPUEnable()
	}

	// the fast cycle doubles the number of E strobes. the state count does
	// not compress, only the outputs
	test.ExpectEquality(t, rising, 2)
	test.ExpectEquality(t, seq.RefTime, reftime.T0)
}

func TestRateDecisionPoints(t *testing.T) {
	seq := sequencer.NewSequencer()

	// advance to T2, just past the first decision point
	seq.Step(sequencer.RateSlow, false, true, false)
	seq.Step(sequencer.RateSlow, false, true, false)
	test.ExpectEquality(t, seq.RefTime, reftime.T2)
	test.ExpectFailure(t, seq.Fast)

	// a rate change mid-cycle is not honoured until the next decision point
	// at T9
	for seq.RefTime != reftime.T9 {
		seq.Step(sequencer.RateFast, false, true, false)
		if seq.RefTime != reftime.T9 {
			test.ExpectFailure(t, seq.Fast)
		}
	}
	test.ExpectSuccess(t, seq.Fast)
}

func TestAddressDependentRate(t *testing.T) {
	seq := sequencer.NewSequencer()

	// eligible address at the decision point: fast
	seq.Step(sequencer.RateAddress, true, true, false)
	test.ExpectSuccess(t, seq.Fast)

	// run to the next decision point with an ineligible address: slow
	for seq.RefTime != reftime.T9 {
		seq.Step(sequencer.RateAddress, false, true, false)
	}
	test.ExpectFailure(t, seq.Fast)
}

// count refresh rows over a number of full cycles, asserting hsync low for
// the given number of cycles at the start.
func countRefreshRows(seq *sequencer.Sequencer, hsyncCycles int, totalCycles int) int {
	start := seq.RefreshCounter
	for c := 0; c < totalCycles; c++ {
		hsync := c >= hsyncCycles
		for i := 0; i < reftime.NumStates; i++ {
			seq.Step(sequencer.RateSlow, false, hsync, false)
		}
	}
	return int(seq.RefreshCounter - start)
}

func TestRefreshBurst(t *testing.T) {
	seq := sequencer.NewSequencer()

	// a single cycle of hsync requests exactly one burst of 8 rows
	test.ExpectEquality(t, countRefreshRows(seq, 1, 20), 8)

	// video reclaimed the bus once the burst completed. the source at the
	// top of the following cycle is video, not refresh
	test.ExpectEquality(t, seq.RefTime, reftime.T0)
	test.ExpectEquality(t, seq.Src, sequencer.Video)
}

func TestRefreshBurstMultiple(t *testing.T) {
	seq := sequencer.NewSequencer()

	// holding hsync low across burst completion re-arms the request: the
	// total is a multiple of 8, never a partial burst
	rows := countRefreshRows(seq, 10, 30)
	test.ExpectEquality(t, rows%8, 0)
	test.ExpectInequality(t, rows, 0)
}

func TestRefreshRealignedByReset(t *testing.T) {
	seq := sequencer.NewSequencer()

	// start a burst and interrupt it three rows in
	start := seq.RefreshCounter
	for int(seq.RefreshCounter-start) < 3 {
		for i := 0; i < reftime.NumStates; i++ {
			seq.Step(sequencer.RateSlow, false, false, false)
		}
	}
	seq.Reset()

	// the counter leaves reset at a multiple of 8 so the next burst is a
	// full one, not the remainder of the interrupted one
	test.ExpectEquality(t, seq.RefreshCounter&0x07, uint8(0))
	test.ExpectEquality(t, countRefreshRows(seq, 1, 20), 8)
}

func TestRefreshInhibitedByReset(t *testing.T) {
	seq := sequencer.NewSequencer()

	// with internal reset asserted the source decision never selects
	// refresh
	for c := 0; c < 4; c++ {
		for i := 0; i < reftime.NumStates; i++ {
			seq.Step(sequencer.RateSlow, false, false, true)
			test.ExpectInequality(t, seq.Src, sequencer.Refresh)
		}
	}
}

func TestMPUHandover(t *testing.T) {
	seq := sequencer.NewSequencer()

	// whatever the source at the start of the cycle, the MPU always owns
	// the bus from the handover step onwards
	for c := 0; c < 3; c++ {
		hsync := c != 0
		for i := 0; i < reftime.NumStates; i++ {
			seq.Step(sequencer.RateSlow, false, hsync, false)
			if seq.RefTime >= reftime.T6 && seq.RefTime != reftime.TF {
				test.ExpectEquality(t, seq.Src, sequencer.MPU)
			}
		}
	}
}
