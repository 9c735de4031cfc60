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

package reftime_test

import (
	"testing"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/reftime"
	"github.com/jimbro1000/Dragon32Rev3Proto/test"
)

func TestCyclicOrder(t *testing.T) {
	var rt reftime.RefTime
	rt.Reset()

	// reference time must visit all sixteen labels in fixed cyclic order
	for i := 0; i < reftime.NumStates; i++ {
		test.ExpectEquality(t, int(rt), i)
		rt.Tick()
	}

	// TF wraps to T0
	test.ExpectEquality(t, rt, reftime.T0)
}

func TestStrobeTables(t *testing.T) {
	// expected levels for each of the sixteen steps, per the package table.
	// true means asserted for the strobes (pin low for nRAS/nCAS) and pin
	// high for the mux row select
	rowSelect := [16]bool{
		true, true, false, false, false, false, true, true,
		false, false, false, false, false, false, false, false,
	}
	rowStrobe := [16]bool{
		false, false, true, true, true, true, true, true,
		true, true, true, true, true, true, false, false,
	}
	colStrobe := [16]bool{
		false, false, false, false, true, true, false, false,
		false, false, true, true, false, false, false, false,
	}

	var rt reftime.RefTime
	rt.Reset()
	for i := 0; i < reftime.NumStates; i++ {
		test.ExpectEquality(t, rt.RowSelect(), rowSelect[i])
		test.ExpectEquality(t, rt.RowStrobe(), rowStrobe[i])
		test.ExpectEquality(t, rt.ColumnStrobe(), colStrobe[i])
		rt.Tick()
	}
}

func TestMPUEnable(t *testing.T) {
	slowE := [16]bool{
		false, false, false, false, false, false, false, false,
		true, true, true, true, true, true, true, true,
	}
	fastE := [16]bool{
		false, false, false, false, true, true, true, true,
		false, false, false, false, true, true, true, true,
	}
	slowQ := [16]bool{
		false, false, false, false, true, true, true, true,
		true, true, true, true, false, false, false, false,
	}
	fastQ := [16]bool{
		false, false, true, true, true, true, false, false,
		false, false, true, true, true, true, false, false,
	}

	var rt reftime.RefTime
	rt.Reset()
	for i := 0; i < reftime.NumStates; i++ {
		test.ExpectEquality(t, rt.MPUEnable(false), slowE[i])
		test.ExpectEquality(t, rt.MPUEnable(true), fastE[i])
		test.ExpectEquality(t, rt.QuadratureStrobe(false), slowQ[i])
		test.ExpectEquality(t, rt.QuadratureStrobe(true), fastQ[i])
		rt.Tick()
	}
}

func TestSlowCycleEdgeCount(t *testing.T) {
	// a full slow cycle produces exactly one rising and one falling edge of
	// the E strobe
	var rt reftime.RefTime
	rt.Reset()

	rising := 0
	falling := 0
	prev := rt.MPUEnable(false)
	for i := 0; i < reftime.NumStates; i++ {
		rt.Tick()
		e := rt.MPUEnable(false)
		if e && !prev {
			rising++
		}
		if !e && prev {
			falling++
		}
		prev = e
	}

	test.ExpectEquality(t, rising, 1)
	test.ExpectEquality(t, falling, 1)
}

func TestDecisionPoints(t *testing.T) {
	var rt reftime.RefTime
	rt.Reset()

	decisions := 0
	for i := 0; i < reftime.NumStates; i++ {
		if rt.RateDecision() {
			decisions++
		}
		rt.Tick()
	}

	// fast/slow is only ever decided twice per cycle
	test.ExpectEquality(t, decisions, 2)

	test.ExpectSuccess(t, reftime.T1.RateDecision())
	test.ExpectSuccess(t, reftime.T9.RateDecision())
	test.ExpectSuccess(t, reftime.TF.SourceDecision())
	test.ExpectSuccess(t, reftime.T6.MPUHandover())
}

func TestSyncWindow(t *testing.T) {
	// the restart step must be outside the expected edge window
	test.ExpectFailure(t, reftime.TC.SyncWindow())
	test.ExpectSuccess(t, reftime.TC.SyncRestart())

	for rt := reftime.T0; rt <= reftime.T3; rt++ {
		test.ExpectSuccess(t, rt.SyncWindow())
	}
	for rt := reftime.T4; rt <= reftime.TF; rt++ {
		test.ExpectFailure(t, rt.SyncWindow())
	}
}
