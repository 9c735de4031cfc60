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

// Package reftime implements the sixteen reference-time states of the bus
// cycle. Every strobe the address multiplexer emits is keyed to the current
// reference time, so the per-step tables in this package are the single
// source of truth for the shape of a bus cycle:
//
//	          T0 T1 T2 T3 T4 T5 T6 T7 T8 T9 TA TB TC TD TE TF
//	mux       R  R  C  C  C  C  R  R  C  C  C  C  C  C  C  C
//	nRAS      -  -  _  _  _  _  _  _  _  _  _  _  _  _  -  -
//	nCAS      -  -  -  -  _  _  -  -  -  -  _  _  -  -  -  -
//	E (slow)  _  _  _  _  _  _  _  _  -  -  -  -  -  -  -  -
//	Q (slow)  _  _  _  _  -  -  -  -  -  -  -  -  _  _  _  _
//	E (fast)  _  _  _  _  -  -  -  -  _  _  _  _  -  -  -  -
//	Q (fast)  _  _  -  -  -  -  _  _  _  _  -  -  -  -  _  _
//
// The video/refresh address window opens at T0 and the multiplexer is handed
// back to the MPU at T6, guaranteeing the CPU an address window every cycle
// whatever the rate.
package reftime

import "fmt"

// RefTime is one of the sixteen ordered phases of a bus cycle. It advances
// cyclically, one step per falling edge of the primary clock.
type RefTime int

// The sixteen reference-time labels. TF wraps back to T0.
const (
	T0 RefTime = iota
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	T8
	T9
	TA
	TB
	TC
	TD
	TE
	TF
)

// NumStates is the number of reference-time states in one bus cycle.
const NumStates = 16

func (rt RefTime) String() string {
	return fmt.Sprintf("T%X", int(rt))
}

// Reset puts the reference time into the known initial state.
func (rt *RefTime) Reset() {
	*rt = T0
}

// Tick moves the reference time to the next state, wrapping at TF.
func (rt *RefTime) Tick() {
	*rt = (*rt + 1) & 0x0f
}

// RowSelect returns true when the multiplexer should present the row half of
// the address. The complement of these steps present the column half. The
// selection is independent of address source and of the fast/slow state.
func (rt RefTime) RowSelect() bool {
	return rt == T0 || rt == T1 || rt == T6 || rt == T7
}

// RowStrobe returns true when the row strobe (nRAS) is asserted. nRAS is
// active low so "asserted" means the pin reads low. The strobe is a static
// function of reference time alone.
func (rt RefTime) RowStrobe() bool {
	return rt >= T2 && rt <= TD
}

// ColumnStrobe returns true when the column strobe (nCAS) is asserted
// (pin low). One assertion for the video/refresh window, one for the MPU
// window.
func (rt RefTime) ColumnStrobe() bool {
	return rt == T4 || rt == T5 || rt == TA || rt == TB
}

// MPUEnable returns the level of the E strobe for this step. A fast cycle
// compresses the strobe to half period; the sixteen step sequence itself
// still elapses in full.
func (rt RefTime) MPUEnable(fast bool) bool {
	if fast {
		return (rt >= T4 && rt <= T7) || rt >= TC
	}
	return rt >= T8
}

// QuadratureStrobe returns the level of the Q strobe for this step. Q leads
// E by a quarter cycle at either rate.
func (rt RefTime) QuadratureStrobe(fast bool) bool {
	if fast {
		return (rt >= T2 && rt <= T5) || (rt >= TA && rt <= TD)
	}
	return rt >= T4 && rt <= TB
}

// RateDecision returns true at the two steps where the sequencer is allowed
// to enter or leave the fast cycle state. Rate changes at any other step are
// not honoured until the next decision point.
func (rt RefTime) RateDecision() bool {
	return rt == T1 || rt == T9
}

// SourceDecision returns true at the step where the sequencer chooses
// between the refresh and video address sources for the coming cycle.
func (rt RefTime) SourceDecision() bool {
	return rt == TF
}

// MPUHandover returns true at the step where the address source is forced
// back to the MPU.
func (rt RefTime) MPUHandover() bool {
	return rt == T6
}

// RefreshRow returns true at the step where a refresh row is counted when
// the refresh source holds the address bus.
func (rt RefTime) RefreshRow() bool {
	return rt == T5
}

// SyncWindow returns true during the steps in which an active edge of the
// external pixel clock is expected to fall.
func (rt RefTime) SyncWindow() bool {
	return rt <= T3
}

// SyncRestart returns true at the step that unconditionally clears a sync
// error and restarts the scan-address generator. Distinct from the sync
// window.
func (rt RefTime) SyncRestart() bool {
	return rt == TC
}
