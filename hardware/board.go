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
	"fmt"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/resetgen"
)

// ClockFreq is the frequency of the primary clock in Hz. The chip advances
// one reference-time step per falling edge, so this is also the number of
// Step calls per simulated second.
const ClockFreq = 14318180

// CheckInterval is the number of steps between calls to the continue check
// in the Run loop. Checking a channel or the clock every step is measurably
// expensive.
const CheckInterval = 4096

// BusDriver is the CPU side of the board. NextCycle is called at the
// falling edge of E with the settled pin levels of the completed cycle, and
// returns the address and direction for the next one. rnw is true for a
// read.
type BusDriver interface {
	NextCycle(pins sam.Pins) (addr uint16, rnw bool)
}

// SyncDriver is the video generator side of the board. Levels returns the
// pixel clock and horizontal sync levels for the given step number.
type SyncDriver interface {
	Levels(step uint64) (da0 bool, hsync bool)
}

// Board is the address multiplexer wired to its two collaborators.
type Board struct {
	SAM  *sam.SAM
	Bus  BusDriver
	Sync SyncDriver

	// input levels as last presented to the chip
	da0 bool
	hs  bool

	// count of primary clock falling edges since power on
	steps uint64
}

// NewBoard is the preferred method of initialisation for the Board type.
// A nil driver is replaced with the corresponding stub.
func NewBoard(bus BusDriver, sync SyncDriver) *Board {
	if bus == nil {
		bus = NewStubCPU(nil)
	}
	if sync == nil {
		sync = NewStubVDG()
	}
	return &Board{
		SAM:  sam.NewSAM(),
		Bus:  bus,
		Sync: sync,
		hs:   true,
	}
}

func (brd *Board) String() string {
	return fmt.Sprintf("step=%d %s", brd.steps, brd.SAM)
}

// Steps returns the number of primary clock falling edges since power on.
func (brd *Board) Steps() uint64 {
	return brd.steps
}

// Step advances the board by one falling edge of the primary clock,
// presenting any video-side level changes first and handing the bus back to
// the CPU at the end of each E cycle.
func (brd *Board) Step() {
	da0, hs := brd.Sync.Levels(brd.steps)
	if hs != brd.hs {
		brd.hs = hs
		brd.SAM.SetHS(hs)
	}
	if da0 != brd.da0 {
		brd.da0 = da0
		brd.SAM.SetDA0(da0)
	}

	prevE := brd.SAM.Pins.E
	brd.SAM.Step()
	brd.steps++

	if prevE && !brd.SAM.Pins.E {
		addr, rnw := brd.Bus.NextCycle(brd.SAM.Pins)
		brd.SAM.SetAddressBus(addr, rnw)
	}
}

// PowerOnReset holds the external reset pin active for long enough to pass
// the reset filter, then releases it.
func (brd *Board) PowerOnReset() {
	brd.SAM.SetNReset(false)
	for i := 0; i < resetgen.FilterCycles; i++ {
		brd.Step()
	}
	brd.SAM.SetNReset(true)
	brd.Step()
}

// Run the board until the continue check returns false or an error. The
// check is called every CheckInterval steps. A nil check runs forever.
func (brd *Board) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		for i := 0; i < CheckInterval; i++ {
			brd.Step()
		}

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}
