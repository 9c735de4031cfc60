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

package busmux_test

import (
	"testing"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/busmux"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/reftime"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/registers"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam/sequencer"
	"github.com/jimbro1000/Dragon32Rev3Proto/test"
)

func TestMapType(t *testing.T) {
	// map type 1: the whole lower space is RAM
	code, isRAM := busmux.MapAddress(0x8000, false, true)
	test.ExpectEquality(t, code, busmux.CodeRAM)
	test.ExpectSuccess(t, isRAM)

	// map type 0: the same address is the first ROM region
	code, isRAM = busmux.MapAddress(0x8000, false, false)
	test.ExpectEquality(t, code, busmux.CodeROM0)
	test.ExpectFailure(t, isRAM)
}

func TestROMWriteRedirect(t *testing.T) {
	// a write to a ROM-mapped region in map type 0 redirects to RAM
	for _, addr := range []uint16{0x8000, 0xa000, 0xc000, 0xfeff} {
		code, isRAM := busmux.MapAddress(addr, true, false)
		test.ExpectEquality(t, code, busmux.CodeRAM)
		test.ExpectSuccess(t, isRAM)
	}
}

func TestWindowTable(t *testing.T) {
	table := []struct {
		address uint16
		code    busmux.Code
	}{
		{0x0000, busmux.CodeRAM},
		{0x7fff, busmux.CodeRAM},
		{0x8000, busmux.CodeROM0},
		{0x9fff, busmux.CodeROM0},
		{0xa000, busmux.CodeROM1},
		{0xbfff, busmux.CodeROM1},
		{0xc000, busmux.CodeROM2},
		{0xfeff, busmux.CodeROM2},
		{0xff00, busmux.CodeIO0},
		{0xff1f, busmux.CodeIO0},
		{0xff20, busmux.CodeIO1},
		{0xff3f, busmux.CodeIO1},
		{0xff40, busmux.CodeIO2},
		{0xff5f, busmux.CodeIO2},
		{0xff60, busmux.CodeExt},
		{0xffdf, busmux.CodeExt},
		{0xffe0, busmux.CodeROM1},
		{0xffff, busmux.CodeROM1},
	}

	for _, e := range table {
		code, _ := busmux.MapAddress(e.address, false, false)
		test.ExpectEquality(t, code, e.code)
	}
}

func TestFastEligible(t *testing.T) {
	// general RAM is never fast-eligible, nor is the first I/O window
	test.ExpectFailure(t, busmux.FastEligible(0x0400, false, false))
	test.ExpectFailure(t, busmux.FastEligible(0xff00, false, false))

	// ROM and the other I/O windows are
	test.ExpectSuccess(t, busmux.FastEligible(0x8000, false, false))
	test.ExpectSuccess(t, busmux.FastEligible(0xff20, false, false))
	test.ExpectSuccess(t, busmux.FastEligible(0xffe0, false, false))
}

func TestMPUAddressing(t *testing.T) {
	reg := registers.NewRegisters()
	reg.Bank[0] = 0x02 // bank bits: bit1=1 bit0=0

	// lower-half address uses bankSelect[0]. the row half is bank bit 0
	// concatenated with the low 8 address bits
	row, addr := busmux.Address(reftime.T0, sequencer.MPU, 0x4055, 0, false, 0, reg)
	test.ExpectSuccess(t, row)
	test.ExpectEquality(t, addr, 0x0055)

	// the column half carries bank bit 1 in the top position
	row, addr = busmux.Address(reftime.T2, sequencer.MPU, 0x4055, 0, false, 0, reg)
	test.ExpectFailure(t, row)
	// bank bit1=1, page=0 (map type 0), A14..A8 = 1000000
	test.ExpectEquality(t, addr, 0x0140)

	// upper-half address uses bankSelect[1], here zero
	_, addr = busmux.Address(reftime.T0, sequencer.MPU, 0x80aa, 0, false, 0, reg)
	test.ExpectEquality(t, addr, 0x00aa)
}

func TestPageBit(t *testing.T) {
	reg := registers.NewRegisters()
	reg.Page = true

	// map type 0: the page bit substitutes for A15 in the column half
	_, addr := busmux.Address(reftime.T2, sequencer.MPU, 0x0000, 0, false, 0, reg)
	test.ExpectEquality(t, addr, 0x0080)

	// map type 1: A15 is used directly and the page bit is ignored
	reg.MapType = true
	_, addr = busmux.Address(reftime.T2, sequencer.MPU, 0x0000, 0, false, 0, reg)
	test.ExpectEquality(t, addr, 0x0000)
	_, addr = busmux.Address(reftime.T2, sequencer.MPU, 0x8000, 0, false, 0, reg)
	test.ExpectEquality(t, addr, 0x0080)
}

func TestVideoAddressing(t *testing.T) {
	reg := registers.NewRegisters()
	reg.Bank[0] = 0x03

	// the low bit of the video address is the injected pixel clock level,
	// not the counter's own bit 0
	scan := uint16(0x5a5a) // bits 1..15
	row, addr := busmux.Address(reftime.T0, sequencer.Video, 0, scan, true, 0, reg)
	test.ExpectSuccess(t, row)
	test.ExpectEquality(t, addr, 0x015b)

	// column half: bank bit 1 and scan bits 15..8
	_, addr = busmux.Address(reftime.T2, sequencer.Video, 0, scan, true, 0, reg)
	test.ExpectEquality(t, addr, 0x015a)

	// fixed0 video bank forces the high bank bit to zero
	reg.VideoBank = registers.Fixed0
	_, addr = busmux.Address(reftime.T2, sequencer.Video, 0, scan, true, 0, reg)
	test.ExpectEquality(t, addr, 0x005a)
}

func TestRefreshAddressing(t *testing.T) {
	reg := registers.NewRegisters()
	reg.Bank[0] = 0x03
	reg.Bank[1] = 0x03

	// both halves carry the refresh row and the high bank bit is forced to
	// zero whatever the bank registers hold
	row, addr := busmux.Address(reftime.T0, sequencer.Refresh, 0xffff, 0xffff, true, 0xc3, reg)
	test.ExpectSuccess(t, row)
	test.ExpectEquality(t, addr, 0x00c3)

	row, addr = busmux.Address(reftime.T2, sequencer.Refresh, 0xffff, 0xffff, true, 0xc3, reg)
	test.ExpectFailure(t, row)
	test.ExpectEquality(t, addr, 0x00c3)
}

func TestRowSelectIndependentOfSource(t *testing.T) {
	reg := registers.NewRegisters()

	// row/column selection is a function of reference time alone
	for _, src := range []sequencer.Source{sequencer.MPU, sequencer.Video, sequencer.Refresh} {
		var rt reftime.RefTime
		rt.Reset()
		for i := 0; i < reftime.NumStates; i++ {
			row, _ := busmux.Address(rt, src, 0, 0, false, 0, reg)
			test.ExpectEquality(t, row, rt.RowSelect())
			rt.Tick()
		}
	}
}
