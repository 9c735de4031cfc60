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

package performance_test

import (
	"testing"

	"github.com/jimbro1000/Dragon32Rev3Proto/curated"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware"
	"github.com/jimbro1000/Dragon32Rev3Proto/performance"
	"github.com/jimbro1000/Dragon32Rev3Proto/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfile("cpu,mem")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	_, err = performance.ParseProfile("cpu,bogus")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, "profile: unrecognised option (%s)"))
}

func TestCalcSpeed(t *testing.T) {
	// a full hardware-speed second
	mhz, ratio := performance.CalcSpeed(hardware.ClockFreq, 1.0)
	test.ExpectEquality(t, mhz, float64(hardware.ClockFreq)/1e6)
	test.ExpectEquality(t, ratio, 100.0)

	// half speed
	_, ratio = performance.CalcSpeed(hardware.ClockFreq/2, 1.0)
	test.ExpectEquality(t, ratio, 50.0)
}
