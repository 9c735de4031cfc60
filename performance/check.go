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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jimbro1000/Dragon32Rev3Proto/curated"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware"
)

// Check measures the simulation speed of a free-running board over the
// supplied duration, creating the profiles requested by the profile
// argument.
func Check(output io.Writer, profile Profile, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	brd := hardware.NewBoard(nil, nil)
	brd.PowerOnReset()

	var startSteps uint64

	runner := func() error {
		// a short leadtime before measurement starts, so that allocation
		// and scheduling settle
		lead := time.Now().Add(time.Second)
		end := lead.Add(dur)

		started := false
		return brd.Run(func() (bool, error) {
			now := time.Now()
			if !started && now.After(lead) {
				startSteps = brd.Steps()
				started = true
			}
			return now.Before(end), nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	steps := brd.Steps() - startSteps
	mhz, ratio := CalcSpeed(steps, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f MHz (%d steps in %.2f seconds) %.1f%% of hardware speed\n",
		mhz, steps, dur.Seconds(), ratio)))

	return nil
}

// CalcSpeed takes a step count and a duration in seconds and returns the
// achieved clock rate in MHz and the percentage of the real part's crystal
// that represents.
func CalcSpeed(steps uint64, duration float64) (mhz float64, ratio float64) {
	hz := float64(steps) / duration
	return hz / 1e6, 100 * hz / float64(hardware.ClockFreq)
}
