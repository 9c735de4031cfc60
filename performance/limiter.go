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
	"time"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware"
)

// Limiter paces a run loop to hardware speed. Wait is intended to be called
// from a Board.Run continue check, once per check interval.
type Limiter struct {
	tick time.Duration
	next time.Time
}

// NewLimiter is the preferred method of initialisation for the Limiter
// type.
func NewLimiter() *Limiter {
	tick := float64(hardware.CheckInterval) / float64(hardware.ClockFreq) * float64(time.Second)
	return &Limiter{
		tick: time.Duration(tick),
		next: time.Now(),
	}
}

// Wait blocks until the wall clock catches up with the simulated clock. If
// the simulation is running behind, the deadline resynchronises rather than
// accumulating debt.
func (lim *Limiter) Wait() {
	lim.next = lim.next.Add(lim.tick)
	d := time.Until(lim.next)
	if d > 0 {
		time.Sleep(d)
	} else if d < -time.Second {
		lim.next = time.Now()
	}
}
