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

package probe

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jimbro1000/Dragon32Rev3Proto/curated"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware"
	"github.com/jimbro1000/Dragon32Rev3Proto/performance"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// ansi pen sequences for the pin display.
const (
	penNormal = "\033[0m"
	penHigh   = "\033[32m"
	penLow    = "\033[31m"
	penDim    = "\033[2m"
)

// Probe is an interactive, single-key front end to a Board.
type Probe struct {
	brd    *hardware.Board
	input  *os.File
	output *os.File

	// terminal attributes for the two modes we switch between
	cookedAttr unix.Termios
	cbreakAttr unix.Termios
}

// NewProbe is the preferred method of initialisation for the Probe type.
func NewProbe(brd *hardware.Board) (*Probe, error) {
	prb := &Probe{
		brd:    brd,
		input:  os.Stdin,
		output: os.Stdout,
	}

	if err := termios.Tcgetattr(prb.input.Fd(), &prb.cookedAttr); err != nil {
		return nil, curated.Errorf("probe: %v", err)
	}
	prb.cbreakAttr = prb.cookedAttr
	termios.Cfmakecbreak(&prb.cbreakAttr)

	return prb, nil
}

// Run the probe until the quit key or read error. The terminal is restored
// on return.
func (prb *Probe) Run() error {
	if err := termios.Tcsetattr(prb.input.Fd(), termios.TCIFLUSH, &prb.cbreakAttr); err != nil {
		return curated.Errorf("probe: %v", err)
	}
	defer termios.Tcsetattr(prb.input.Fd(), termios.TCIFLUSH, &prb.cookedAttr)

	prb.print("space=step c=cycle l=line r=run s=state q=quit\n")

	b := make([]byte, 1)
	for {
		prb.printStatus()

		if _, err := prb.input.Read(b); err != nil {
			return curated.Errorf("probe: %v", err)
		}

		switch b[0] {
		case ' ':
			prb.brd.Step()

		case 'c', '\r', '\n':
			prb.steps(16)

		case 'l':
			prb.steps(14 * 16)

		case 'r':
			if err := prb.run(); err != nil {
				return err
			}

		case 's':
			if err := prb.dumpState(); err != nil {
				return err
			}

		case 'q', 0x03:
			prb.print("\n")
			return nil
		}
	}
}

func (prb *Probe) steps(n int) {
	for i := 0; i < n; i++ {
		prb.brd.Step()
	}
}

// run at hardware speed until the next keypress.
func (prb *Probe) run() error {
	prb.print("\nrunning...\n")

	stop := make(chan struct{})
	go func() {
		b := make([]byte, 1)
		prb.input.Read(b)
		close(stop)
	}()

	lim := performance.NewLimiter()
	return prb.brd.Run(func() (bool, error) {
		lim.Wait()
		select {
		case <-stop:
			return false, nil
		default:
			return true, nil
		}
	})
}

// dumpState writes the chip's internal state as a graphviz file named after
// the current step count.
func (prb *Probe) dumpState() error {
	fn := fmt.Sprintf("probe_%d.dot", prb.brd.Steps())

	f, err := os.Create(fn)
	if err != nil {
		return curated.Errorf("probe: %v", err)
	}
	defer f.Close()

	memviz.Map(f, prb.brd.SAM)
	prb.print("\nstate graph written to %s\n", fn)

	return nil
}

func (prb *Probe) print(s string, a ...interface{}) {
	prb.output.WriteString(fmt.Sprintf(s, a...))
}

func (prb *Probe) printStatus() {
	pins := prb.brd.SAM.Pins
	prb.print("\r%s%10d %s%s ", penDim, prb.brd.Steps(), prb.brd.SAM.Seq.RefTime, penNormal)
	prb.print("%s %s %s %s %s ",
		pin("E", pins.E), pin("Q", pins.Q),
		pin("RAS", !pins.NRAS), pin("CAS", !pins.NCAS), pin("WE", !pins.NWE))
	prb.print("%s%s z=%03x%s   ", penDim, pins.S, pins.Z, penNormal)
}

// pin formats a label according to its level: green for high/asserted, red
// otherwise.
func pin(label string, asserted bool) string {
	if asserted {
		return penHigh + label + penNormal
	}
	return penLow + label + penNormal
}
