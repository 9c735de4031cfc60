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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jimbro1000/Dragon32Rev3Proto/hardware"
	"github.com/jimbro1000/Dragon32Rev3Proto/logger"
	"github.com/jimbro1000/Dragon32Rev3Proto/modalflag"
	"github.com/jimbro1000/Dragon32Rev3Proto/performance"
	"github.com/jimbro1000/Dragon32Rev3Proto/probe"
	"github.com/jimbro1000/Dragon32Rev3Proto/statsview"
	"github.com/jimbro1000/Dragon32Rev3Proto/version"
	"github.com/jimbro1000/Dragon32Rev3Proto/wavtrace"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])

	log := md.AddBool("log", false, "echo log to stderr")
	ver := md.AddBool("version", false, "print version and exit")
	md.AddSubModes("RUN", "PROBE", "PERFORMANCE", "WAVEFORM")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	if *ver {
		v, rev, release := version.Version()
		fmt.Printf("%s %s\n", version.ApplicationName, v)
		if !release {
			fmt.Println(rev)
		}
		os.Exit(0)
	}

	if *log {
		logger.SetEcho(os.Stderr)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PROBE":
		err = probeMode(md)

	case "PERFORMANCE":
		err = perform(md)

	case "WAVEFORM":
		err = waveform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// run the board at hardware speed until interrupted.
func run(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddDuration("duration", 0, "run time (0 means until interrupted)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	brd := hardware.NewBoard(nil, nil)
	brd.PowerOnReset()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Reset(os.Interrupt)

	var end time.Time
	if *duration > 0 {
		end = time.Now().Add(*duration)
	}

	lim := performance.NewLimiter()
	err = brd.Run(func() (bool, error) {
		lim.Wait()
		select {
		case <-intChan:
			return false, nil
		default:
		}
		if !end.IsZero() && time.Now().After(end) {
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\r%d steps\n", brd.Steps())
	return nil
}

// probeMode attaches the interactive pin probe to a fresh board.
func probeMode(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	brd := hardware.NewBoard(nil, nil)
	brd.PowerOnReset()

	prb, err := probe.NewProbe(brd)
	if err != nil {
		return err
	}

	return prb.Run()
}

// perform measures uncapped simulation speed.
func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "run profiler (cpu, mem, all)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prf, *duration)
}

// waveform records the strobe outputs to a multi-channel WAV file.
func waveform(md *modalflag.Modes) error {
	md.NewMode()

	steps := md.AddInt("steps", 14*16*262, "number of steps to record")
	filename := md.AddString("wav", "strobes.wav", "output file")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	brd := hardware.NewBoard(nil, nil)
	brd.PowerOnReset()

	return wavtrace.Capture(brd, *steps, *filename)
}
