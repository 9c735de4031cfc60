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

// Package wavtrace records the chip's strobe outputs to a WAV file, one
// channel per strobe, one sample per primary clock step. The result loads
// directly into any audio editor or logic-analyser tool that accepts
// multi-channel WAV, which turns out to be the cheapest way of eyeballing
// bus timing against a datasheet.
package wavtrace

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jimbro1000/Dragon32Rev3Proto/curated"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware"
	"github.com/jimbro1000/Dragon32Rev3Proto/hardware/sam"
	"github.com/jimbro1000/Dragon32Rev3Proto/logger"
)

// the recorded channels, in order: E, Q, nRAS, nCAS, nWE.
const numChannels = 5

// samples are written in chunks rather than per step.
const flushThreshold = 16384 * numChannels

// sample levels for the two logic states. well inside 16 bit range so
// editors don't clip the rails
const (
	levelHigh = 0x6000
	levelLow  = -0x6000
)

// Tracer records strobe levels and encodes them on the fly.
type Tracer struct {
	f   *os.File
	enc *wav.Encoder
	buf []int
}

// NewTracer is the preferred method of initialisation for the Tracer type.
func NewTracer(filename string) (*Tracer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, curated.Errorf("wavtrace: %v", err)
	}

	return &Tracer{
		f:   f,
		enc: wav.NewEncoder(f, hardware.ClockFreq, 16, numChannels, 1),
		buf: make([]int, 0, flushThreshold),
	}, nil
}

// Sample records the strobe levels for one step.
func (trc *Tracer) Sample(pins sam.Pins) error {
	trc.buf = append(trc.buf,
		level(pins.E), level(pins.Q),
		level(pins.NRAS), level(pins.NCAS), level(pins.NWE))

	if len(trc.buf) >= flushThreshold {
		return trc.flush()
	}
	return nil
}

// End flushes any buffered samples and closes the file. The Tracer cannot
// be used after End.
func (trc *Tracer) End() (rerr error) {
	defer func() {
		if err := trc.f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("wavtrace: %v", err)
		}
	}()

	if err := trc.flush(); err != nil {
		return err
	}
	if err := trc.enc.Close(); err != nil {
		return curated.Errorf("wavtrace: %v", err)
	}

	logger.Logf("wavtrace", "strobe trace written to %s", trc.f.Name())
	return nil
}

func (trc *Tracer) flush() error {
	if len(trc.buf) == 0 {
		return nil
	}

	buf := &audio.IntBuffer{
		Data: trc.buf,
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  hardware.ClockFreq,
		},
		SourceBitDepth: 16,
	}
	if err := trc.enc.Write(buf); err != nil {
		return curated.Errorf("wavtrace: %v", err)
	}

	trc.buf = trc.buf[:0]
	return nil
}

func level(l bool) int {
	if l {
		return levelHigh
	}
	return levelLow
}

// Capture runs the board for the given number of steps, recording the
// strobes to the named file.
func Capture(brd *hardware.Board, steps int, filename string) error {
	trc, err := NewTracer(filename)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		brd.Step()
		if err := trc.Sample(brd.SAM.Pins); err != nil {
			trc.End()
			return err
		}
	}

	return trc.End()
}
