// This file is part of Soundpipe.
//
// Soundpipe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Soundpipe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Soundpipe.  If not, see <https://www.gnu.org/licenses/>.

package source

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/soundpipe/logger"
)

// FrameRate is the number of frames per second run by the Producer.
const FrameRate = 50

// Writer is the destination for the samples generated by a Producer. The
// sound.Sound type satisfies this interface.
type Writer interface {
	Write(samples []int16) error
	Flush()
}

// Producer runs frames of sound generation.
type Producer struct {
	w    Writer
	gen  Generator
	rate int

	// restart is set by Restart() and acted on by Run() at the start of the
	// next frame
	restart atomic.Bool

	frames   atomic.Uint64
	loops    atomic.Uint64
	restarts atomic.Uint64
}

// NewProducer is the preferred method of initialisation for the Producer
// type. The rate is the number of samples per second that the generator is
// producing.
func NewProducer(w Writer, gen Generator, rate int) *Producer {
	return &Producer{
		w:    w,
		gen:  gen,
		rate: rate,
	}
}

// Run frames until the context is cancelled. Each frame generates rate /
// FrameRate samples and writes them to the Writer.
//
// Frames are started no more often than FrameRate times a second. Writes to
// the Writer may block, in which case the frame rate will be lower.
func (p *Producer) Run(ctx context.Context) error {
	buf := make([]int16, p.rate/FrameRate)

	tck := time.NewTicker(time.Second / FrameRate)
	defer tck.Stop()

	logger.Logf(logger.Allow, logTag, "producing %d samples per frame", len(buf))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tck.C:
		}

		// starting the generator again is a discontinuity in the same way as
		// an emulation reset. samples still waiting to be played are discarded
		if p.restart.Swap(false) {
			if r, ok := p.gen.(Resetter); ok {
				r.Reset()
			}
			p.w.Flush()
			p.restarts.Add(1)
		}

		if p.gen.Generate(buf) {
			p.loops.Add(1)
		}

		if err := p.w.Write(buf); err != nil {
			return err
		}
		p.frames.Add(1)
	}
}

// Frames returns the number of frames that have been run.
func (p *Producer) Frames() uint64 {
	return p.frames.Load()
}

// Loops returns the number of times the generator has looped.
func (p *Producer) Loops() uint64 {
	return p.loops.Load()
}

// Restart the generator from the beginning. Takes effect at the start of the
// next frame. Safe to call from any goroutine.
func (p *Producer) Restart() {
	p.restart.Store(true)
}

// Restarts returns the number of times the generator has been restarted.
func (p *Producer) Restarts() uint64 {
	return p.restarts.Load()
}
