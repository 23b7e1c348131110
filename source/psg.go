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
	"fmt"
	"math"

	"github.com/user-none/go-chip-sn76489"
)

// PSGClock is the clock frequency of the emulated SN76489.
const PSGClock = 3579545

const (
	psgGain = 4096.0

	// the chip's own buffer must be large enough for one run
	psgBufferSize = 1024
	psgRunSamples = 512
)

// PSG generates an arpeggio with an emulated SN76489 programmable sound
// generator. This is the same chip, with the same register interface, as is
// found in many of the machines an emulator might be producing sound for.
type PSG struct {
	chip *sn76489.SN76489
	rate int

	// notes of the arpeggio in Hz and the number of samples each note is
	// played for
	notes []float64
	step  int

	note int
	pos  int

	// samples produced by the chip but not yet returned by Generate()
	pending []int16

	runCycles int
}

// NewPSG is the preferred method of initialisation for the PSG type. The
// notes are played in order, each for the duration of the step, and then
// repeated.
func NewPSG(notes []float64, step int, rate int) *PSG {
	p := &PSG{
		chip:      sn76489.New(PSGClock, rate, psgBufferSize, sn76489.Sega),
		rate:      rate,
		notes:     notes,
		step:      max(step, 1),
		runCycles: int(int64(psgRunSamples) * PSGClock / int64(rate)),
	}
	p.chip.SetGain(psgGain)

	// silence channels 1, 2 and the noise channel
	p.chip.Write(0xbf)
	p.chip.Write(0xdf)
	p.chip.Write(0xff)

	if len(p.notes) > 0 {
		p.setNote(p.notes[0])
	} else {
		p.chip.Write(0x9f)
	}

	return p
}

func (p *PSG) String() string {
	return fmt.Sprintf("psg arpeggio of %d notes", len(p.notes))
}

// PSGTone returns the value of the 10bit tone register for the frequency.
func PSGTone(freq float64) int {
	if freq <= 0 {
		return 0x3ff
	}
	n := int(math.Round(PSGClock / (32 * freq)))
	return max(1, min(n, 0x3ff))
}

// setNote writes the tone and volume registers for channel zero
func (p *PSG) setNote(freq float64) {
	n := PSGTone(freq)
	p.chip.Write(0x80 | byte(n&0x0f))
	p.chip.Write(byte(n>>4) & 0x3f)
	p.chip.Write(0x90)
}

// Reset implements the Resetter interface. The arpeggio starts again from the
// first note.
func (p *PSG) Reset() {
	p.note = 0
	p.pos = 0
	p.pending = nil
	if len(p.notes) > 0 {
		p.setNote(p.notes[0])
	}
}

// Generate implements the Generator interface. Returns true when the arpeggio
// starts again from the first note.
func (p *PSG) Generate(buf []int16) bool {
	var looped bool

	for i := range buf {
		if len(p.pending) == 0 {
			p.run()
		}
		buf[i] = p.pending[0]
		p.pending = p.pending[1:]

		p.pos++
		if p.pos >= p.step && len(p.notes) > 0 {
			p.pos = 0
			p.note++
			if p.note >= len(p.notes) {
				p.note = 0
				looped = true
			}
			p.setNote(p.notes[p.note])
		}
	}

	return looped
}

// run the chip for long enough to produce a batch of samples
func (p *PSG) run() {
	p.chip.ResetBuffer()
	p.chip.Run(p.runCycles)
	out, n := p.chip.GetBuffer()

	p.pending = p.pending[:0]
	for _, v := range out[:n] {
		v = max(math.MinInt16, min(math.MaxInt16, v))
		p.pending = append(p.pending, int16(v))
	}

	// the chip should always produce samples. if it does not then output
	// silence rather than spin
	if len(p.pending) == 0 {
		p.pending = append(p.pending, make([]int16, psgRunSamples)...)
	}
}
