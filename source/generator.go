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
)

// Generator fills buf with the next samples. The return value is true if
// the generator has looped back to the start of its data. A loop is part of
// the sound and is not a discontinuity.
type Generator interface {
	Generate(buf []int16) bool
}

// Resetter is implemented by generators that can start again from the
// beginning.
type Resetter interface {
	Reset()
}

// Shape of the Tone waveform.
type Shape int

// List of valid Shape values.
const (
	Sine Shape = iota
	Square
)

func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Square:
		return "square"
	}
	return "unknown shape"
}

// Tone generates a continuous waveform.
type Tone struct {
	Freq      float64
	Amplitude int16
	Shape     Shape

	rate  int
	phase float64
}

// NewTone is the preferred method of initialisation for the Tone type.
func NewTone(freq float64, amplitude int16, shape Shape, rate int) *Tone {
	return &Tone{
		Freq:      freq,
		Amplitude: amplitude,
		Shape:     shape,
		rate:      rate,
	}
}

func (t *Tone) String() string {
	return fmt.Sprintf("%s %.1fHz", t.Shape, t.Freq)
}

// Generate implements the Generator interface. A Tone never loops.
func (t *Tone) Generate(buf []int16) bool {
	step := t.Freq / float64(t.rate)
	amp := float64(t.Amplitude)

	for i := range buf {
		switch t.Shape {
		case Square:
			if t.phase < 0.5 {
				buf[i] = t.Amplitude
			} else {
				buf[i] = -t.Amplitude
			}
		default:
			buf[i] = int16(math.Round(amp * math.Sin(2*math.Pi*t.phase)))
		}

		t.phase += step
		t.phase -= math.Floor(t.phase)
	}

	return false
}

// Reset implements the Resetter interface.
func (t *Tone) Reset() {
	t.phase = 0
}

// Loop plays a Sample repeatedly.
type Loop struct {
	s   *Sample
	pos int
}

// NewLoop is the preferred method of initialisation for the Loop type.
func NewLoop(s *Sample) *Loop {
	return &Loop{s: s}
}

func (l *Loop) String() string {
	return l.s.String()
}

// Generate implements the Generator interface.
func (l *Loop) Generate(buf []int16) bool {
	if len(l.s.Data) == 0 {
		clear(buf)
		return false
	}

	var looped bool
	for n := 0; n < len(buf); {
		c := copy(buf[n:], l.s.Data[l.pos:])
		n += c
		l.pos += c
		if l.pos >= len(l.s.Data) {
			l.pos = 0
			looped = true
		}
	}

	return looped
}

// Reset implements the Resetter interface.
func (l *Loop) Reset() {
	l.pos = 0
}
