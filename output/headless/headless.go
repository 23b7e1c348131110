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

// Package headless implements the playback.Channel interface without any
// audio hardware. Buffers are discarded, but Output() blocks for the time it
// would take to play them.
package headless

import (
	"sync/atomic"
	"time"

	"github.com/jetsetilly/soundpipe/playback"
)

// Headless implements the playback.Channel interface.
type Headless struct {
	period   time.Duration
	deadline time.Time

	outputs atomic.Uint64
	peak    atomic.Int32
}

// NewHeadless is the preferred method of initialisation for the Headless
// type.
func NewHeadless() *Headless {
	return &Headless{}
}

// Reserve implements the playback.Channel interface.
func (hl *Headless) Reserve(samples int, format playback.Format) error {
	hl.period = time.Duration(samples) * time.Second / time.Duration(format.SampleRate)
	hl.deadline = time.Now()
	hl.outputs.Store(0)
	return nil
}

// Output implements the playback.Channel interface.
func (hl *Headless) Output(volume int, buf []int16) error {
	var peak int32
	for _, s := range buf {
		v := int32(playback.ApplyVolume(volume, s))
		peak = max(peak, v, -v)
	}
	hl.peak.Store(peak)
	hl.outputs.Add(1)

	hl.deadline = hl.deadline.Add(hl.period)
	if now := time.Now(); hl.deadline.Before(now.Add(-hl.period)) {
		hl.deadline = now
	}
	time.Sleep(time.Until(hl.deadline))

	return nil
}

// Release implements the playback.Channel interface.
func (hl *Headless) Release() error {
	return nil
}

// Outputs returns the number of buffers output since Reserve().
func (hl *Headless) Outputs() uint64 {
	return hl.outputs.Load()
}

// Peak returns the largest absolute sample value in the most recent buffer.
func (hl *Headless) Peak() int {
	return int(hl.peak.Load())
}
