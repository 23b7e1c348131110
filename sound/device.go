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

package sound

import "fmt"

// Params are the parameters requested by the emulation when opening a
// device. The device may change any of the values to reflect what it can
// actually provide.
type Params struct {
	// sample rate in Hz
	Speed int

	// size of a fragment in bytes per channel
	FragmentSize int

	// number of fragments to buffer
	FragmentCount int

	Channels int
}

func (p Params) String() string {
	return fmt.Sprintf("%dHz, %d channel(s), %d fragments of %d bytes",
		p.Speed, p.Channels, p.FragmentCount, p.FragmentSize)
}

// Device is implemented by sound drivers.
type Device interface {
	Name() string

	// Init the device. The values in Params may be altered by the device
	Init(p *Params) error

	// Write signed 16bit samples to the device. Write may block for as long
	// as it takes to hand the samples over
	Write(samples []int16) error

	// Suspend and Resume output. A suspended device must not block in
	// Write()
	Suspend() error
	Resume() error

	// Close the device. Close() must not be called while a Write() is in
	// progress. Sound guarantees this by holding its write lock
	Close()
}

// Flusher is implemented by devices that can discard pending samples. The
// Flush() function is called on a discontinuity in the emulation, such as a
// reset.
type Flusher interface {
	Flush()
}
