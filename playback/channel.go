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

package playback

// MaxVolume is the volume value passed to Channel.Output(). It represents the
// full, unattenuated signal.
const MaxVolume = 0x8000

// DefaultSampleRate is the sample rate of the default Format.
const DefaultSampleRate = 44100

// Format describes the samples passed to the Channel.
type Format struct {
	SampleRate int
	Channels   int
}

// Channel is the hardware boundary. Implementations are found in the output
// package.
type Channel interface {
	// Reserve the hardware for the given number of samples per output.
	Reserve(samples int, format Format) error

	// Output blocks until the hardware can accept the buffer. The length of
	// buf will always be the number of samples given to Reserve()
	Output(volume int, buf []int16) error

	// Release the hardware. Will only be called after a successful Reserve()
	Release() error
}

// FillFunc is called by the playback goroutine to fill the next buffer. The
// function must fill all of buf and must not keep a reference to it.
type FillFunc func(buf []int16)

// ApplyVolume scales the sample by the volume value given to
// Channel.Output(). A volume of MaxVolume leaves the sample unchanged.
func ApplyVolume(volume int, s int16) int16 {
	if volume == MaxVolume {
		return s
	}
	return int16(int(s) * volume / MaxVolume)
}
