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

//go:build portaudio

package paaudio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/jetsetilly/soundpipe/playback"
)

// Audio implements the playback.Channel interface.
type Audio struct {
	stream *portaudio.Stream

	// the stream is opened with a pointer to this slice. Write() sends the
	// entire length of the slice to the hardware
	buffer []int16

	underflows int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

func (aud *Audio) String() string {
	return fmt.Sprintf("portaudio: %d samples, %d underflows", len(aud.buffer), aud.underflows)
}

// Available returns true if PortAudio support has been compiled in.
func Available() bool {
	return true
}

// Reserve implements the playback.Channel interface.
func (aud *Audio) Reserve(samples int, format playback.Format) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}

	aud.buffer = make([]int16, samples*format.Channels)
	aud.underflows = 0

	var err error
	aud.stream, err = portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), samples, &aud.buffer)
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("portaudio: %w", err)
	}

	if err := aud.stream.Start(); err != nil {
		_ = aud.stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("portaudio: %w", err)
	}

	return nil
}

// Output implements the playback.Channel interface. The call blocks until
// PortAudio has accepted the entire buffer.
func (aud *Audio) Output(volume int, buf []int16) error {
	for i, s := range buf {
		aud.buffer[i] = playback.ApplyVolume(volume, s)
	}

	// an underflow means the hardware ran out of data before this buffer
	// arrived. the buffer has still been written
	if err := aud.stream.Write(); err != nil {
		if errors.Is(err, portaudio.OutputUnderflowed) {
			aud.underflows++
			return nil
		}
		return fmt.Errorf("portaudio: %w", err)
	}

	return nil
}

// Release implements the playback.Channel interface.
func (aud *Audio) Release() error {
	var err error
	if aud.stream != nil {
		err = errors.Join(aud.stream.Stop(), aud.stream.Close())
		aud.stream = nil
	}
	err = errors.Join(err, portaudio.Terminate())
	if err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	return nil
}
