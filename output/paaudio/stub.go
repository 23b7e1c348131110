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

//go:build !portaudio

package paaudio

import (
	"fmt"

	"github.com/jetsetilly/soundpipe/playback"
)

// Audio implements the playback.Channel interface. Without the portaudio
// build tag it cannot reserve a channel.
type Audio struct{}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

// Available returns true if PortAudio support has been compiled in.
func Available() bool {
	return false
}

// Reserve implements the playback.Channel interface.
func (aud *Audio) Reserve(_ int, _ playback.Format) error {
	return fmt.Errorf("portaudio: %w (build with -tags portaudio)", ErrUnavailable)
}

// Output implements the playback.Channel interface.
func (aud *Audio) Output(_ int, _ []int16) error {
	return fmt.Errorf("portaudio: %w", ErrUnavailable)
}

// Release implements the playback.Channel interface.
func (aud *Audio) Release() error {
	return nil
}
