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

// Package output creates the playback.Channel for a named backend.
//
// The available backends are:
//
//	sdl       SDL audio queue
//	oto       oto, a pure Go audio library
//	portaudio PortAudio blocking stream (requires the portaudio build tag)
//	miniaudio miniaudio, by way of malgo
//	wav       WAV file capture, paced as though it were audio hardware
//	headless  no output, paced as though it were audio hardware
package output

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/soundpipe/output/headless"
	"github.com/jetsetilly/soundpipe/output/maaudio"
	"github.com/jetsetilly/soundpipe/output/otoaudio"
	"github.com/jetsetilly/soundpipe/output/paaudio"
	"github.com/jetsetilly/soundpipe/output/sdlaudio"
	"github.com/jetsetilly/soundpipe/output/wavwriter"
	"github.com/jetsetilly/soundpipe/playback"
)

// List of backend names.
const (
	SDL       = "sdl"
	Oto       = "oto"
	PortAudio = "portaudio"
	MiniAudio = "miniaudio"
	Wav       = "wav"
	Headless  = "headless"
)

// Backends lists the backend names accepted by NewChannel().
var Backends = []string{SDL, Oto, PortAudio, MiniAudio, Wav, Headless}

// ErrUnknownBackend is returned by NewChannel() for an unrecognised backend
// name.
var ErrUnknownBackend = errors.New("unknown backend")

// Options for NewChannel().
type Options struct {
	// filename for the wav backend
	WavFilename string

	// the wav backend is paced like audio hardware by default. set to true
	// to write the file as quickly as possible
	Unpaced bool
}

// NewChannel returns a new playback.Channel for the named backend.
func NewChannel(backend string, opts Options) (playback.Channel, error) {
	switch backend {
	case SDL:
		return sdlaudio.NewAudio(), nil
	case Oto:
		return otoaudio.NewAudio(), nil
	case PortAudio:
		return paaudio.NewAudio(), nil
	case MiniAudio:
		return maaudio.NewAudio(), nil
	case Wav:
		if opts.WavFilename == "" {
			return nil, fmt.Errorf("output: wav backend requires a filename")
		}
		return wavwriter.NewWavWriter(opts.WavFilename, !opts.Unpaced), nil
	case Headless:
		return headless.NewHeadless(), nil
	}
	return nil, fmt.Errorf("output: %w: %s", ErrUnknownBackend, backend)
}
