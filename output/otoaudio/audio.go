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

// Package otoaudio implements the playback.Channel interface using the oto
// library.
//
// Oto pulls samples from an io.Reader. The reader in this case is one end of a
// pipe. Output() writes to the other end of the pipe and so blocks until oto
// has taken the samples.
//
// Only one oto context can exist in a process. The context is created on the
// first call to Reserve() and the format cannot change after that.
package otoaudio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/soundpipe/playback"
)

// ErrFormatChange is returned by Reserve() if the format differs from the
// format of the oto context created by a previous call.
var ErrFormatChange = errors.New("format cannot change once the context has been created")

var otoContext struct {
	once   sync.Once
	ctx    *oto.Context
	format playback.Format
	err    error
}

func getContext(format playback.Format) (*oto.Context, error) {
	otoContext.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoContext.err = err
			return
		}
		<-ready
		otoContext.ctx = ctx
		otoContext.format = format
	})

	if otoContext.err != nil {
		return nil, otoContext.err
	}
	if otoContext.format != format {
		return nil, fmt.Errorf("%w: %v", ErrFormatChange, otoContext.format)
	}
	return otoContext.ctx, nil
}

// Audio implements the playback.Channel interface.
type Audio struct {
	player *oto.Player
	pr     *io.PipeReader
	pw     *io.PipeWriter

	buffer []byte
	volume int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

// Reserve implements the playback.Channel interface.
func (aud *Audio) Reserve(samples int, format playback.Format) error {
	ctx, err := getContext(format)
	if err != nil {
		return fmt.Errorf("oto: %w", err)
	}

	aud.buffer = make([]byte, samples*2)
	aud.volume = playback.MaxVolume

	aud.pr, aud.pw = io.Pipe()
	aud.player = ctx.NewPlayer(aud.pr)

	// keep the amount of audio buffered by oto to roughly one period
	aud.player.SetBufferSize(len(aud.buffer))
	aud.player.Play()

	return nil
}

// Output implements the playback.Channel interface.
func (aud *Audio) Output(volume int, buf []int16) error {
	if volume != aud.volume {
		aud.volume = volume
		aud.player.SetVolume(float64(volume) / playback.MaxVolume)
	}

	for i, s := range buf {
		binary.LittleEndian.PutUint16(aud.buffer[i*2:], uint16(s))
	}

	if _, err := aud.pw.Write(aud.buffer[:len(buf)*2]); err != nil {
		return fmt.Errorf("oto: %w", err)
	}

	return nil
}

// Release implements the playback.Channel interface.
func (aud *Audio) Release() error {
	// closing the writer first means the player sees io.EOF
	aud.pw.Close()
	err := aud.player.Close()
	aud.pr.Close()
	aud.player = nil
	if err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	return nil
}
