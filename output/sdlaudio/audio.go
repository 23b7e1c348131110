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

// Package sdlaudio implements the playback.Channel interface using the SDL
// audio queue.
//
// SDL is given signed 16bit samples in the native byte order. Output() blocks
// while more than one buffer is waiting in the SDL queue, which means that the
// playback engine is paced by the audio hardware.
package sdlaudio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/jetsetilly/soundpipe/playback"

	"github.com/veandco/go-sdl2/sdl"
)

// Audio implements the playback.Channel interface.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// buffer of bytes queued with every call to Output()
	buffer []byte

	// how long to wait before checking the SDL queue again
	wait time.Duration
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

func (aud *Audio) String() string {
	return fmt.Sprintf("sdl: %dHz %d channel(s) %d samples", aud.spec.Freq, aud.spec.Channels, aud.spec.Samples)
}

// Reserve implements the playback.Channel interface.
func (aud *Audio) Reserve(samples int, format playback.Format) error {
	if samples > math.MaxUint16 {
		return fmt.Errorf("sdl: too many samples per buffer: %d", samples)
	}

	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(format.SampleRate),
		Format:   sdl.AUDIO_S16SYS,
		Channels: uint8(format.Channels),
		Samples:  uint16(samples),
	}

	// no changes are allowed to the spec. SDL will convert the audio if the
	// hardware cannot play the format directly
	var err error
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return fmt.Errorf("sdl: %w", err)
	}

	aud.buffer = make([]byte, samples*2)

	// a quarter of the time it takes to play one buffer
	aud.wait = time.Duration(samples) * time.Second / time.Duration(format.SampleRate) / 4

	sdl.ClearQueuedAudio(aud.id)
	sdl.PauseAudioDevice(aud.id, false)

	return nil
}

// Output implements the playback.Channel interface.
func (aud *Audio) Output(volume int, buf []int16) error {
	// wait until there is no more than one buffer in the queue. this gives
	// the hardware something to play while the next buffer is being filled
	for sdl.GetQueuedAudioSize(aud.id) > uint32(len(aud.buffer)) {
		time.Sleep(aud.wait)
	}

	for i, s := range buf {
		binary.NativeEndian.PutUint16(aud.buffer[i*2:], uint16(playback.ApplyVolume(volume, s)))
	}

	if err := sdl.QueueAudio(aud.id, aud.buffer[:len(buf)*2]); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	return nil
}

// Release implements the playback.Channel interface.
func (aud *Audio) Release() error {
	sdl.PauseAudioDevice(aud.id, true)
	sdl.ClearQueuedAudio(aud.id)
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	aud.id = 0
	aud.buffer = nil
	return nil
}
