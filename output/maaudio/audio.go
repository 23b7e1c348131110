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

// Package maaudio implements the playback.Channel interface using miniaudio,
// by way of the malgo package.
//
// Miniaudio asks for samples from its own thread. Output() hands a buffer to
// that thread and blocks until the previous buffer has been taken, so the
// playback engine is never more than one buffer ahead of the hardware.
package maaudio

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/gen2brain/malgo"
	"github.com/jetsetilly/soundpipe/playback"
)

// number of byte buffers in rotation. one can be held by the data callback,
// one can be waiting in the queue and one is being prepared by Output()
const numBuffers = 3

// Audio implements the playback.Channel interface.
type Audio struct {
	ctx *malgo.AllocatedContext
	dev *malgo.Device

	buffers [numBuffers][]byte
	next    int

	// buffers ready for the data callback
	queue chan []byte

	// the remainder of the buffer being played. only accessed by the data
	// callback
	current []byte

	underflows atomic.Uint64
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

func (aud *Audio) String() string {
	return fmt.Sprintf("miniaudio: %d underflows", aud.underflows.Load())
}

// Reserve implements the playback.Channel interface.
func (aud *Audio) Reserve(samples int, format playback.Format) error {
	var err error

	aud.ctx, err = malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("miniaudio: %w", err)
	}

	for i := range aud.buffers {
		aud.buffers[i] = make([]byte, samples*format.Channels*2)
	}
	aud.next = 0
	aud.queue = make(chan []byte, 1)
	aud.current = nil
	aud.underflows.Store(0)

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(format.Channels)
	cfg.SampleRate = uint32(format.SampleRate)
	cfg.PeriodSizeInFrames = uint32(samples)

	aud.dev, err = malgo.InitDevice(aud.ctx.Context, cfg, malgo.DeviceCallbacks{
		Data: aud.data,
	})
	if err != nil {
		aud.freeContext()
		return fmt.Errorf("miniaudio: %w", err)
	}

	if err := aud.dev.Start(); err != nil {
		aud.dev.Uninit()
		aud.dev = nil
		aud.freeContext()
		return fmt.Errorf("miniaudio: %w", err)
	}

	return nil
}

// data is the miniaudio callback. the output is zero filled if no buffer is
// ready
func (aud *Audio) data(out []byte, _ []byte, _ uint32) {
	for len(out) > 0 {
		if len(aud.current) == 0 {
			select {
			case b := <-aud.queue:
				aud.current = b
			default:
				clear(out)
				aud.underflows.Add(1)
				return
			}
		}
		n := copy(out, aud.current)
		aud.current = aud.current[n:]
		out = out[n:]
	}
}

// Output implements the playback.Channel interface.
func (aud *Audio) Output(volume int, buf []int16) error {
	b := aud.buffers[aud.next]
	aud.next = (aud.next + 1) % numBuffers

	for i, s := range buf {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(playback.ApplyVolume(volume, s)))
	}

	aud.queue <- b[:len(buf)*2]

	return nil
}

// Release implements the playback.Channel interface.
func (aud *Audio) Release() error {
	var err error
	if aud.dev != nil {
		err = aud.dev.Stop()
		aud.dev.Uninit()
		aud.dev = nil
	}
	aud.freeContext()
	if err != nil {
		return fmt.Errorf("miniaudio: %w", err)
	}
	return nil
}

func (aud *Audio) freeContext() {
	if aud.ctx == nil {
		return
	}
	_ = aud.ctx.Uninit()
	aud.ctx.Free()
	aud.ctx = nil
}
