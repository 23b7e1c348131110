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

// Package wavwriter implements the playback.Channel interface by writing
// every buffer to a WAV file.
//
// Samples are written to disk as they arrive rather than being buffered in
// memory. When paced, Output() blocks until the time it would take to play
// the buffer has elapsed, in the same way that audio hardware would.
package wavwriter

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/soundpipe/logger"
	"github.com/jetsetilly/soundpipe/playback"
)

const logTag = "wavwriter"

// WavWriter implements the playback.Channel interface.
type WavWriter struct {
	filename string
	paced    bool

	f   *os.File
	enc *wav.Encoder
	buf *audio.IntBuffer

	period   time.Duration
	deadline time.Time

	samples int
}

// NewWavWriter is the preferred method of initialisation for the WavWriter
// type. The file is not created until Reserve() is called.
func NewWavWriter(filename string, paced bool) *WavWriter {
	return &WavWriter{
		filename: filename,
		paced:    paced,
	}
}

func (aw *WavWriter) String() string {
	return aw.filename
}

// Reserve implements the playback.Channel interface.
func (aw *WavWriter) Reserve(samples int, format playback.Format) error {
	var err error
	aw.f, err = os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	aw.enc = wav.NewEncoder(aw.f, format.SampleRate, 16, format.Channels, 1)
	aw.buf = &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           make([]int, samples),
		SourceBitDepth: 16,
	}

	aw.period = time.Duration(samples) * time.Second / time.Duration(format.SampleRate)
	aw.deadline = time.Now()
	aw.samples = 0

	logger.Logf(logger.Allow, logTag, "writing audio to %s", aw.filename)

	return nil
}

// Output implements the playback.Channel interface.
func (aw *WavWriter) Output(volume int, buf []int16) error {
	aw.buf.Data = aw.buf.Data[:len(buf)]
	for i, s := range buf {
		aw.buf.Data[i] = int(playback.ApplyVolume(volume, s))
	}

	if err := aw.enc.Write(aw.buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	aw.samples += len(buf)

	if aw.paced {
		aw.deadline = aw.deadline.Add(aw.period)

		// if we've fallen behind by more than a period then don't try to catch up
		if now := time.Now(); aw.deadline.Before(now.Add(-aw.period)) {
			aw.deadline = now
		}
		time.Sleep(time.Until(aw.deadline))
	}

	return nil
}

// Release implements the playback.Channel interface.
func (aw *WavWriter) Release() (rerr error) {
	defer func() {
		if err := aw.f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
		aw.f = nil
		aw.enc = nil
	}()

	if err := aw.enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	logger.Logf(logger.Allow, logTag, "%d samples written to %s", aw.samples, aw.filename)

	return nil
}
