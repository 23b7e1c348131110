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

package source

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/soundpipe/logger"
	"github.com/jfreymuth/oggvorbis"
)

const logTag = "source"

// ErrUnsupportedFormat is returned by Load() for files that are not WAV, MP3
// or Ogg Vorbis files.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Sample is mono sound data at a fixed rate.
type Sample struct {
	Name string
	Rate int
	Data []int16
}

func (s *Sample) String() string {
	return fmt.Sprintf("%s (%v)", s.Name, s.Duration().Round(time.Millisecond))
}

// Duration of the sample.
func (s *Sample) Duration() time.Duration {
	if s.Rate == 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.Rate)
}

// Load a WAV, MP3 or Ogg Vorbis file. Only the first channel of a multi-channel file is
// used. The data is resampled to the specified rate.
func Load(filename string, rate int) (*Sample, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	s := &Sample{
		Name: filepath.Base(filename),
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		s.Data, s.Rate, err = decodeWav(f)
	case ".mp3":
		s.Data, s.Rate, err = decodeMP3(f)
	case ".ogg":
		s.Data, s.Rate, err = decodeOgg(f)
	default:
		return nil, fmt.Errorf("source: %w: %s", ErrUnsupportedFormat, s.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	logger.Logf(logger.Allow, logTag, "%s: %d samples at %dHz", s.Name, len(s.Data), s.Rate)

	if s.Rate != rate {
		s.Data = Resample(s.Data, s.Rate, rate)
		s.Rate = rate
	}

	return s, nil
}

func decodeWav(r io.ReadSeeker) ([]int16, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wav: %w", err)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		return nil, 0, fmt.Errorf("wav: no channels")
	}

	// adjust samples of other bit depths to 16bit. 8bit wav data is unsigned
	var conv func(int) int16
	switch dec.BitDepth {
	case 8:
		conv = func(v int) int16 { return int16((v - 128) << 8) }
	case 16:
		conv = func(v int) int16 { return int16(v) }
	case 24:
		conv = func(v int) int16 { return int16(v >> 8) }
	case 32:
		conv = func(v int) int16 { return int16(v >> 16) }
	default:
		return nil, 0, fmt.Errorf("wav: unsupported bit depth: %d", dec.BitDepth)
	}

	// first channel only
	data := make([]int16, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		data = append(data, conv(buf.Data[i]))
	}

	return data, int(dec.SampleRate), nil
}

func decodeMP3(r io.Reader) ([]int16, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, fmt.Errorf("mp3: %w", err)
	}

	// the decoded stream is always 16bit little endian stereo, even if the
	// source is a single channel MP3. a sample therefore consists of four
	// bytes, the first two of which are the left channel
	data := make([]int16, 0, dec.Length()/4)
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			data = append(data, int16(binary.LittleEndian.Uint16(chunk[i:])))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("mp3: %w", err)
		}
	}

	return data, dec.SampleRate(), nil
}

func decodeOgg(r io.Reader) ([]int16, int, error) {
	pcm, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("ogg: %w", err)
	}
	if format.Channels < 1 {
		return nil, 0, fmt.Errorf("ogg: no channels")
	}

	// decoded samples are interleaved floats in the range -1 to 1
	data := make([]int16, 0, len(pcm)/format.Channels)
	for i := 0; i < len(pcm); i += format.Channels {
		v := max(-1.0, min(1.0, pcm[i]))
		data = append(data, int16(v*math.MaxInt16))
	}

	return data, format.SampleRate, nil
}

// Resample data from one rate to another by taking the nearest sample.
func Resample(data []int16, from int, to int) []int16 {
	if from == to || from <= 0 || to <= 0 || len(data) == 0 {
		return data
	}

	n := int(int64(len(data)) * int64(to) / int64(from))
	out := make([]int16, n)
	for i := range out {
		j := int((int64(i)*int64(from) + int64(to)/2) / int64(to))
		out[i] = data[min(j, len(data)-1)]
	}

	return out
}
