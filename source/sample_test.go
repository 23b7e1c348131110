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

package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/soundpipe/source"
	"github.com/jetsetilly/soundpipe/test"
)

// createWav writes a stereo 16bit file. the left channel counts up and the
// right channel is always -1
func createWav(t *testing.T, fn string, rate int, n int) {
	t.Helper()

	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		SourceBitDepth: 16,
	}
	for i := range n {
		buf.Data = append(buf.Data, i, -1)
	}
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())
}

func TestLoadWav(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "count.wav")
	createWav(t, fn, 22050, 1000)

	// loaded at the native rate, only the first channel is used
	s, err := source.Load(fn, 22050)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.Name, "count.wav")
	test.ExpectEquality(t, s.Rate, 22050)
	test.DemandEquality(t, len(s.Data), 1000)
	for i, v := range s.Data {
		test.ExpectEquality(t, v, int16(i), i)
	}

	// loaded at twice the rate
	s, err = source.Load(fn, 44100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.Rate, 44100)
	test.ExpectEquality(t, len(s.Data), 2000)
}

func TestLoadFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := source.Load(filepath.Join(dir, "missing.wav"), 44100)
	test.ExpectFailure(t, err)

	fn := filepath.Join(dir, "test.flac")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("fLaC"), 0o600))
	_, err = source.Load(fn, 44100)
	test.ExpectSuccess(t, errors.Is(err, source.ErrUnsupportedFormat))

	// ogg files are supported but this one is truncated
	fn = filepath.Join(dir, "test.ogg")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("OggS"), 0o600))
	_, err = source.Load(fn, 44100)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, errors.Is(err, source.ErrUnsupportedFormat))

	// a file with the right extension but the wrong content
	fn = filepath.Join(dir, "test.wav")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not a wav file"), 0o600))
	_, err = source.Load(fn, 44100)
	test.ExpectFailure(t, err)
}
