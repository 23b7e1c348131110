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

package paths

import (
	"testing"
	"time"

	"github.com/jetsetilly/soundpipe/test"
)

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

	test.ExpectEquality(t, uniqueFilename(n, "capture", "", "wav"), "capture_20240307_090503.wav")
	test.ExpectEquality(t, uniqueFilename(n, "capture", "tone", ".wav"), "capture_tone_20240307_090503.wav")
	test.ExpectEquality(t, uniqueFilename(n, "capture", " my song/a ", ""), "capture_my_song_a_20240307_090503")
}
