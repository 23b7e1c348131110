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
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Used to generate filenames for WAV captures. Format of returned string is:
//
//	prepend_name_YYYYMMDD_HHMMSS.ext
//
// If name is empty the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS.ext
//
// The extension is omitted if ext is empty.
func UniqueFilename(prepend string, name string, ext string) string {
	return uniqueFilename(time.Now(), prepend, name, ext)
}

func uniqueFilename(n time.Time, prepend string, name string, ext string) string {
	fn := prepend

	if c := strings.TrimSpace(name); len(c) > 0 {
		// spaces and path separators make for awkward filenames
		c = strings.Map(func(r rune) rune {
			switch r {
			case ' ', '/', '\\':
				return '_'
			}
			return r
		}, c)
		fn = fmt.Sprintf("%s_%s", fn, c)
	}

	fn = fmt.Sprintf("%s_%s", fn, n.Format("20060102_150405"))

	if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); len(ext) > 0 {
		fn = fmt.Sprintf("%s.%s", fn, ext)
	}

	return fn
}
