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

// Package paths prepares filenames for files created by soundpipe.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate base directory. If a directory called ".soundpipe" is present
// in the current directory then that is the base directory. Otherwise the
// user's config directory is used, as returned by os.UserConfigDir().
//
// For example, on a modern Linux system:
//
//	paths.ResourcePath("captures", "tone.wav")
//
// returns
//
//	/home/user/.config/soundpipe/captures/tone.wav
//
// The UniqueFilename() function creates a filename that should not collide
// with any existing file.
package paths
