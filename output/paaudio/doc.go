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

// Package paaudio implements the playback.Channel interface using the
// blocking stream API of PortAudio.
//
// The package requires the PortAudio library and is only built with the
// "portaudio" build tag. Without the tag Reserve() always fails and the
// playback engine will refuse to initialise.
package paaudio

import "errors"

// ErrUnavailable is returned by Reserve() if the program was built without
// PortAudio support.
var ErrUnavailable = errors.New("portaudio support not available")
