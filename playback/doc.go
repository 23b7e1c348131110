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

// Package playback drives a hardware audio channel from a goroutine of its
// own.
//
// The Engine reserves a Channel that consumes a fixed number of mono samples
// per call to Output(). Output() blocks until the hardware is ready for more
// data and so it is the Channel that sets the pace of the playback loop.
//
// Two buffers are allocated as a single contiguous block. On every iteration
// of the loop one buffer is filled, either by the registered FillFunc or with
// silence, and then handed to the Channel. The buffer index then alternates,
// whether or not the output succeeded.
//
// An Engine starts in the paused state. While paused the loop does not touch
// the buffers or the channel and instead sleeps for the poll interval before
// checking again.
//
//	eng := playback.NewEngine(ch)
//	n, err := eng.Init(0)
//	eng.SetCallback(fill)
//	eng.Resume()
//	...
//	eng.Shutdown()
package playback
