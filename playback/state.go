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

package playback

import "fmt"

// State of the Engine as returned by Engine.State().
type State int

// List of valid State values.
const (
	Uninitialised State = iota
	Running
	Paused
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Uninitialised:
		return "uninitialised"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case ShuttingDown:
		return "shutting down"
	}
	return "unknown state"
}

// Stats is a snapshot of the engine's activity counters. The counters are
// reset by every successful call to Init().
type Stats struct {
	// number of successful calls to Channel.Output()
	Outputs uint64

	// buffers filled by the FillFunc and buffers filled with silence
	Fills    uint64
	Silences uint64

	// failed calls to Channel.Output()
	Errors uint64

	// number of poll intervals spent in the paused state
	Polls uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("outputs: %d fills: %d silences: %d errors: %d polls: %d",
		s.Outputs, s.Fills, s.Silences, s.Errors, s.Polls)
}
