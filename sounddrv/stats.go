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

package sounddrv

import "fmt"

// Stats are the driver's activity counters.
type Stats struct {
	// bytes written to the queue and bytes dropped because output was
	// suspended
	Written   uint64
	Abandoned uint64

	// number of times Write() had to wait for room in the queue
	Retries uint64

	// calls to the fill callback. an underrun is a fill from an empty queue
	// and a partial is a fill where the queue ran out part way through
	Fills     uint64
	Underruns uint64
	Partials  uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("written: %d abandoned: %d retries: %d fills: %d underruns: %d partials: %d",
		s.Written, s.Abandoned, s.Retries, s.Fills, s.Underruns, s.Partials)
}

// Stats returns a snapshot of the driver's counters.
func (drv *Driver) Stats() Stats {
	return Stats{
		Written:   drv.stats.written.Load(),
		Abandoned: drv.stats.abandoned.Load(),
		Retries:   drv.stats.retries.Load(),
		Fills:     drv.stats.fills.Load(),
		Underruns: drv.stats.underruns.Load(),
		Partials:  drv.stats.partials.Load(),
	}
}

// Queued returns the number of bytes waiting in the queue and the size of the
// queue. Both values are zero if the driver is not initialised.
func (drv *Driver) Queued() (int, int) {
	if q := drv.queue.Load(); q != nil {
		return q.Used(), q.Size()
	}
	return 0, 0
}
