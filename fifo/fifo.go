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

package fifo

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/soundpipe/assert"
)

// ErrAllocation is returned by NewFIFO() when storage for the queue cannot be
// reserved.
var ErrAllocation = errors.New("cannot allocate queue storage")

// MaxCapacity is the largest capacity, in bytes, that NewFIFO() will accept.
// At 44.1kHz, 16bit mono this is a little over three minutes of audio, far
// more than any sensible fragment configuration will ask for
const MaxCapacity = 16 * 1024 * 1024

// FIFO is a bounded, single-producer/single-consumer byte queue.
type FIFO struct {
	buffer   []byte
	capacity int64

	// the write cursor is only ever changed by the producer and the read cursor
	// is only ever changed by the consumer (or by Flush(), which holds the
	// consumer lock)
	writePos atomic.Int64
	readPos  atomic.Int64

	// serialises Read(), Flush() and Close(). the producer never takes this lock
	consumer sync.Mutex

	closed atomic.Bool

	producer      assert.Owner
	consumerOwner assert.Owner
}

// NewFIFO is the preferred method of initialisation for the FIFO type. The
// capacity is in bytes and must be positive.
func NewFIFO(capacity int) (*FIFO, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("fifo: %w: %d bytes", ErrAllocation, capacity)
	}

	return &FIFO{
		buffer:   make([]byte, capacity),
		capacity: int64(capacity),
	}, nil
}

func (f *FIFO) String() string {
	return fmt.Sprintf("%d/%d bytes", f.Used(), f.Size())
}

// Capacity returns the capacity of the queue as specified in NewFIFO().
func (f *FIFO) Capacity() int {
	return int(f.capacity)
}

// Size returns the maximum number of bytes that can be held in the queue. This
// is always one less than the capacity.
func (f *FIFO) Size() int {
	return int(f.capacity - 1)
}

// used is the number of bytes between the two cursor values
func (f *FIFO) used(w, r int64) int64 {
	return (w - r + f.capacity) % f.capacity
}

// Used returns the number of bytes waiting to be read.
func (f *FIFO) Used() int {
	if f.closed.Load() {
		return 0
	}
	return int(f.used(f.writePos.Load(), f.readPos.Load()))
}

// Free returns the number of bytes that can be written without truncation.
func (f *FIFO) Free() int {
	if f.closed.Load() {
		return 0
	}
	return f.Size() - f.Used()
}

// Write copies as many bytes of p as will fit into the queue. Returns the
// number of bytes actually written, which will be less than len(p) if the
// queue does not have enough free space.
//
// Must only be called by the producer.
func (f *FIFO) Write(p []byte) int {
	if f.closed.Load() {
		return 0
	}
	f.producer.Check("fifo producer")

	w := f.writePos.Load()
	r := f.readPos.Load()

	n := min(int64(len(p)), f.capacity-1-f.used(w, r))
	if n <= 0 {
		return 0
	}

	// copy to end of buffer and then wrap around to the start if necessary
	c := min(n, f.capacity-w)
	copy(f.buffer[w:w+c], p[:c])
	copy(f.buffer, p[c:n])

	// publishing the new cursor position after the copy means the consumer
	// will never see the cursor before it sees the data
	f.writePos.Store((w + n) % f.capacity)

	return int(n)
}

// Read copies up to len(p) of the oldest bytes in the queue into p. Returns the
// number of bytes read, which will be zero if the queue is empty.
//
// Must only be called by the consumer.
func (f *FIFO) Read(p []byte) int {
	f.consumer.Lock()
	defer f.consumer.Unlock()

	if f.closed.Load() {
		return 0
	}
	f.consumerOwner.Check("fifo consumer")

	r := f.readPos.Load()
	w := f.writePos.Load()

	n := min(int64(len(p)), f.used(w, r))
	if n <= 0 {
		return 0
	}

	c := min(n, f.capacity-r)
	copy(p[:c], f.buffer[r:r+c])
	copy(p[c:n], f.buffer)

	f.readPos.Store((r + n) % f.capacity)

	return int(n)
}

// Flush discards all data in the queue.
//
// The read cursor is moved to the write cursor rather than both cursors being
// set to zero. the write cursor belongs to the producer and the producer might
// be in the middle of a Write()
func (f *FIFO) Flush() {
	f.consumer.Lock()
	defer f.consumer.Unlock()
	f.readPos.Store(f.writePos.Load())
}

// Close the queue. All subsequent calls to Write() and Read() will transfer
// zero bytes.
//
// The backing array is not released here. A Write() that passed the closed
// check before Close() was called may still be copying into it. The storage is
// reclaimed by the garbage collector once the FIFO itself is dropped.
func (f *FIFO) Close() {
	f.closed.Store(true)

	f.consumer.Lock()
	defer f.consumer.Unlock()
	f.producer.Release()
	f.consumerOwner.Release()
}
