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

package fifo_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/jetsetilly/soundpipe/fifo"
	"github.com/jetsetilly/soundpipe/test"
)

func sequence(start int, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte((start + i) % 251)
	}
	return b
}

func TestAllocation(t *testing.T) {
	_, err := fifo.NewFIFO(0)
	test.ExpectSuccess(t, errors.Is(err, fifo.ErrAllocation))

	_, err = fifo.NewFIFO(-1)
	test.ExpectSuccess(t, errors.Is(err, fifo.ErrAllocation))

	_, err = fifo.NewFIFO(fifo.MaxCapacity + 1)
	test.ExpectSuccess(t, errors.Is(err, fifo.ErrAllocation))

	f, err := fifo.NewFIFO(1025)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Capacity(), 1025)
	test.ExpectEquality(t, f.Size(), 1024)
	test.ExpectEquality(t, f.Used(), 0)
	test.ExpectEquality(t, f.Free(), 1024)
}

func TestFillAndDrain(t *testing.T) {
	f, err := fifo.NewFIFO(1025)
	test.DemandSuccess(t, err)

	// the queue can only take the usable capacity of 1024 bytes
	data := sequence(0, 2000)
	test.ExpectEquality(t, f.Write(data), 1024)
	test.ExpectEquality(t, f.Used(), 1024)
	test.ExpectEquality(t, f.Free(), 0)

	// a full queue takes nothing more
	test.ExpectEquality(t, f.Write(data), 0)

	// the first 500 bytes read match the first 500 bytes written
	out := make([]byte, 500)
	test.ExpectEquality(t, f.Read(out), 500)
	test.ExpectEquality(t, string(out), string(data[:500]))
	test.ExpectEquality(t, f.Used(), 1024-500)

	// the remainder of what was written
	out = make([]byte, 2000)
	test.ExpectEquality(t, f.Read(out), 524)
	test.ExpectEquality(t, string(out[:524]), string(data[500:1024]))
	test.ExpectEquality(t, f.Used(), 0)

	// an empty queue gives nothing
	test.ExpectEquality(t, f.Read(out), 0)
}

func TestRunningTotal(t *testing.T) {
	f, err := fifo.NewFIFO(100)
	test.DemandSuccess(t, err)

	// used() is always the sum of bytes written less the sum of bytes read
	var written, read int
	out := make([]byte, 100)
	for i := range 200 {
		written += f.Write(sequence(written, i%37))
		read += f.Read(out[:i%23])
		test.ExpectEquality(t, f.Used(), written-read, i)
		test.ExpectEquality(t, f.Used()+f.Free(), f.Size(), i)
	}
}

func TestWrapAround(t *testing.T) {
	f, err := fifo.NewFIFO(16)
	test.DemandSuccess(t, err)

	// move the cursors near the end of the buffer
	out := make([]byte, 16)
	test.ExpectEquality(t, f.Write(sequence(0, 12)), 12)
	test.ExpectEquality(t, f.Read(out[:12]), 12)

	// this write and read must both wrap around the end of the buffer
	data := sequence(100, 10)
	test.ExpectEquality(t, f.Write(data), 10)
	test.ExpectEquality(t, f.Read(out[:10]), 10)
	test.ExpectEquality(t, string(out[:10]), string(data))

	// bytes come out in the order they went in over many wraps
	var w, r int
	for range 100 {
		w += f.Write(sequence(w, 7))
		n := f.Read(out[:5])
		test.ExpectEquality(t, string(out[:n]), string(sequence(r, n)))
		r += n
	}
}

func TestTruncatedWrite(t *testing.T) {
	f, err := fifo.NewFIFO(64)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.Write(sequence(0, 40)), 40)

	// a write larger than the free space takes exactly the free space
	free := f.Free()
	test.ExpectEquality(t, f.Write(sequence(40, 40)), free)
	test.ExpectEquality(t, f.Used(), f.Size())
}

func TestFlush(t *testing.T) {
	f, err := fifo.NewFIFO(64)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.Write(sequence(0, 50)), 50)
	f.Flush()
	test.ExpectEquality(t, f.Used(), 0)
	test.ExpectEquality(t, f.Free(), f.Size())

	// nothing from before the flush can be read
	out := make([]byte, 64)
	test.ExpectEquality(t, f.Read(out), 0)

	// the queue is usable after a flush and data written after the flush
	// is read back intact
	data := sequence(7, 30)
	test.ExpectEquality(t, f.Write(data), 30)
	test.ExpectEquality(t, f.Read(out), 30)
	test.ExpectEquality(t, string(out[:30]), string(data))
}

func TestClose(t *testing.T) {
	f, err := fifo.NewFIFO(64)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.Write(sequence(0, 10)), 10)
	f.Close()

	out := make([]byte, 64)
	test.ExpectEquality(t, f.Read(out), 0)
	test.ExpectEquality(t, f.Write(sequence(0, 10)), 0)
	test.ExpectEquality(t, f.Used(), 0)
	test.ExpectEquality(t, f.Free(), 0)

	// flushing a closed queue is harmless
	f.Flush()
}

func TestCloseDuringWrite(t *testing.T) {
	for range 100 {
		f, err := fifo.NewFIFO(257)
		test.DemandSuccess(t, err)

		var wg sync.WaitGroup
		wg.Add(1)

		// a write can only transfer zero bytes when the queue is full, in which
		// case a read transfers something. both returning zero means the
		// queue has been closed
		go func() {
			defer wg.Done()
			out := make([]byte, 100)
			b := sequence(0, 200)
			for {
				if f.Write(b) == 0 && f.Read(out) == 0 {
					return
				}
				f.Read(out)
			}
		}()

		f.Close()
		wg.Wait()

		test.ExpectEquality(t, f.Used(), 0)
		test.ExpectEquality(t, f.Write(sequence(0, 10)), 0)
	}
}

func TestConcurrentTransfer(t *testing.T) {
	f, err := fifo.NewFIFO(1025)
	test.DemandSuccess(t, err)

	const total = 1 << 20

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var w int
		for w < total {
			w += f.Write(sequence(w, min(333, total-w)))
		}
	}()

	var mismatch int
	go func() {
		defer wg.Done()
		out := make([]byte, 257)
		var r int
		for r < total {
			n := f.Read(out)
			if string(out[:n]) != string(sequence(r, n)) {
				mismatch++
			}
			r += n
		}
	}()

	wg.Wait()
	test.ExpectEquality(t, mismatch, 0)
	test.ExpectEquality(t, f.Used(), 0)
}
