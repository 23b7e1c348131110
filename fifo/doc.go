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

// Package fifo implements the bounded sample queue that sits between the
// emulation (the producer) and the playback engine (the consumer).
//
// The queue is a byte oriented ring buffer of fixed capacity. One byte of the
// capacity is never used so that a full queue can be told apart from an empty
// queue. A queue created with a capacity of 1025 bytes can therefore hold 1024
// bytes of sample data.
//
// Neither Write() nor Read() ever block. Backpressure is signalled by the
// number of bytes actually transferred, which may be less than requested and
// may be zero. Retry policy is entirely the caller's concern.
//
// The queue is a single-producer/single-consumer design. Exactly one goroutine
// may call Write() and exactly one goroutine may call Read(). The cursors are
// shared between the two goroutines and are updated atomically, after the
// data they cover has been copied. Building with the "assertions" tag will
// cause a panic if a second goroutine takes either role.
//
// Flush() can be called from either side. It is serialised with Read() and is
// safe alongside a Write() in progress.
package fifo
