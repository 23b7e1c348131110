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

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/soundpipe/fifo"
	"github.com/jetsetilly/soundpipe/logger"
	"github.com/jetsetilly/soundpipe/playback"
	"github.com/jetsetilly/soundpipe/preferences"
	"github.com/jetsetilly/soundpipe/sound"
)

// Name of the device as registered with a sound.Registry.
const Name = "pipe"

const logTag = "sounddrv"

// Sentinel errors returned by Init().
var (
	ErrQueueAllocation     = errors.New("cannot allocate sample queue")
	ErrEngineUninitialised = errors.New("playback engine is not initialised")
)

// Engine is the part of the playback engine used by the driver.
type Engine interface {
	SetCallback(f playback.FillFunc)
	Pause()
	Resume()
	Samples() int
}

// Option configures a Driver.
type Option func(*Driver)

// WithSleep replaces the function used to wait between write attempts when
// the queue is full. The default is time.Sleep.
func WithSleep(sleep func(time.Duration)) Option {
	return func(drv *Driver) {
		drv.sleep = sleep
	}
}

// Driver implements the sound.Device interface.
type Driver struct {
	eng   Engine
	prefs *preferences.Preferences
	sleep func(time.Duration)

	// the queue is replaced on every Init() and cleared on Close(). the fill
	// callback may still be running from the previous session so access must
	// be atomic
	queue atomic.Pointer[fifo.FIFO]

	initialised atomic.Bool
	rendering   atomic.Bool

	// conversion buffers. wbuf is only used by Write() and rbuf is only used
	// by fill()
	wbuf []byte
	rbuf []byte

	stats struct {
		written   atomic.Uint64
		abandoned atomic.Uint64
		retries   atomic.Uint64
		fills     atomic.Uint64
		underruns atomic.Uint64
		partials  atomic.Uint64
	}
}

// NewDriver is the preferred method of initialisation for the Driver type.
// The engine should already be initialised but it is not required until
// Init() is called.
func NewDriver(eng Engine, prefs *preferences.Preferences, opts ...Option) *Driver {
	drv := &Driver{
		eng:   eng,
		prefs: prefs,
		sleep: time.Sleep,
	}
	for _, o := range opts {
		o(drv)
	}
	return drv
}

// Name implements the sound.Device interface.
func (drv *Driver) Name() string {
	return Name
}

// Init implements the sound.Device interface.
//
// The sample rate and channel count are fixed by the driver. The fragment
// size is set to the size of the engine's buffers in bytes. The fragment
// count is taken from the preferences if the requested value is zero.
func (drv *Driver) Init(p *sound.Params) error {
	if drv.initialised.Load() {
		drv.Close()
	}

	samples := drv.eng.Samples()
	if samples == 0 {
		return fmt.Errorf("sounddrv: %w", ErrEngineUninitialised)
	}

	p.Speed = drv.prefs.SampleRate.Get().(int)
	p.Channels = 1
	p.FragmentSize = samples * 2
	if p.FragmentCount <= 0 {
		p.FragmentCount = drv.prefs.Fragments.Get().(int)
	}

	q, err := fifo.NewFIFO(p.FragmentCount*p.Channels*p.FragmentSize + 1)
	if err != nil {
		return fmt.Errorf("sounddrv: %w: %w", ErrQueueAllocation, err)
	}

	drv.queue.Store(q)
	drv.eng.SetCallback(drv.fill)
	drv.rendering.Store(true)
	drv.initialised.Store(true)
	drv.eng.Resume()

	logger.Logf(logger.Allow, logTag, "queue of %d bytes", q.Size())

	return nil
}

// Write implements the sound.Device interface.
//
// Blocks until all samples have been queued or until output is suspended.
// Samples that could not be queued because output was suspended are dropped.
// Writing to a driver that has not been initialised, or that has been closed,
// does nothing.
func (drv *Driver) Write(samples []int16) error {
	if !drv.initialised.Load() {
		return nil
	}
	q := drv.queue.Load()
	if q == nil {
		return nil
	}

	sz := len(samples) * 2
	if cap(drv.wbuf) < sz {
		drv.wbuf = make([]byte, sz)
	}
	b := drv.wbuf[:sz]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(s))
	}

	delay := drv.prefs.RetryDelayInterval()

	for len(b) > 0 && drv.rendering.Load() {
		n := q.Write(b)
		if n == 0 {
			drv.stats.retries.Add(1)
			drv.sleep(delay)
			continue
		}
		b = b[n:]
		drv.stats.written.Add(uint64(n))
	}

	if len(b) > 0 {
		drv.stats.abandoned.Add(uint64(len(b)))
	}

	return nil
}

// Suspend implements the sound.Device interface. Any Write() in progress will
// return promptly.
func (drv *Driver) Suspend() error {
	drv.rendering.Store(false)
	drv.eng.Pause()
	return nil
}

// Resume implements the sound.Device interface.
func (drv *Driver) Resume() error {
	if !drv.initialised.Load() {
		return nil
	}
	drv.rendering.Store(true)
	drv.eng.Resume()
	return nil
}

// Close implements the sound.Device interface. The playback engine is paused
// but not shut down.
//
// Close should not be called while a Write() is in progress. If it is, the
// Write() returns early and its remaining samples are counted as abandoned.
func (drv *Driver) Close() {
	if !drv.initialised.Load() {
		return
	}

	drv.rendering.Store(false)
	drv.initialised.Store(false)
	drv.eng.Pause()
	drv.eng.SetCallback(nil)

	if q := drv.queue.Swap(nil); q != nil {
		q.Close()
	}

	logger.Logf(logger.Allow, logTag, "closed: %s", drv.Stats())
}

// Flush implements the sound.Flusher interface. Samples waiting in the queue
// are discarded.
func (drv *Driver) Flush() {
	if q := drv.queue.Load(); q != nil {
		q.Flush()
	}
}

// fill is the playback engine callback
func (drv *Driver) fill(buf []int16) {
	drv.stats.fills.Add(1)

	q := drv.queue.Load()
	if q == nil || q.Used() == 0 {
		clear(buf)
		drv.stats.underruns.Add(1)
		return
	}

	sz := len(buf) * 2
	if cap(drv.rbuf) < sz {
		drv.rbuf = make([]byte, sz)
	}

	// read whole samples only
	n := q.Read(drv.rbuf[:min(sz, q.Used()&^1)])
	n /= 2
	for i := range n {
		buf[i] = int16(binary.LittleEndian.Uint16(drv.rbuf[i*2:]))
	}

	// never leave stale data in the buffer
	if n < len(buf) {
		clear(buf[n:])
		drv.stats.partials.Add(1)
	}
}
