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

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/soundpipe/logger"
)

// Sentinel errors returned by Init(). Always wrapped with additional context.
var (
	ErrAllocation         = errors.New("cannot allocate buffers")
	ErrChannelReservation = errors.New("cannot reserve channel")
	ErrContextStart       = errors.New("cannot start playback goroutine")
)

// Default values used by NewEngine() and Init().
const (
	DefaultSamples      = 512
	DefaultAlignment    = 64
	DefaultPollInterval = 20 * time.Millisecond
	DefaultStartTimeout = time.Second
)

// MaxSamples is the largest number of samples per buffer accepted by Init().
const MaxSamples = 1 << 16

const logTag = "playback"

// session is the lifetime of one successful Init(). the playback goroutine
// only refers to the session it was started with, so a goroutine that is
// slow to start can never see the buffers of a later session
type session struct {
	samples int
	buffers [2][]int16

	stop    atomic.Bool
	started chan struct{}
	done    chan struct{}
}

// Engine drives a Channel from a dedicated playback goroutine.
type Engine struct {
	ch           Channel
	format       Format
	alignment    int
	pollInterval time.Duration
	startTimeout time.Duration
	launch       Launcher

	// crit serialises Init() and Shutdown()
	crit sync.Mutex
	sess *session

	// the current session is also available atomically for State() and
	// Samples(), which may be called from any goroutine
	current atomic.Pointer[session]

	callback     atomic.Pointer[FillFunc]
	paused       atomic.Bool
	shuttingDown atomic.Bool

	outputs  atomic.Uint64
	fills    atomic.Uint64
	silences atomic.Uint64
	errors   atomic.Uint64
	polls    atomic.Uint64
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(ch Channel, opts ...Option) *Engine {
	e := &Engine{
		ch: ch,
		format: Format{
			SampleRate: DefaultSampleRate,
			Channels:   1,
		},
		alignment:    DefaultAlignment,
		pollInterval: DefaultPollInterval,
		startTimeout: DefaultStartTimeout,
		launch:       goLauncher,
	}
	for _, o := range opts {
		o(e)
	}
	e.paused.Store(true)
	return e
}

// Init reserves the channel and starts the playback goroutine in the paused
// state. The requested number of samples is rounded up to the engine's
// alignment and a request of zero or less means DefaultSamples.
//
// Returns the actual number of samples per buffer. On error the returned
// value is zero and the engine is left uninitialised. Init() can be called
// again after an error.
//
// Calling Init() on an engine that is already initialised shuts down the
// existing playback goroutine first.
func (e *Engine) Init(requested int) (int, error) {
	e.crit.Lock()
	defer e.crit.Unlock()

	if e.sess != nil {
		logger.Log(logger.Allow, logTag, "reinitialising")
		e.shutdown()
	}

	if requested <= 0 {
		requested = DefaultSamples
	}
	if requested > MaxSamples {
		return 0, fmt.Errorf("playback: %w: %d samples", ErrAllocation, requested)
	}

	// round up to the alignment. this form cannot overflow even for a very
	// large alignment value
	n := requested
	if r := n % e.alignment; r != 0 {
		n += e.alignment - r
	}
	if n > MaxSamples {
		return 0, fmt.Errorf("playback: %w: %d samples", ErrAllocation, n)
	}

	// one contiguous block split into two halves. make() zeroes the memory so
	// the very first output of each buffer is silence
	storage := make([]int16, n*2)
	sess := &session{
		samples: n,
		buffers: [2][]int16{storage[:n:n], storage[n:]},
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}

	if err := e.ch.Reserve(n, e.format); err != nil {
		return 0, fmt.Errorf("playback: %w: %w", ErrChannelReservation, err)
	}

	e.paused.Store(true)
	e.outputs.Store(0)
	e.fills.Store(0)
	e.silences.Store(0)
	e.errors.Store(0)
	e.polls.Store(0)

	rollback := func(err error) (int, error) {
		sess.stop.Store(true)
		if rerr := e.ch.Release(); rerr != nil {
			logger.Log(logger.Allow, logTag, rerr)
		}
		return 0, err
	}

	if err := e.launch(func() { e.loop(sess) }); err != nil {
		return rollback(fmt.Errorf("playback: %w: %w", ErrContextStart, err))
	}

	select {
	case <-sess.started:
	case <-time.After(e.startTimeout):
		return rollback(fmt.Errorf("playback: %w: no response after %v", ErrContextStart, e.startTimeout))
	}

	e.sess = sess
	e.current.Store(sess)

	logger.Logf(logger.Allow, logTag, "initialised with %d samples per buffer", n)

	return n, nil
}

// SetCallback registers the function used to fill buffers. A nil function
// means the engine will output silence. Can be called at any time from any
// goroutine.
func (e *Engine) SetCallback(f FillFunc) {
	if f == nil {
		e.callback.Store(nil)
		return
	}
	e.callback.Store(&f)
}

// Pause the playback loop. The hardware channel will stop receiving data once
// the current iteration completes.
func (e *Engine) Pause() {
	e.paused.Store(true)
}

// Resume the playback loop.
func (e *Engine) Resume() {
	e.paused.Store(false)
}

// Shutdown stops the playback goroutine, waits for it to finish, and then
// releases the channel. It is safe to call Shutdown() more than once and on
// an engine that failed to initialise.
func (e *Engine) Shutdown() {
	e.crit.Lock()
	defer e.crit.Unlock()
	e.shutdown()
}

// shutdown must be called with the critical section locked
func (e *Engine) shutdown() {
	if e.sess == nil {
		return
	}

	e.shuttingDown.Store(true)
	defer e.shuttingDown.Store(false)

	e.sess.stop.Store(true)
	<-e.sess.done

	if err := e.ch.Release(); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}

	e.sess = nil
	e.current.Store(nil)
	e.paused.Store(true)

	logger.Log(logger.Allow, logTag, "shutdown")
}

// State returns the current state of the engine.
func (e *Engine) State() State {
	if e.shuttingDown.Load() {
		return ShuttingDown
	}
	if e.current.Load() == nil {
		return Uninitialised
	}
	if e.paused.Load() {
		return Paused
	}
	return Running
}

// Samples returns the number of samples per buffer. Zero if the engine is not
// initialised.
func (e *Engine) Samples() int {
	if s := e.current.Load(); s != nil {
		return s.samples
	}
	return 0
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Outputs:  e.outputs.Load(),
		Fills:    e.fills.Load(),
		Silences: e.silences.Load(),
		Errors:   e.errors.Load(),
		Polls:    e.polls.Load(),
	}
}

// loop is the playback goroutine
func (e *Engine) loop(sess *session) {
	close(sess.started)
	defer close(sess.done)

	var parity int

	for !sess.stop.Load() {
		if e.paused.Load() {
			e.polls.Add(1)
			time.Sleep(e.pollInterval)
			continue
		}

		buf := sess.buffers[parity]

		if f := e.callback.Load(); f != nil {
			(*f)(buf)
			e.fills.Add(1)
		} else {
			clear(buf)
			e.silences.Add(1)
		}

		// a failed output is treated in the same way as an underrun. the
		// logger will fold repeated errors into a single entry
		if err := e.ch.Output(MaxVolume, buf); err != nil {
			e.errors.Add(1)
			logger.Log(logger.Allow, logTag, err)
			time.Sleep(e.pollInterval)
		} else {
			e.outputs.Add(1)
		}

		parity ^= 1
	}
}
