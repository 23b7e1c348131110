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

import "time"

// Launcher starts the playback goroutine. The run function must be called
// exactly once, on a goroutine of its own. An error indicates that the
// goroutine could not be started.
type Launcher func(run func()) error

func goLauncher(run func()) error {
	go run()
	return nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithFormat sets the format given to Channel.Reserve(). Default is mono at
// DefaultSampleRate.
func WithFormat(format Format) Option {
	return func(e *Engine) {
		e.format = format
	}
}

// WithAlignment sets the sample count granularity. The number of samples
// requested in Init() is rounded up to a multiple of the alignment. Default
// is DefaultAlignment.
func WithAlignment(alignment int) Option {
	return func(e *Engine) {
		e.alignment = max(1, alignment)
	}
}

// WithPollInterval sets how long the playback goroutine sleeps between
// checks while paused. Default is DefaultPollInterval.
func WithPollInterval(interval time.Duration) Option {
	return func(e *Engine) {
		e.pollInterval = interval
	}
}

// WithStartTimeout sets how long Init() waits for the playback goroutine to
// report that it has started.
func WithStartTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.startTimeout = timeout
	}
}

// WithLauncher replaces the function used to start the playback goroutine.
func WithLauncher(launch Launcher) Option {
	return func(e *Engine) {
		e.launch = launch
	}
}
