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

package playback_test

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jetsetilly/soundpipe/playback"
	"github.com/jetsetilly/soundpipe/test"
)

// fakeChannel records every call made to it. output is paced by a short sleep
// in the same way that real hardware would block
type fakeChannel struct {
	crit sync.Mutex

	reserveErr error
	outputErrs int

	reserved int
	released int
	samples  int
	format   playback.Format

	// address of the first element and the first value of every buffer
	// passed to Output()
	addresses []*int16
	values    []int16
	volumes   []int
}

func (ch *fakeChannel) Reserve(samples int, format playback.Format) error {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	if ch.reserveErr != nil {
		return ch.reserveErr
	}
	ch.reserved++
	ch.samples = samples
	ch.format = format
	return nil
}

func (ch *fakeChannel) Output(volume int, buf []int16) error {
	time.Sleep(100 * time.Microsecond)

	ch.crit.Lock()
	defer ch.crit.Unlock()
	if ch.outputErrs > 0 {
		ch.outputErrs--
		return errors.New("test output error")
	}
	ch.addresses = append(ch.addresses, &buf[0])
	ch.values = append(ch.values, buf[0])
	ch.volumes = append(ch.volumes, volume)
	return nil
}

func (ch *fakeChannel) Release() error {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	ch.released++
	return nil
}

func (ch *fakeChannel) outputs() int {
	ch.crit.Lock()
	defer ch.crit.Unlock()
	return len(ch.addresses)
}

// waitFor polls the condition until it is true or until the test has waited
// for too long
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestInit(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)
	test.ExpectEquality(t, eng.Samples(), 0)

	// zero means the default number of samples
	n, err := eng.Init(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, playback.DefaultSamples)
	test.ExpectEquality(t, eng.Samples(), playback.DefaultSamples)
	test.ExpectEquality(t, ch.samples, playback.DefaultSamples)
	test.ExpectEquality(t, ch.format.SampleRate, playback.DefaultSampleRate)
	test.ExpectEquality(t, ch.format.Channels, 1)

	// the engine starts paused
	test.ExpectEquality(t, eng.State(), playback.Paused)

	eng.Shutdown()
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)
	test.ExpectEquality(t, ch.reserved, 1)
	test.ExpectEquality(t, ch.released, 1)

	// shutdown is safe to call more than once
	eng.Shutdown()
	test.ExpectEquality(t, ch.released, 1)
}

func TestAlignment(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))

	for _, v := range []struct{ requested, actual int }{
		{requested: 1, actual: 64},
		{requested: 64, actual: 64},
		{requested: 65, actual: 128},
		{requested: 320, actual: 320},
		{requested: 500, actual: 512},
	} {
		n, err := eng.Init(v.requested)
		test.DemandSuccess(t, err, v.requested)
		test.ExpectEquality(t, n, v.actual, v.requested)
		eng.Shutdown()
	}

	eng = playback.NewEngine(ch, playback.WithAlignment(100), playback.WithPollInterval(time.Millisecond))
	n, err := eng.Init(150)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 200)
	eng.Shutdown()
}

func TestAllocationFailure(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch)

	n, err := eng.Init(playback.MaxSamples + 1)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrAllocation))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)

	// a count so large that rounding up to the alignment would overflow
	n, err = eng.Init(math.MaxInt)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrAllocation))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)

	n, err = eng.Init(math.MaxInt - 10)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrAllocation))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)

	// the channel was never reserved
	test.ExpectEquality(t, ch.reserved, 0)
	test.ExpectEquality(t, ch.released, 0)

	// an alignment larger than the maximum sample count
	eng = playback.NewEngine(ch, playback.WithAlignment(math.MaxInt))
	n, err = eng.Init(1)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrAllocation))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)
	test.ExpectEquality(t, ch.reserved, 0)
}

func TestReservationFailure(t *testing.T) {
	ch := &fakeChannel{reserveErr: errors.New("test reservation error")}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))

	n, err := eng.Init(0)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrChannelReservation))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)
	test.ExpectEquality(t, ch.released, 0)

	// the engine can be initialised once the channel is available
	ch.reserveErr = nil
	n, err = eng.Init(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, playback.DefaultSamples)
	eng.Shutdown()
	test.ExpectEquality(t, ch.released, 1)
}

func TestLauncherFailure(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch, playback.WithLauncher(func(_ func()) error {
		return errors.New("test launcher error")
	}))

	n, err := eng.Init(0)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrContextStart))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)

	// the reserved channel has been released
	test.ExpectEquality(t, ch.reserved, 1)
	test.ExpectEquality(t, ch.released, 1)

	// shutdown after a failed init does nothing
	eng.Shutdown()
	test.ExpectEquality(t, ch.released, 1)
}

func TestStartTimeout(t *testing.T) {
	ch := &fakeChannel{}

	// the launcher claims success but never runs the goroutine
	eng := playback.NewEngine(ch,
		playback.WithStartTimeout(10*time.Millisecond),
		playback.WithLauncher(func(_ func()) error {
			return nil
		}))

	n, err := eng.Init(0)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrContextStart))
	test.ExpectEquality(t, eng.State(), playback.Uninitialised)
	test.ExpectEquality(t, ch.released, 1)
}

func TestLateStart(t *testing.T) {
	ch := &fakeChannel{}

	// the goroutine starts only after Init() has given up waiting for it
	var late sync.WaitGroup
	late.Add(1)
	eng := playback.NewEngine(ch,
		playback.WithStartTimeout(10*time.Millisecond),
		playback.WithLauncher(func(run func()) error {
			go func() {
				defer late.Done()
				time.Sleep(50 * time.Millisecond)
				run()
			}()
			return nil
		}))

	_, err := eng.Init(0)
	test.ExpectSuccess(t, errors.Is(err, playback.ErrContextStart))
	eng.Resume()

	// the late goroutine must exit immediately without touching the channel
	late.Wait()
	test.ExpectEquality(t, ch.outputs(), 0)
}

func TestPaused(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))
	_, err := eng.Init(0)
	test.DemandSuccess(t, err)
	defer eng.Shutdown()

	// nothing is output while paused but the loop is polling
	waitFor(t, func() bool { return eng.Stats().Polls >= 5 })
	test.ExpectEquality(t, ch.outputs(), 0)
	test.ExpectEquality(t, eng.Stats().Outputs, uint64(0))

	eng.Resume()
	test.ExpectEquality(t, eng.State(), playback.Running)
	waitFor(t, func() bool { return ch.outputs() >= 5 })

	eng.Pause()
	test.ExpectEquality(t, eng.State(), playback.Paused)

	// allow any in-progress iteration to complete
	time.Sleep(10 * time.Millisecond)
	count := ch.outputs()
	time.Sleep(10 * time.Millisecond)
	test.ExpectEquality(t, ch.outputs(), count)
}

func TestAlternation(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))
	_, err := eng.Init(0)
	test.DemandSuccess(t, err)

	// each fill is numbered so the order of outputs can be checked
	var fill int16
	eng.SetCallback(func(buf []int16) {
		fill++
		for i := range buf {
			buf[i] = fill
		}
	})
	eng.Resume()
	waitFor(t, func() bool { return ch.outputs() >= 10 })
	eng.Shutdown()

	test.DemandInequality(t, ch.addresses[0], ch.addresses[1])
	for i := range ch.addresses {
		test.ExpectEquality(t, ch.addresses[i], ch.addresses[i%2], i)
		test.ExpectEquality(t, ch.values[i], int16(i+1), i)
		test.ExpectEquality(t, ch.volumes[i], playback.MaxVolume, i)
	}

	s := eng.Stats()
	test.ExpectEquality(t, s.Fills, uint64(len(ch.addresses)))
	test.ExpectEquality(t, s.Silences, uint64(0))
}

func TestSilence(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))
	_, err := eng.Init(0)
	test.DemandSuccess(t, err)

	// register and then remove a callback that would output non-zero
	// values. without a callback the buffers must be filled with silence
	eng.SetCallback(func(buf []int16) {
		for i := range buf {
			buf[i] = 100
		}
	})
	eng.SetCallback(nil)

	eng.Resume()
	waitFor(t, func() bool { return ch.outputs() >= 4 })
	eng.Shutdown()

	for i, v := range ch.values {
		test.ExpectEquality(t, v, int16(0), i)
	}
	test.ExpectEquality(t, eng.Stats().Fills, uint64(0))
	test.ExpectInequality(t, eng.Stats().Silences, uint64(0))
}

func TestOutputErrors(t *testing.T) {
	ch := &fakeChannel{outputErrs: 3}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))
	_, err := eng.Init(0)
	test.DemandSuccess(t, err)

	// output errors are not fatal. the loop carries on once the channel
	// recovers
	eng.Resume()
	waitFor(t, func() bool { return ch.outputs() >= 2 })
	eng.Shutdown()

	test.ExpectEquality(t, eng.Stats().Errors, uint64(3))
	test.ExpectEquality(t, eng.Stats().Outputs, uint64(ch.outputs()))
}

func TestReinitialise(t *testing.T) {
	ch := &fakeChannel{}
	eng := playback.NewEngine(ch, playback.WithPollInterval(time.Millisecond))

	_, err := eng.Init(64)
	test.DemandSuccess(t, err)

	// a second init replaces the first session
	n, err := eng.Init(128)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 128)
	test.ExpectEquality(t, ch.reserved, 2)
	test.ExpectEquality(t, ch.released, 1)

	eng.Shutdown()
	test.ExpectEquality(t, ch.released, 2)
}

func TestApplyVolume(t *testing.T) {
	test.ExpectEquality(t, playback.ApplyVolume(playback.MaxVolume, -32768), int16(-32768))
	test.ExpectEquality(t, playback.ApplyVolume(playback.MaxVolume, 32767), int16(32767))
	test.ExpectEquality(t, playback.ApplyVolume(playback.MaxVolume/2, 1000), int16(500))
	test.ExpectEquality(t, playback.ApplyVolume(0, 1000), int16(0))
}
