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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/soundpipe/easyterm"
	"github.com/jetsetilly/soundpipe/logger"
	"github.com/jetsetilly/soundpipe/modalflag"
	"github.com/jetsetilly/soundpipe/monitor"
	"github.com/jetsetilly/soundpipe/output"
	"github.com/jetsetilly/soundpipe/paths"
	"github.com/jetsetilly/soundpipe/playback"
	"github.com/jetsetilly/soundpipe/preferences"
	"github.com/jetsetilly/soundpipe/prefs"
	"github.com/jetsetilly/soundpipe/sound"
	"github.com/jetsetilly/soundpipe/sounddrv"
	"github.com/jetsetilly/soundpipe/source"
	"github.com/jetsetilly/soundpipe/statsview"
	"github.com/jetsetilly/soundpipe/version"
	"golang.org/x/sync/errgroup"
)

const logTag = "soundpipe"

// amplitude of the test tone
const toneAmplitude = 0x2000

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("PLAY", "DEVICES", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md)

	case "DEVICES":
		err = devices(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func play(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("The optional file argument is a WAV, MP3 or OGG file to loop. A test tone, or\nan arpeggio with the -psg flag, is played if no file is given.")

	backend := md.AddString("backend", "", fmt.Sprintf("output backend: %s", strings.Join(output.Backends, ", ")))
	wav := md.AddString("wav", "", "filename for the wav backend (implies -backend wav)")
	unpaced := md.AddBool("unpaced", false, "write the wav file as quickly as possible")
	tone := md.AddFloat64("tone", 440.0, "frequency of the test tone")
	square := md.AddBool("square", false, "test tone is a square wave")
	psg := md.AddBool("psg", false, "play an arpeggio on an emulated SN76489 instead of the test tone")
	duration := md.AddDuration("duration", 0, "stop playing after duration. zero plays until quit")
	tui := md.AddBool("tui", false, "show the pipeline monitor")
	log := md.AddBool("log", false, "echo debugging log to stderr")
	overrides := md.AddString("prefs", "", "preference overrides. for example \"sound.backend::oto; sound.samples::512\"")
	mapFile := md.AddString("memviz", "", "write a graphviz map of the pipeline to file")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout)
	}

	if *overrides != "" {
		prefs.PushCommandLineStack(*overrides)
	}

	pref, err := preferences.NewPreferences()
	if err != nil {
		return err
	}
	if err := pref.ApplyCommandLine(); err != nil {
		return err
	}

	// flags take priority over the preferences
	if *wav != "" {
		if err := pref.Set(preferences.KeyBackend, output.Wav); err != nil {
			return err
		}
	}
	if *backend != "" {
		if err := pref.Set(preferences.KeyBackend, *backend); err != nil {
			return err
		}
	}

	rate := pref.SampleRate.Get().(int)

	var gen source.Generator
	var name string
	switch len(md.RemainingArgs()) {
	case 0:
		if *psg {
			name = "psg"
			gen = source.NewPSG([]float64{*tone, *tone * 5 / 4, *tone * 3 / 2, *tone * 2}, rate/8, rate)
			break // switch
		}
		name = "tone"
		shape := source.Sine
		if *square {
			shape = source.Square
		}
		gen = source.NewTone(*tone, toneAmplitude, shape, rate)
	case 1:
		smp, err := source.Load(md.GetArg(0), rate)
		if err != nil {
			return err
		}
		gen = source.NewLoop(smp)
		name = strings.TrimSuffix(filepath.Base(smp.Name), filepath.Ext(smp.Name))
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	pl, err := newPipeline(pref, gen, name, *wav, *unpaced)
	if err != nil {
		return err
	}
	defer pl.end()

	if *mapFile != "" {
		if err := pl.dump(*mapFile); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	if *tui {
		return pl.run(ctx, func(ctx context.Context) error {
			return monitor.Run(ctx, pl)
		})
	}
	return pl.run(ctx, pl.keys)
}

func devices(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Fprintln(md.Output, "backends:")
	for _, b := range output.Backends {
		fmt.Fprintf(md.Output, "  %s\n", b)
	}

	reg := sound.NewRegistry()
	if err := reg.Register(sounddrv.NewDriver(nil, nil)); err != nil {
		return err
	}

	fmt.Fprintln(md.Output, "sound devices:")
	for _, n := range reg.Names() {
		fmt.Fprintf(md.Output, "  %s\n", n)
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Fprintln(md.Output, r)
	}

	return nil
}

// pipeline connects a source of samples to an output backend.
type pipeline struct {
	pref    *preferences.Preferences
	backend string
	source  string

	eng  *playback.Engine
	drv  *sounddrv.Driver
	snd  *sound.Sound
	prod *source.Producer
}

func newPipeline(pref *preferences.Preferences, gen source.Generator, name string, wav string, unpaced bool) (*pipeline, error) {
	pl := &pipeline{
		pref:    pref,
		backend: pref.Backend.Get().(string),
		source:  fmt.Sprintf("%v", gen),
	}

	opts := output.Options{
		WavFilename: wav,
		Unpaced:     unpaced,
	}

	if pl.backend == output.Wav && opts.WavFilename == "" {
		fn, err := paths.CreateResourcePath("captures", paths.UniqueFilename("capture", name, "wav"))
		if err != nil {
			return nil, err
		}
		opts.WavFilename = fn
	}

	ch, err := output.NewChannel(pl.backend, opts)
	if err != nil {
		return nil, err
	}

	rate := pref.SampleRate.Get().(int)
	pl.eng = playback.NewEngine(ch,
		playback.WithFormat(playback.Format{SampleRate: rate, Channels: 1}),
		playback.WithAlignment(pref.Alignment.Get().(int)),
		playback.WithPollInterval(pref.PausePollInterval()),
	)

	// failure to initialise the engine is not fatal. the sound device will
	// fail to open and the pipeline will run without sound
	if _, err := pl.eng.Init(pref.Samples.Get().(int)); err != nil {
		fmt.Printf("* %v\n", err)
	}

	pl.drv = sounddrv.NewDriver(pl.eng, pref)

	reg := sound.NewRegistry()
	if err := reg.Register(pl.drv); err != nil {
		pl.eng.Shutdown()
		return nil, err
	}

	pl.snd = sound.NewSound(reg, pref)
	if err := pl.snd.Open(sounddrv.Name); err != nil {
		fmt.Printf("* %v\n", err)
	}

	pl.prod = source.NewProducer(pl.snd, gen, rate)

	if opts.WavFilename != "" {
		fmt.Printf("* capturing to %s\n", opts.WavFilename)
	}

	return pl, nil
}

// run the producer until the context is cancelled or until the control
// function returns.
func (pl *pipeline) run(ctx context.Context, control func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group

	g.Go(func() error {
		defer cancel()
		return pl.prod.Run(ctx)
	})

	g.Go(func() error {
		defer func() {
			cancel()

			// a producer blocked in a write will not see the cancellation
			// until the write completes. suspending output releases it
			_ = pl.snd.Suspend()
		}()
		return control(ctx)
	})

	return g.Wait()
}

// keys reads control keys from the terminal until quit is pressed or the
// context is cancelled.
func (pl *pipeline) keys(ctx context.Context) error {
	term, err := easyterm.NewTerminal(os.Stdin, os.Stdout)
	if err != nil {
		// not a terminal. play until the context is cancelled
		logger.Logf(logger.Allow, logTag, "no interactive control: %v", err)
		<-ctx.Done()
		return nil
	}

	if err := term.CBreakMode(); err != nil {
		return err
	}
	defer func() {
		_ = term.Flush()
		_ = term.CanonicalMode()
	}()

	term.Print("playing %s through %s. keys: p pause, r resume, f flush, s restart, q quit\n", pl.source, pl.backend)

	keys := term.Keys(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-keys:
			if !ok {
				<-ctx.Done()
				return nil
			}
			switch k {
			case 'p':
				pl.Pause()
				term.Print("paused\n")
			case 'r':
				pl.Resume()
				term.Print("resumed\n")
			case 'f':
				pl.Flush()
				term.Print("flushed\n")
			case 's':
				pl.Restart()
				term.Print("restarted\n")
			case 'q':
				return nil
			}
		}
	}
}

// dump a graphviz map of the pipeline to the named file.
func (pl *pipeline) dump(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("memviz: %w", err)
	}
	defer f.Close()

	memviz.Map(f, pl)

	return nil
}

// end the pipeline. the sound device is closed before the engine is shut
// down.
func (pl *pipeline) end() {
	pl.snd.Close()
	pl.eng.Shutdown()

	st := pl.drv.Stats()
	logger.Logf(logger.Allow, logTag, "%d frames: %s", pl.prod.Frames(), st)
	logger.Logf(logger.Allow, logTag, "engine: %s", pl.eng.Stats())
}

// Pause implements the monitor.Controls interface.
func (pl *pipeline) Pause() {
	if err := pl.snd.Suspend(); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}
}

// Resume implements the monitor.Controls interface.
func (pl *pipeline) Resume() {
	if err := pl.snd.Resume(); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}
}

// Flush implements the monitor.Controls interface.
func (pl *pipeline) Flush() {
	pl.snd.Flush()
}

// Restart implements the monitor.Controls interface.
func (pl *pipeline) Restart() {
	pl.prod.Restart()
}

// Status implements the monitor.Controls interface.
func (pl *pipeline) Status() monitor.Status {
	used, size := pl.drv.Queued()
	return monitor.Status{
		Backend:   pl.backend,
		Source:    pl.source,
		State:     pl.eng.State(),
		Samples:   pl.eng.Samples(),
		Engine:    pl.eng.Stats(),
		Driver:    pl.drv.Stats(),
		Queued:    used,
		QueueSize: size,
		Frames:    pl.prod.Frames(),
	}
}

