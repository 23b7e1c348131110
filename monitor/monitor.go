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

// Package monitor is a live terminal display of the sound pipeline. It shows
// the state of the playback engine, the fill level of the sample queue and
// the activity counters of the engine and driver.
//
// The display is updated ten times a second. Keys:
//
//	p  pause
//	r  resume
//	f  flush queued samples
//	q  quit
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jetsetilly/soundpipe/playback"
	"github.com/jetsetilly/soundpipe/sounddrv"
)

// Status of the pipeline as displayed by the monitor.
type Status struct {
	Backend string
	Source  string

	State   playback.State
	Samples int
	Engine  playback.Stats
	Driver  sounddrv.Stats

	// queue fill level in bytes
	Queued    int
	QueueSize int

	// number of frames run by the producer
	Frames uint64
}

// Controls are the pipeline functions used by the monitor.
type Controls interface {
	Pause()
	Resume()
	Flush()
	Restart()
	Status() Status
}

const refresh = 100 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model implements the tea.Model interface.
type Model struct {
	ctl    Controls
	status Status
	width  int
}

// NewModel is the preferred method of initialisation for the Model type.
func NewModel(ctl Controls) Model {
	return Model{
		ctl:    ctl,
		status: ctl.Status(),
	}
}

// Init implements the tea.Model interface.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements the tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			m.ctl.Pause()
		case "r":
			m.ctl.Resume()
		case "f":
			m.ctl.Flush()
		case "s":
			m.ctl.Restart()
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		m.status = m.ctl.Status()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.status = m.ctl.Status()
		return m, tick()
	}
	return m, nil
}

// View implements the tea.Model interface.
func (m Model) View() string {
	s := m.status

	var b strings.Builder
	fmt.Fprintf(&b, "soundpipe: %s -> %s\n", s.Source, s.Backend)
	fmt.Fprintf(&b, "engine:    %s, %d samples per buffer\n", s.State, s.Samples)
	fmt.Fprintf(&b, "queue:     %s\n", meter(s.Queued, s.QueueSize, m.meterWidth()))
	fmt.Fprintf(&b, "frames:    %d\n", s.Frames)
	fmt.Fprintf(&b, "playback:  %s\n", s.Engine)
	fmt.Fprintf(&b, "driver:    %s\n", s.Driver)
	fmt.Fprintf(&b, "\n[p]ause [r]esume [f]lush re[s]tart [q]uit\n")
	return b.String()
}

func (m Model) meterWidth() int {
	if m.width > 40 {
		return min(m.width-30, 60)
	}
	return 20
}

// meter draws a bar showing used as a proportion of size
func meter(used int, size int, width int) string {
	if size <= 0 {
		return fmt.Sprintf("[%s] no queue", strings.Repeat(" ", width))
	}
	n := min(width, used*width/size)
	return fmt.Sprintf("[%s%s] %d/%d bytes", strings.Repeat("#", n), strings.Repeat(".", width-n), used, size)
}

// Run the monitor until the user quits or the context is cancelled.
func Run(ctx context.Context, ctl Controls) error {
	p := tea.NewProgram(NewModel(ctl), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("monitor: %w", err)
	}
	return nil
}
