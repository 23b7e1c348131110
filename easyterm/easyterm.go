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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". It puts
// the terminal into cbreak mode so that single key presses can be read without
// waiting for the return key, and it reports the terminal geometry.
package easyterm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by NewTerminal() if the input or output is not a
// terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Geometry of the terminal in characters.
type Geometry struct {
	Rows int
	Cols int
}

// Terminal wraps an input and an output file.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The terminal is left in the mode it is currently in.
func NewTerminal(input *os.File, output *os.File) (*Terminal, error) {
	if input == nil || output == nil {
		return nil, fmt.Errorf("easyterm: terminal requires an input and an output file")
	}

	if !term.IsTerminal(int(input.Fd())) || !term.IsTerminal(int(output.Fd())) {
		return nil, fmt.Errorf("easyterm: %w", ErrNotTerminal)
	}

	pt := &Terminal{
		input:  input,
		output: output,
	}

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return nil, fmt.Errorf("easyterm: %w", err)
	}

	// cbreak mode is the same as canonical mode except for the input
	// processing flags changed by Cfmakecbreak()
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return pt, nil
}

// CanonicalMode puts the terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() error {
	return termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// CBreakMode puts the terminal into cbreak mode.
func (pt *Terminal) CBreakMode() error {
	return termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// Flush discards anything waiting in the terminal's input buffer.
func (pt *Terminal) Flush() error {
	return termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH)
}

// Geometry returns the current dimensions of the output terminal.
func (pt *Terminal) Geometry() (Geometry, error) {
	ws, err := unix.IoctlGetWinsize(int(pt.output.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return Geometry{}, fmt.Errorf("easyterm: %w", err)
	}
	return Geometry{Rows: int(ws.Row), Cols: int(ws.Col)}, nil
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...any) {
	fmt.Fprintf(pt.output, s, a...)
}

// Keys returns a channel that receives every key pressed. The terminal should
// be in cbreak mode. The channel is closed when the input reaches the end of
// file or when there is an error.
//
// The goroutine reading the input cannot be interrupted while it is waiting
// for a key. It will exit on the first key press after the context is
// cancelled.
func (pt *Terminal) Keys(ctx context.Context) <-chan rune {
	keys := make(chan rune)

	go func() {
		defer close(keys)
		b := make([]byte, 1)
		for {
			n, err := pt.input.Read(b)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case keys <- rune(b[0]):
			case <-ctx.Done():
				return
			}
		}
	}()

	return keys
}
