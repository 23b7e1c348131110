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

// Package modalflag wraps the flag package from the standard library, adding
// support for program modes. A mode is a command line argument that selects
// a different mode of operation, each with its own set of flags. For example:
//
//	soundpipe PLAY -backend oto tone.wav
//	soundpipe DEVICES
//
// The arguments are given with NewArgs(). Sub-modes and flags for the first
// layer of arguments are then added and Parse() called.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAY", "DEVICES", "VERSION")
//	p, err := md.Parse()
//
// After Parse(), Mode() returns the selected mode. The first sub-mode in the
// list is the default mode and is selected if no mode is given on the command
// line. Mode names are case insensitive.
//
// To parse the flags for the selected mode, call NewMode(), add the flags and
// call Parse() again.
//
//	md.NewMode()
//	backend := md.AddString("backend", "sdl", "output backend")
//	p, err = md.Parse()
//
// Arguments that are neither flags nor sub-modes are available through
// RemainingArgs() and GetArg().
//
// Help is requested with the -help or -h flags. Parse() prints the help
// message to the Output writer and returns ParseHelp.
package modalflag
