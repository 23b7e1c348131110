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

// Package sounddrv implements the sound.Device interface on top of a playback
// engine.
//
// Samples written by the emulation are placed in a bounded queue. The
// playback engine's fill callback takes samples from the queue as the
// hardware requires them. If the queue is empty the hardware is given
// silence. If the queue is full the writer waits, sleeping for the retry
// delay between attempts, until there is room or until output is suspended.
package sounddrv
