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

// Package sound is the boundary between the emulation and the sound device.
//
// A Device is registered with a Registry under its name. The emulation opens
// a device by name through a Sound instance and from then on talks only to
// the Sound instance, which forwards samples and control requests to the
// device. If the device cannot be opened, the Sound instance discards all
// samples and the emulation continues silently.
package sound
