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

// Package source produces sound samples in the way an emulation would. It
// stands in for the emulation when exercising the sound pipeline.
//
// A Generator fills buffers with samples. Tone generates a simple waveform and
// Loop plays a Sample loaded from a WAV, MP3 or Ogg Vorbis file over and
// over. PSG plays an arpeggio on an emulated SN76489 sound chip.
//
// A Producer runs frames at FrameRate frames per second, writing one frame's
// worth of samples to a Writer every frame.
package source
