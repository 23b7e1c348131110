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

// Package statsview runs a local HTTP server showing runtime statistics for
// the process. It is only available when built with the "statsview" tag:
//
//	go build -tags statsview .
//
// The graphical statistics are served by "github.com/go-echarts/statsview" at:
//
//	localhost:18066/debug/statsview
//
// The standard Go pprof pages are at:
//
//	localhost:18066/debug/pprof/
//
// Goroutine counts and heap use are useful when watching the playback
// goroutine and the producer over a long session.
package statsview
