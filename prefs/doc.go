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

// Package prefs implements typed preference values. Values can be collected
// under string keys in a Group, from where they can be reset to their defaults,
// set by key and overridden from the command line.
//
// Each value can have a pre and post hook. The pre hook is called with the new
// value before it is stored and can reject the change by returning an error.
// The post hook is called after the value has been stored.
//
// Values are stored atomically and so can be read from any goroutine. Hooks
// are expected to be set once, during initialisation.
package prefs
