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

//go:build !assertions

package assert

// Owner is a no-op without the assertions build tag
type Owner struct{}

// Check is a no-op without the assertions build tag
func (o *Owner) Check(_ string) {}

// Release is a no-op without the assertions build tag
func (o *Owner) Release() {}
