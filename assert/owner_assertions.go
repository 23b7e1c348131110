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

//go:build assertions

package assert

import (
	"fmt"
	"sync/atomic"
)

// Owner records the first goroutine to take a role and panics if any other
// goroutine subsequently claims the same role
type Owner struct {
	id atomic.Uint64
}

// Check that the calling goroutine is the owner of the role. The first call
// after a Release() claims ownership
func (o *Owner) Check(role string) {
	id := GetGoRoutineID()
	if o.id.CompareAndSwap(0, id) {
		return
	}
	if o.id.Load() != id {
		panic(fmt.Sprintf("assert: %s role taken by goroutine %d while owned by goroutine %d", role, id, o.id.Load()))
	}
}

// Release gives up ownership so that another goroutine can take the role
func (o *Owner) Release() {
	o.id.Store(0)
}
