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

package assert_test

import (
	"sync"
	"testing"

	"github.com/jetsetilly/soundpipe/assert"
	"github.com/jetsetilly/soundpipe/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, 0)
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	var other uint64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		other = assert.GetGoRoutineID()
	}()
	wg.Wait()
	test.ExpectInequality(t, other, id)
}
