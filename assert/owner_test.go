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

package assert_test

import (
	"sync"
	"testing"

	"github.com/jetsetilly/soundpipe/assert"
	"github.com/jetsetilly/soundpipe/test"
)

func TestOwner(t *testing.T) {
	var o assert.Owner

	// the same goroutine can check as many times as it likes
	o.Check("producer")
	o.Check("producer")

	var wg sync.WaitGroup
	var panicked bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			panicked = recover() != nil
		}()
		o.Check("producer")
	}()
	wg.Wait()
	test.ExpectSuccess(t, panicked)

	// after release a new goroutine can take the role
	o.Release()
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			panicked = recover() != nil
		}()
		o.Check("producer")
	}()
	wg.Wait()
	test.ExpectFailure(t, panicked)
}
