// This file is part of i2csim.
//
// i2csim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i2csim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i2csim.  If not, see <https://www.gnu.org/licenses/>.

package test_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/i2csim/test"
)

func TestExpectFailure(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))
}

func TestExpectSuccess(t *testing.T) {
	test.ExpectSuccess(t, true)
	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestExpectEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 5+5)
	test.ExpectEquality(t, true, true)
	test.ExpectEquality(t, uint8(0xa1), 0x50<<1|1)
}

func TestExpectInequality(t *testing.T) {
	test.ExpectInequality(t, 11, 5+5)
	test.ExpectInequality(t, true, false)
}

func TestDemandImplements(t *testing.T) {
	var v any = &test.CompareWriter{}
	s := test.DemandImplements[fmt.Stringer](t, v)
	test.ExpectEquality(t, s.String(), "")
}

func TestCompareWriter(t *testing.T) {
	tw := &test.CompareWriter{}
	test.ExpectSuccess(t, tw.Compare(""))
	test.ExpectEquality(t, len(tw.Lines()), 0)

	fmt.Fprintln(tw, "alpha")
	fmt.Fprintln(tw, "beta")
	test.ExpectSuccess(t, tw.Compare("alpha\nbeta\n"))
	test.ExpectSuccess(t, tw.Contains("beta"))
	test.ExpectEquality(t, len(tw.Lines()), 2)

	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
