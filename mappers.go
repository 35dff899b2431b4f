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

package main

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
)

// intMapper decodes integer arguments in the given base. Hex values can be
// given with or without the 0x prefix.
type intMapper struct {
	base int
}

func (h intMapper) Decode(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := ctx.Scan.PopValueInto("int", &value)
	if err != nil {
		return err
	}
	if h.base == 16 {
		value = strings.TrimPrefix(strings.ToLower(value), "0x")
	}
	i, err := strconv.ParseInt(value, h.base, 64)
	if err != nil {
		return err
	}
	target.SetInt(i)
	return nil
}
