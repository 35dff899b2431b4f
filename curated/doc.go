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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// particular pattern. Packages that return curated errors export the patterns
// they use so that callers can test for them. For example:
//
//	const NackError = "master: nack from address %#02x"
//
//	e := curated.Errorf(NackError, addr)
//
//	if curated.Is(e, NackError) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("script: line %d: %v", 3, e)
//
//	if curated.Has(f, NackError) {
//		fmt.Println("true")
//	}
//
// Note that in this example, the call Is(f, NackError) will return false
// because error f does not match that pattern - it is "wrapped" inside the
// pattern "script: line %d: %v".
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). Put another way, it returns true if the error is 'curated'
// and false if the error is 'uncurated'. Alternatively, we can think of the
// difference as being 'expected' and 'unexpected' depending on how we choose
// to handle the result of the function call.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example:
//
//	e := curated.Errorf("bus: %v", curated.Errorf("bus: %v", "device is nil"))
//
// will print as "bus: device is nil" and not "bus: bus: device is nil".
package curated
