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

// Package resources contains functions to prepare paths for i2csim resources.
//
// The JoinPath() function returns the correct path to the resource directory
// (creating the directories as required). If a directory named ".i2csim"
// exists in the current working directory then that is used as the base of
// all resource paths. This is the "portable" mode. Otherwise the base is the
// "i2csim" directory in the user's configuration directory.
package resources
