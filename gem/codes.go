// This file is part of Gemcore.
//
// Gemcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gemcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gemcore.  If not, see <https://www.gnu.org/licenses/>.

package gem

import "fmt"

// Code is the result of a guest operation. A Code is either OK, an error or
// an informational status. Informational statuses are not failures.
type Code uint32

// OK is the result of a successful operation.
const OK Code = 0

// List of error codes.
const (
	ResourceAllocationFailed Code = 0x80121801
	AlreadyInitialized       Code = 0x80121802
	Uninitialized            Code = 0x80121803
	InvalidParameter         Code = 0x80121804
	InvalidAlignment         Code = 0x80121805
	UpdateNotFinished        Code = 0x80121806
	UpdateNotStarted         Code = 0x80121807
	ConvertNotFinished       Code = 0x80121808
	ConvertNotStarted        Code = 0x80121809
	WriteNotFinished         Code = 0x8012180a
	NotAHue                  Code = 0x8012180b
	Busy                     Code = 0x8001000a
)

// List of informational statuses.
const (
	NotConnected             Code = 1
	SphereNotCalibrated      Code = 2
	SphereCalibrating        Code = 3
	ComputingAvailableColors Code = 4
	HueNotSet                Code = 5
	NoVideo                  Code = 6
	TimeOutOfRange           Code = 7
	NotCalibrated            Code = 8
	NoExternalPortDevice     Code = 9
)

var codeNames = map[Code]string{
	OK:                       "OK",
	ResourceAllocationFailed: "RESOURCE_ALLOCATION_FAILED",
	AlreadyInitialized:       "ALREADY_INITIALIZED",
	Uninitialized:            "UNINITIALIZED",
	InvalidParameter:         "INVALID_PARAMETER",
	InvalidAlignment:         "INVALID_ALIGNMENT",
	UpdateNotFinished:        "UPDATE_NOT_FINISHED",
	UpdateNotStarted:         "UPDATE_NOT_STARTED",
	ConvertNotFinished:       "CONVERT_NOT_FINISHED",
	ConvertNotStarted:        "CONVERT_NOT_STARTED",
	WriteNotFinished:         "WRITE_NOT_FINISHED",
	NotAHue:                  "NOT_A_HUE",
	Busy:                     "BUSY",
	NotConnected:             "NOT_CONNECTED",
	SphereNotCalibrated:      "SPHERE_NOT_CALIBRATED",
	SphereCalibrating:        "SPHERE_CALIBRATING",
	ComputingAvailableColors: "COMPUTING_AVAILABLE_COLORS",
	HueNotSet:                "HUE_NOT_SET",
	NoVideo:                  "NO_VIDEO",
	TimeOutOfRange:           "TIME_OUT_OF_RANGE",
	NotCalibrated:            "NOT_CALIBRATED",
	NoExternalPortDevice:     "NO_EXTERNAL_PORT_DEVICE",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("unknown code (%#08x)", uint32(c))
}

// Failed returns true if the code is an error. Informational statuses are not
// errors.
func (c Code) Failed() bool {
	return c&0x80000000 != 0
}

// Error implements the go error interface. Note that Code does not satisfy the
// error interface directly. Use Err() when an error value is required.
type Error struct {
	Code Code
}

func (e Error) Error() string {
	return fmt.Sprintf("gem: %s", e.Code)
}

// Err returns an error for failed codes and nil otherwise.
func (c Code) Err() error {
	if !c.Failed() {
		return nil
	}
	return Error{Code: c}
}
