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

import (
	"testing"

	"github.com/jetsetilly/gemcore/gem/coords"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/test"
)

func TestGetStatePrecedence(t *testing.T) {
	f := newFixture(t, inputs.KindGamepad, 1)
	f.init(t, 2)

	_, code := f.sys.GetState(4, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, InvalidParameter)
	_, code = f.sys.GetState(0, StateFlagTimestamp+1, 0)
	test.ExpectEquality(t, code, InvalidParameter)
	_, code = f.sys.GetState(1, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, NotConnected)

	_, code = f.sys.GetState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, SphereNotCalibrated)

	test.ExpectEquality(t, f.sys.Calibrate(0), OK)
	_, code = f.sys.GetState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, SphereCalibrating)

	f.clk.Advance(calibrationTime)
	waitFor(t, func() bool {
		_, code := f.sys.GetState(0, StateFlagCurrentTime, 0)
		return code != SphereCalibrating
	})

	_, code = f.sys.GetState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, HueNotSet)

	_, code = f.sys.TrackHues([MaxSlots]uint32{DontCareHue, DontCareHue, DontCareHue, DontCareHue})
	test.ExpectEquality(t, code, OK)
	_, code = f.sys.GetState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, OK)

	// informational status codes are not failures
	test.ExpectSuccess(t, SphereNotCalibrated)
	test.ExpectFailure(t, InvalidParameter)
}

func TestGetState(t *testing.T) {
	f := newFixture(t, inputs.KindGamepad, 1)

	f.backend.buttons = inputs.ButtonCross | inputs.ButtonT
	f.backend.analogT = inputs.AnalogMax
	f.backend.ext = inputs.ExtStatus{Status: inputs.ExtConnected, ID: 0x1234}

	// a sample at the centre of the frame regardless of the scale
	f.backend.sample = coords.Sample{X: 128, Y: 128, XMax: 256, YMax: 256}
	f.backend.hasSample = true

	f.clk.Set(1000)
	f.init(t, 1)
	f.clk.Advance(500)

	st, _ := f.sys.GetState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, st.Pad.Digital, inputs.ButtonCross|inputs.ButtonT)
	test.ExpectEquality(t, st.Pad.AnalogT, uint16(inputs.AnalogMax))
	test.ExpectEquality(t, st.Ext.Status, uint16(inputs.ExtConnected))
	test.ExpectEquality(t, st.Timestamp, uint64(500))
	test.ExpectEquality(t, st.TrackingFlags, uint32(0))

	test.ExpectApproximate(t, st.Pos[0], 0, 0.0001)
	test.ExpectApproximate(t, st.Pos[1], 0, 0.0001)
	test.ExpectEquality(t, st.Pos[2], float32(3000))
	test.ExpectEquality(t, st.HandlePos[2], float32(3010))

	// the centre of the frame is not rotated
	test.ExpectApproximate(t, st.Quat[3], 1, 0.0001)

	// tracking is enabled by calibration
	test.ExpectEquality(t, f.sys.Calibrate(0), OK)
	f.clk.Advance(calibrationTime)
	f.sys.resolveCalibration()
	st, _ = f.sys.GetState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, st.TrackingFlags, TrackingPositionTracked|TrackingVisible)
}

func TestGetStateNull(t *testing.T) {
	f := newFixture(t, inputs.KindNull, 4)
	f.init(t, 4)

	_, code := f.sys.GetState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, NotConnected)

	st, code := f.sys.GetImageState(0)
	test.ExpectEquality(t, code, OK)
	test.ExpectEquality(t, st, ImageState{})
}

func TestGetImageState(t *testing.T) {
	f := newFixture(t, inputs.KindGamepad, 1)
	f.backend.sample = coords.Sample{X: 320, Y: 240, XMax: 640, YMax: 480}
	f.backend.hasSample = true
	f.init(t, 1)

	f.publish(0x100000, 123456)

	st, code := f.sys.GetImageState(0)
	test.ExpectEquality(t, code, OK)
	test.ExpectEquality(t, st.FrameTimestamp, uint64(123456))
	test.ExpectEquality(t, st.Timestamp, uint64(123466))
	test.ExpectEquality(t, st.R, float32(5))
	test.ExpectEquality(t, st.Distance, float32(3000))
	test.ExpectSuccess(t, st.Visible)
	test.ExpectSuccess(t, st.RValid)
	test.ExpectApproximate(t, st.U, 320, 0.0001)
	test.ExpectApproximate(t, st.V, 240, 0.0001)
	test.ExpectApproximate(t, st.ProjectionX, 0, 0.0001)

	st, _ = f.sys.GetImageState(1)
	test.ExpectFailure(t, st.Visible)
}

func TestGetInertialState(t *testing.T) {
	f := newFixture(t, inputs.KindGamepad, 1)
	f.backend.inertial = inputs.Inertial{
		Temperature: 35,
		Accel:       [3]float32{0, 1, 0},
		Gyro:        [3]float32{0, 0, 0.5},
	}
	f.init(t, 1)

	_, code := f.sys.GetInertialState(1, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, InvalidParameter)

	st, code := f.sys.GetInertialState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, code, OK)
	test.ExpectEquality(t, st.Counter, int32(0))
	test.ExpectEquality(t, st.Temperature, float32(35))
	test.ExpectEquality(t, st.Accelerometer[1], float32(1))
	test.ExpectEquality(t, st.Gyro[2], float32(0.5))

	st, _ = f.sys.GetInertialState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, st.Counter, int32(1))
}
