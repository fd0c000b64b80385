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
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/test"
)

func TestSnapshot(t *testing.T) {
	f := newFixture(t, inputs.KindGamepad, 2)
	f.clk.Set(777)
	f.init(t, 2)

	_, _ = f.sys.TrackHues([MaxSlots]uint32{DontCareHue, 45, DontTrackHue, DontTrackHue})
	test.ExpectEquality(t, f.sys.Calibrate(0), OK)
	f.clk.Advance(calibrationTime)
	f.sys.resolveCalibration()
	test.ExpectEquality(t, f.sys.SetRumble(1, 10), OK)
	_, _ = f.sys.GetInertialState(0, StateFlagCurrentTime, 0)
	test.ExpectEquality(t, f.sys.UpdateStart(0x80), OK)

	var buf bytes.Buffer
	test.DemandSuccess(t, f.sys.Save(&buf))
	saved := bytes.Clone(buf.Bytes())

	// loading into an initialised system is not allowed
	err := f.sys.Load(bytes.NewReader(saved))
	test.ExpectSuccess(t, curated.Is(err, SnapshotInitialised))

	g := newFixture(t, inputs.KindGamepad, 2)
	test.DemandSuccess(t, g.sys.Load(bytes.NewReader(saved)))
	t.Cleanup(func() {
		_ = g.sys.End()
	})

	if diff := cmp.Diff(f.sys.controllers, g.sys.controllers); diff != "" {
		t.Errorf("controllers differ after load (-saved +loaded):\n%s", diff)
	}
	test.ExpectEquality(t, g.sys.startTimestamp, uint64(777))
	test.ExpectEquality(t, g.sys.inertialCounter, uint32(1))
	test.ExpectEquality(t, g.sys.attr, f.sys.attr)

	// the update that was in progress can be finished
	test.ExpectEquality(t, g.sys.UpdateFinish(), OK)

	flags, code := g.sys.StatusFlags(0)
	test.ExpectEquality(t, code, OK)
	test.ExpectEquality(t, flags, FlagCalibrationSucceeded|FlagCalibrationOccurred)

	test.ExpectInequality(t, g.sys.Session(), f.sys.Session())
}

func TestSnapshotUninitialised(t *testing.T) {
	f := newFixture(t, inputs.KindGamepad, 1)

	var buf bytes.Buffer
	test.DemandSuccess(t, f.sys.Save(&buf))

	var s snapshot
	test.DemandSuccess(t, cbor.Unmarshal(buf.Bytes(), &s))
	test.ExpectEquality(t, s.Version, snapshotVersion)
	test.ExpectEquality(t, s.State, uint32(0))
	test.ExpectSuccess(t, s.Store == nil)

	g := newFixture(t, inputs.KindGamepad, 1)
	test.DemandSuccess(t, g.sys.Load(&buf))
	test.ExpectEquality(t, g.sys.End(), Uninitialized)
}

func TestSnapshotVersion1(t *testing.T) {
	st := &snapshotStore{
		Attr:    Attributes{MaxConnect: 1},
		OutSize: -1,
	}

	c := defaultController(0)
	c.Status = StatusReady
	c.CalibrationFlags = FlagCalibrationSucceeded | FlagCalibrationOccurred
	st.Controllers[0] = c.snapshot()

	data, err := cbor.Marshal(snapshot{Version: 1, State: 1, Store: st})
	test.DemandSuccess(t, err)

	f := newFixture(t, inputs.KindGamepad, 1)
	test.DemandSuccess(t, f.sys.Load(bytes.NewReader(data)))
	t.Cleanup(func() {
		_ = f.sys.End()
	})

	flags, code := f.sys.StatusFlags(0)
	test.ExpectEquality(t, code, OK)
	test.ExpectEquality(t, flags, uint64(0))
	test.ExpectEquality(t, f.sys.controllers[0].Status, StatusReady)

	data, err = cbor.Marshal(snapshot{Version: 99})
	test.DemandSuccess(t, err)
	g := newFixture(t, inputs.KindGamepad, 1)
	test.ExpectSuccess(t, curated.Is(g.sys.Load(bytes.NewReader(data)), SnapshotVersion))

	test.ExpectSuccess(t, curated.Is(g.sys.Load(bytes.NewReader([]byte{0xff})), SnapshotError))
}
