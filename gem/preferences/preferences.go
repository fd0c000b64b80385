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

package preferences

import (
	"fmt"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/prefs"
)

// NumPlayers is the number of per-player preference groups. It matches the
// number of controller slots.
const NumPlayers = 4

// ButtonMap names the host pad button that is used for each controller
// button when the substitute gamepad backend is active. The axis entries name
// the host stick axes used for the position sample.
type ButtonMap struct {
	Start    prefs.String
	Select   prefs.String
	Triangle prefs.String
	Circle   prefs.String
	Cross    prefs.String
	Square   prefs.String
	Move     prefs.String
	T        prefs.String
	XAxis    prefs.String
	YAxis    prefs.String
}

// Player preferences apply to a single controller slot.
type Player struct {
	// hue used by the tracker when the game is not allowed to choose
	Hue prefs.Int

	HueThreshold        prefs.Int
	SaturationThreshold prefs.Int

	// LED colour used for native controllers when the game is not allowed to
	// choose. each component is 0 to 255
	Red   prefs.Int
	Green prefs.Int
	Blue  prefs.Int

	Buttons ButtonMap
}

// Preferences defines and collates all the preference values used by the
// motion controller subsystem.
type Preferences struct {
	dsk *prefs.Disk

	// name of the input backend. see the inputs package for the valid names
	Backend prefs.String

	// whether the camera supports conversion of frames for the guest. a camera
	// that does not support conversion completes conversion requests
	// immediately without writing output
	CameraConversion prefs.Bool

	// paint the tracked spheres into converted video frames
	PaintSpheres prefs.Bool

	// show the host mouse cursor when the mouse backends are active
	ShowCursor prefs.Bool

	// the hue and LED colour requested by the game are used instead of the
	// player preferences
	AllowHueSetByGame prefs.Bool

	// maximum horizontal and vertical rotation in degrees used when
	// synthesising orientation from the position sample
	ConeH prefs.Float
	ConeV prefs.Float

	// sphere radius bounds for the tracker as a percentage of the frame width
	MinRadius prefs.Float
	MaxRadius prefs.Float

	Players [NumPlayers]Player
}

// the default hues are the same as those chosen for the "don't care" hue
// request
var defaultHues = [NumPlayers]int{240, 0, 120, 300}

// default LED colours. these are the fully saturated versions of the
// default hues
var defaultLEDs = [NumPlayers][3]int{
	{0, 0, 255},
	{255, 0, 0},
	{0, 255, 0},
	{255, 0, 255},
}

func (p *Preferences) String() string {
	return fmt.Sprintf("backend=%s conversion=%v paint=%v", p.Backend.String(), p.CameraConversion.Load(), p.PaintSpheres.Load())
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty then the preferences are not backed by
// a file and Load() and Save() do nothing.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if path == "" {
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	add := func(key string, v prefs.Pref) {
		if err == nil {
			err = p.dsk.Add(key, v)
		}
	}

	add("gem.backend", &p.Backend)
	add("gem.camera.conversion", &p.CameraConversion)
	add("gem.spheres.paint", &p.PaintSpheres)
	add("gem.cursor.show", &p.ShowCursor)
	add("gem.hue.allowgame", &p.AllowHueSetByGame)
	add("gem.cone.h", &p.ConeH)
	add("gem.cone.v", &p.ConeV)
	add("gem.radius.min", &p.MinRadius)
	add("gem.radius.max", &p.MaxRadius)

	for i := range p.Players {
		pl := &p.Players[i]
		key := func(s string) string {
			return fmt.Sprintf("gem.player.%d.%s", i, s)
		}
		add(key("hue"), &pl.Hue)
		add(key("hue.threshold"), &pl.HueThreshold)
		add(key("saturation.threshold"), &pl.SaturationThreshold)
		add(key("led.r"), &pl.Red)
		add(key("led.g"), &pl.Green)
		add(key("led.b"), &pl.Blue)
		add(key("button.start"), &pl.Buttons.Start)
		add(key("button.select"), &pl.Buttons.Select)
		add(key("button.triangle"), &pl.Buttons.Triangle)
		add(key("button.circle"), &pl.Buttons.Circle)
		add(key("button.cross"), &pl.Buttons.Cross)
		add(key("button.square"), &pl.Buttons.Square)
		add(key("button.move"), &pl.Buttons.Move)
		add(key("button.t"), &pl.Buttons.T)
		add(key("axis.x"), &pl.Buttons.XAxis)
		add(key("axis.y"), &pl.Buttons.YAxis)
	}

	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	err = p.dsk.Load()
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return nil, curated.Errorf("preferences: %v", err)
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Backend.Set("move")
	p.CameraConversion.Set(true)
	p.PaintSpheres.Set(false)
	p.ShowCursor.Set(false)
	p.AllowHueSetByGame.Set(true)
	p.ConeH.Set(10.0)
	p.ConeV.Set(10.0)
	p.MinRadius.Set(1.0)
	p.MaxRadius.Set(50.0)

	for i := range p.Players {
		pl := &p.Players[i]
		pl.Hue.Set(defaultHues[i])
		pl.HueThreshold.Set(10)
		pl.SaturationThreshold.Set(10)
		pl.Red.Set(defaultLEDs[i][0])
		pl.Green.Set(defaultLEDs[i][1])
		pl.Blue.Set(defaultLEDs[i][2])
		pl.Buttons.Start.Set("start")
		pl.Buttons.Select.Set("select")
		pl.Buttons.Triangle.Set("triangle")
		pl.Buttons.Circle.Set("circle")
		pl.Buttons.Cross.Set("cross")
		pl.Buttons.Square.Set("square")
		pl.Buttons.Move.Set("r1")
		pl.Buttons.T.Set("r2")
		pl.Buttons.XAxis.Set("lsx")
		pl.Buttons.YAxis.Set("lsy")
	}
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
