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

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem"
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/convert"
	"github.com/jetsetilly/gemcore/gem/inputs"
	"github.com/jetsetilly/gemcore/gem/preferences"
	"github.com/jetsetilly/gemcore/guestmem"
	"github.com/jetsetilly/gemcore/hostcamera/synthetic"
	"github.com/jetsetilly/gemcore/hostcamera/v4l2cam"
	"github.com/jetsetilly/gemcore/hostinput/lightgun"
	"github.com/jetsetilly/gemcore/hostinput/psmove"
	"github.com/jetsetilly/gemcore/hostinput/sdlinput"
	"github.com/jetsetilly/gemcore/logger"
	"github.com/jetsetilly/gemcore/modalflag"
	"github.com/jetsetilly/gemcore/paths"
	"github.com/jetsetilly/gemcore/performance"
	"github.com/jetsetilly/gemcore/statsview"
	"github.com/jetsetilly/gemcore/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible. takes an optional int
	// argument, which is the exit status
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args any
}

// HostCreator facilitates the creation, servicing and destruction of host
// handlers that need to run in the main thread. SDL is the notable example.
type HostCreator interface {
	Destroy()

	// Service handles events. It must only be called from the main thread and
	// should not block. Returns false if the host has asked to quit
	Service() bool
}

// communication between the main() function and the launch() function
type mainSync struct {
	state   chan stateRequest
	creator chan func() (HostCreator, error)

	creation      chan HostCreator
	creationError chan error

	// closed by main() when an interrupt signal is received
	interrupt chan bool
}

func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (HostCreator, error)),
		creation:      make(chan HostCreator),
		creationError: make(chan error),
		interrupt:     make(chan bool),
	}

	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	interrupted := false
	done := false
	var host HostCreator
	for !done {
		select {
		case <-intChan:
			fmt.Print("\r")
			if !interrupted {
				interrupted = true
				close(sync.interrupt)
			} else {
				done = true
			}

		case creator := <-sync.creator:
			if host != nil {
				host.Destroy()
			}

			var err error
			host, err = creator()
			if err != nil {
				sync.creationError <- err
				host = nil
			} else {
				sync.creation <- host
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if host != nil {
				if !host.Service() && !interrupted {
					interrupted = true
					close(sync.interrupt)
				}
			}
			time.Sleep(time.Millisecond)
		}
	}

	if host != nil {
		host.Destroy()
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DUMP", "HUES", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)
	case "DUMP":
		err = dump(md)
	case "HUES":
		err = hues(md)
	case "VERSION":
		v, r, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, r)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// setLogging echoes the log to stdout as human readable lines or as JSON
func setLogging(echo bool, json bool) {
	if echo {
		logger.SetEcho(logger.NewEcho(os.Stdout, !json), false)
	} else {
		logger.SetEcho(nil, false)
	}
}

func newEnvironment(usePrefs bool) (*environment.Environment, error) {
	var pth string
	if usePrefs {
		var err error
		pth, err = paths.ResourcePath("", "gemcore.yaml")
		if err != nil {
			return nil, err
		}
	}

	prefs, err := preferences.NewPreferences(pth)
	if err != nil {
		return nil, err
	}

	return environment.NewEnvironment(environment.MainSession, prefs, nil)
}

// handlers creates the host handlers required by the kind of backend. SDL
// handlers are created in the main thread
func handlers(env *environment.Environment, kind inputs.Kind, sync *mainSync) (inputs.Handlers, func(), error) {
	var h inputs.Handlers
	cleanup := func() {}

	switch kind {
	case inputs.KindMove:
		pads, err := psmove.NewHandler(env)
		if err != nil {
			return h, cleanup, err
		}
		h.Pads = pads
		cleanup = pads.Close

	case inputs.KindGun:
		guns := lightgun.NewHandler(env, nil)
		h.Guns = guns
		cleanup = guns.Close

	case inputs.KindGamepad, inputs.KindMouse, inputs.KindRawMouse:
		mouse := kind != inputs.KindGamepad
		sync.creator <- func() (HostCreator, error) {
			return sdlinput.NewHandler(env, mouse)
		}

		select {
		case c := <-sync.creation:
			sdl := c.(*sdlinput.Handler)
			h.Pads = sdl
			h.Mice = sdl
		case err := <-sync.creationError:
			return h, cleanup, err
		}
	}

	return h, cleanup, nil
}

// hostCamera is the camera that publishes frames for the run loop
type hostCamera interface {
	Info() camera.Info
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	backendName := md.AddString("backend", "", "input backend (null, move, gamepad, mouse, rawmouse, gun). the default is taken from the preferences")
	cameraName := md.AddString("camera", "synthetic", "camera: synthetic or v4l2")
	device := md.AddString("device", "/dev/video0", "v4l2 capture device")
	slots := md.AddInt("slots", 1, "number of controllers")
	frames := md.AddInt("frames", 0, "number of frames to run for. zero runs until interrupted")
	fps := md.AddInt("fps", 60, "frames per second")
	conversion := md.AddBool("convert", false, "convert camera frames for the guest")
	paint := md.AddBool("paint", false, "paint tracked spheres into converted frames")
	snapshot := md.AddBool("snapshot", false, "save a snapshot of the subsystem before ending")
	usePrefs := md.AddBool("prefs", true, "load and save preferences file")
	log := md.AddBool("log", false, "echo log to stdout")
	json := md.AddBool("json", false, "echo log as JSON")
	stats := md.AddBool("statsview", false, "run stats server")
	statsAddr := md.AddString("statsaddr", statsview.DefaultAddress, "address of stats server")
	profile := md.AddString("profile", "none", "create profiling data: cpu, mem or both separated by a comma")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogging(*log, *json)

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if *stats {
		url, err := statsview.Launch(*statsAddr)
		if err != nil {
			return err
		}
		fmt.Printf("stats server available at %s\n", url)
	}

	env, err := newEnvironment(*usePrefs)
	if err != nil {
		return err
	}

	if *backendName != "" {
		if err := env.Prefs.Backend.Set(*backendName); err != nil {
			return err
		}
	}
	if *paint {
		if err := env.Prefs.PaintSpheres.Set(true); err != nil {
			return err
		}
	}

	kind, err := inputs.ParseKind(env.Prefs.Backend.String())
	if err != nil {
		return err
	}

	h, cleanup, err := handlers(env, kind, sync)
	if err != nil {
		return err
	}
	defer cleanup()

	backend, err := inputs.NewBackend(env, kind, h)
	if err != nil {
		return err
	}

	cam := &camera.Shared{}
	cam.SetSupportsConversion(env.Prefs.CameraConversion.Load())

	mem := guestmem.NewMemory(0, 0x4000000)

	var src hostCamera
	var syn *synthetic.Camera
	switch strings.ToLower(*cameraName) {
	case "synthetic":
		syn, err = synthetic.NewCamera(env, cam, mem, camera.FormatRGBA, camera.DefaultWidth, camera.DefaultHeight)
		if err != nil {
			return err
		}
		defer syn.Close()
		src = syn

	case "v4l2":
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		vc, err := v4l2cam.Open(ctx, env, cam, mem, *device, camera.DefaultWidth, camera.DefaultHeight, *fps)
		if err != nil {
			return err
		}
		defer vc.Close()
		src = vc

	default:
		return fmt.Errorf("unknown camera (%s)", *cameraName)
	}

	sys := gem.NewSystem(env, backend, cam, nil, mem)
	if err := sys.Init(gem.Attributes{MaxConnect: *slots}).Err(); err != nil {
		return err
	}
	defer sys.End()

	fmt.Printf("! %s backend with %s camera (session %s)\n", kind, *cameraName, sys.Session())

	var req [gem.MaxSlots]uint32
	for i := range req {
		req[i] = gem.DontCareHue
	}
	if _, c := sys.TrackHues(req); c.Failed() {
		return c.Err()
	}

	for slot := range *slots {
		if c := sys.Calibrate(slot); c.Failed() {
			logger.Logf(env, "gemcore", "calibrate %d: %v", slot, c)
		}
	}

	var output uint32
	if *conversion {
		size := convert.OutputSize(convert.RGBA640x480)
		output, err = mem.Alloc(uint32(size), 128)
		if err != nil {
			return err
		}
		defer mem.Free(output)

		vc := gem.VideoConvertAttribute{
			Version:      gem.Version,
			OutputFormat: convert.RGBA640x480,
			Gain:         1,
			RedGain:      1,
			GreenGain:    1,
			BlueGain:     1,
			Output:       output,
			Alpha:        255,
		}
		if err := sys.PrepareVideoConvert(vc).Err(); err != nil {
			return err
		}
	}

	rate := max(1, *fps)
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	var frame int
	start := time.Now()

	err = performance.RunProfiler(prf, "run", func() error {
		for frame = 0; *frames == 0 || frame < *frames; frame++ {
			select {
			case <-sync.interrupt:
				return nil
			case <-ticker.C:
			}

			step(env, sys, src, syn, *slots, frame, *conversion)

			if frame%rate == 0 {
				report(env, sys, *slots)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	achieved, accuracy := performance.CalcFPS(frame, time.Since(start).Seconds(), rate)
	fmt.Printf("! %d frames at %.2f fps (%.1f%%)\n", frame, achieved, accuracy)

	return finish(env, sys, *snapshot)
}

// step runs the guest side of a single frame
func step(env *environment.Environment, sys *gem.System, src hostCamera, syn *synthetic.Camera, slots int, frame int, conversion bool) {
	if syn != nil {
		animate(sys, syn, slots, frame)
		syn.Render()
	}

	buffer := src.Info().Buffers[0]
	if buffer == 0 {
		return
	}

	if c := sys.UpdateStart(buffer); c.Failed() {
		logger.Logf(env, "gemcore", "update start: %v", c)
		return
	}
	if c := sys.UpdateFinish(); c.Failed() {
		logger.Logf(env, "gemcore", "update finish: %v", c)
	}

	if conversion {
		if c := sys.ConvertVideoStart(buffer); !c.Failed() {
			_ = sys.ConvertVideoFinish()
		}
	}
}

// animate moves the synthetic spheres around circles of different sizes. the
// colour of each sphere is the colour the subsystem has chosen for the slot
func animate(sys *gem.System, syn *synthetic.Camera, slots int, frame int) {
	info := syn.Info()
	for slot := range slots {
		rgb, c := sys.RGB(slot)
		if c.Failed() {
			continue
		}

		angle := float64(frame)*0.02 + float64(slot)*math.Pi/2
		radius := float64(info.Height) * (0.15 + 0.05*float64(slot))
		syn.SetSphere(slot, synthetic.Sphere{
			Visible: true,
			X:       float64(info.Width)/2 + radius*math.Cos(angle),
			Y:       float64(info.Height)/2 + radius*math.Sin(angle),
			Radius:  float64(info.Width) * 0.03,
			Colour:  rgb,
		})
	}
}

func report(env *environment.Environment, sys *gem.System, slots int) {
	for slot := range slots {
		st, c := sys.GetState(slot, gem.StateFlagCurrentTime, 0)
		if c.Failed() {
			continue
		}
		logger.Logf(env, "gemcore", "slot %d (%v): pos %.0f,%.0f,%.0f buttons %#04x tracking %#x",
			slot, c, st.Pos[0], st.Pos[1], st.Pos[2], uint32(st.Pad.Digital), st.TrackingFlags)
	}
}

// finish saves the snapshot and the preferences
func finish(env *environment.Environment, sys *gem.System, snapshot bool) error {
	if snapshot {
		pth, err := paths.ResourcePath("snapshots", paths.UniqueFilename("snapshot", sys.String(), "cbor"))
		if err != nil {
			return err
		}
		f, err := os.Create(pth)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := sys.Save(f); err != nil {
			return err
		}
		fmt.Printf("! snapshot saved to %s\n", pth)
	}

	return env.Prefs.Save()
}

// dump writes a memviz graph of an initialised subsystem. the graph is in the
// dot format
func dump(md *modalflag.Modes) error {
	md.NewMode()
	out := md.AddString("o", "", "output file. the default is stdout")
	slots := md.AddInt("slots", 1, "number of controllers")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, err := newEnvironment(false)
	if err != nil {
		return err
	}

	mem := guestmem.NewMemory(0, 0x100000)
	sys := gem.NewSystem(env, &inputs.Null{}, &camera.Shared{}, nil, mem)
	if err := sys.Init(gem.Attributes{MaxConnect: *slots}).Err(); err != nil {
		return err
	}
	sys.End()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	memviz.Map(w, sys)

	return nil
}

// hues prints how the hue requests on the command line are resolved. each
// argument is a hue in the range 0 to 359 or one of "care", "track" or "keep"
func hues(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("arguments are hues (0 to 359) or one of: care, track, keep")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var req [gem.MaxSlots]uint32
	for i := range req {
		req[i] = gem.DontCareHue
	}

	args := md.RemainingArgs()
	if len(args) > gem.MaxSlots {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	for i, a := range args {
		switch strings.ToLower(a) {
		case "care":
			req[i] = gem.DontCareHue
		case "track":
			req[i] = gem.DontTrackHue
		case "keep":
			req[i] = gem.DontChange
		default:
			h, err := strconv.ParseUint(a, 10, 32)
			if err != nil {
				return fmt.Errorf("bad hue (%s)", a)
			}
			req[i] = uint32(h)
		}
	}

	env, err := newEnvironment(false)
	if err != nil {
		return err
	}

	mem := guestmem.NewMemory(0, 0x100000)
	sys := gem.NewSystem(env, &inputs.Null{}, &camera.Shared{}, nil, mem)
	if err := sys.Init(gem.Attributes{MaxConnect: gem.MaxSlots}).Err(); err != nil {
		return err
	}
	defer sys.End()

	res, c := sys.TrackHues(req)
	if c.Failed() {
		return c.Err()
	}

	for slot, h := range res {
		rgb, _ := sys.RGB(slot)
		r, g, b := rgb.Bytes()
		fmt.Printf("slot %d: hue %d rgb #%02x%02x%02x\n", slot, h, r, g, b)
	}

	return nil
}
