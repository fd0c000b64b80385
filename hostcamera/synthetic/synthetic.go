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

// Package synthetic is a camera that renders coloured spheres on a dark
// background. The frames can be tracked in the same way as those from a real
// camera and so it is useful for testing and for hosts without a camera.
package synthetic

import (
	"sync"
	"time"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/gem/colour"
	"github.com/jetsetilly/gemcore/gem/inputs"
)

// Sentinal error patterns.
const (
	UnsupportedFormat = "synthetic: unsupported format (%v)"
	BadDimensions     = "synthetic: bad dimensions (%dx%d)"
	AllocationFailed  = "synthetic: %v"
)

// camera buffers are aligned to this boundary in guest memory
const bufferAlignment = 128

// brightness of the background
const background = 0x10

// Memory is the guest memory in which the frame buffers are allocated.
type Memory interface {
	Alloc(size uint32, alignment uint32) (uint32, error)
	Free(handle uint32) error
	Bytes(handle uint32, size int) []byte
}

// Sphere is drawn into every frame while it is visible. The coordinates are
// in pixels.
type Sphere struct {
	Visible bool
	X       float64
	Y       float64
	Radius  float64
	Colour  colour.RGB
}

// Camera renders and publishes frames.
type Camera struct {
	env *environment.Environment
	cam *camera.Shared
	mem Memory

	info  camera.Info
	frame []byte

	crit    sync.Mutex
	spheres [inputs.MaxSlots]Sphere
	frames  int

	quit chan bool
	done chan bool
}

// NewCamera is the preferred method of initialisation for the Camera type.
// Only the RGBA and RAW8 formats are supported.
func NewCamera(env *environment.Environment, cam *camera.Shared, mem Memory, format camera.Format, width, height int) (*Camera, error) {
	if format != camera.FormatRGBA && format != camera.FormatRAW8 {
		return nil, curated.Errorf(UnsupportedFormat, format)
	}
	if width < 2 || height < 2 {
		return nil, curated.Errorf(BadDimensions, width, height)
	}

	c := &Camera{
		env: env,
		cam: cam,
		mem: mem,
		info: camera.Info{
			Format: format,
			Width:  width,
			Height: height,
		},
	}
	c.info.ByteSize = c.info.Size()
	c.frame = make([]byte, c.info.ByteSize)

	for i := range c.info.Buffers {
		h, err := mem.Alloc(uint32(c.info.ByteSize), bufferAlignment)
		if err != nil {
			c.free()
			return nil, curated.Errorf(AllocationFailed, err)
		}
		c.info.Buffers[i] = h
	}

	return c, nil
}

func (c *Camera) free() {
	for i, h := range c.info.Buffers {
		if h != 0 {
			_ = c.mem.Free(h)
			c.info.Buffers[i] = 0
		}
	}
}

// Close stops the camera and frees the frame buffers.
func (c *Camera) Close() {
	c.Stop()
	c.free()
}

// Info returns the descriptor used when frames are published.
func (c *Camera) Info() camera.Info {
	return c.info
}

// SetSphere changes the sphere drawn for the slot.
func (c *Camera) SetSphere(slot int, s Sphere) {
	if slot < 0 || slot >= inputs.MaxSlots {
		return
	}
	c.crit.Lock()
	defer c.crit.Unlock()
	c.spheres[slot] = s
}

// Frames returns the number of frames that have been published.
func (c *Camera) Frames() int {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.frames
}

// Render a frame and publish it. The frame is also written to the primary
// buffer in guest memory.
func (c *Camera) Render() {
	c.crit.Lock()
	spheres := c.spheres
	c.frames++
	c.crit.Unlock()

	for y := range c.info.Height {
		for x := range c.info.Width {
			r, g, b := uint8(background), uint8(background), uint8(background)
			for _, s := range spheres {
				if !s.Visible {
					continue
				}
				dx := float64(x) - s.X
				dy := float64(y) - s.Y
				if dx*dx+dy*dy <= s.Radius*s.Radius {
					r, g, b = s.Colour.Bytes()
				}
			}
			c.plot(x, y, r, g, b)
		}
	}

	if buf := c.mem.Bytes(c.info.Buffers[0], len(c.frame)); buf != nil {
		copy(buf, c.frame)
	}

	c.cam.Publish(c.info, c.frame, c.env.Clock.Now())
}

func (c *Camera) plot(x, y int, r, g, b uint8) {
	switch c.info.Format {
	case camera.FormatRGBA:
		p := c.frame[(y*c.info.Width+x)*4:]
		p[0] = r
		p[1] = g
		p[2] = b
		p[3] = 0xff

	case camera.FormatRAW8:
		// BGGR bayer pattern
		var v uint8
		switch {
		case y&1 == 0 && x&1 == 0:
			v = b
		case y&1 == 1 && x&1 == 1:
			v = r
		default:
			v = g
		}
		c.frame[y*c.info.Width+x] = v
	}
}

// Start rendering frames at the rate. Has no effect if the camera is already
// running.
func (c *Camera) Start(fps int) {
	if c.quit != nil || fps <= 0 {
		return
	}
	c.quit = make(chan bool, 1)
	c.done = make(chan bool, 1)

	go func() {
		defer func() {
			c.done <- true
		}()

		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()

		for {
			select {
			case <-c.quit:
				return
			case <-ticker.C:
				c.Render()
			}
		}
	}()
}

// Stop rendering frames.
func (c *Camera) Stop() {
	if c.quit == nil {
		return
	}
	c.quit <- true
	<-c.done
	c.quit = nil
	c.done = nil
}
