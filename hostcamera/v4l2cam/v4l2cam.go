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

// Package v4l2cam captures frames from a Video4Linux camera and publishes them
// as RGBA frames. The camera must support the YUYV pixel format.
package v4l2cam

import (
	"context"
	"sync/atomic"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"

	"github.com/jetsetilly/gemcore/curated"
	"github.com/jetsetilly/gemcore/environment"
	"github.com/jetsetilly/gemcore/gem/camera"
	"github.com/jetsetilly/gemcore/logger"
)

// Sentinal error patterns.
const (
	DeviceError      = "v4l2cam: %v"
	AllocationFailed = "v4l2cam: %v"
)

const bufferAlignment = 128

// Memory is the guest memory in which the frame buffers are allocated.
type Memory interface {
	Alloc(size uint32, alignment uint32) (uint32, error)
	Free(handle uint32) error
	Bytes(handle uint32, size int) []byte
}

// Camera is an open capture device.
type Camera struct {
	env *environment.Environment
	cam *camera.Shared
	mem Memory
	dev *device.Device

	info camera.Info
	rgba []byte

	frames atomic.Int64
	errors atomic.Int64

	cancel context.CancelFunc
	done   chan bool
}

// Open the capture device at the path and start capturing. The device may
// choose dimensions other than those requested.
func Open(ctx context.Context, env *environment.Environment, cam *camera.Shared, mem Memory, path string, width, height, fps int) (*Camera, error) {
	dev, err := device.Open(path,
		device.WithIOType(v4l2.IOTypeMMAP),
		device.WithPixFormat(v4l2.PixFormat{
			PixelFormat: v4l2.PixelFmtYUYV,
			Width:       uint32(width),
			Height:      uint32(height),
			Field:       v4l2.FieldNone,
		}),
		device.WithFPS(uint32(fps)),
	)
	if err != nil {
		return nil, curated.Errorf(DeviceError, err)
	}

	pf, err := dev.GetPixFormat()
	if err != nil {
		dev.Close()
		return nil, curated.Errorf(DeviceError, err)
	}
	if pf.PixelFormat != v4l2.PixelFmtYUYV {
		dev.Close()
		return nil, curated.Errorf(DeviceError, "YUYV not supported")
	}

	c := &Camera{
		env: env,
		cam: cam,
		mem: mem,
		dev: dev,
		info: camera.Info{
			Format: camera.FormatRGBA,
			Width:  int(pf.Width),
			Height: int(pf.Height),
		},
		done: make(chan bool, 1),
	}
	c.info.ByteSize = c.info.Size()
	c.rgba = make([]byte, c.info.ByteSize)

	for i := range c.info.Buffers {
		h, err := mem.Alloc(uint32(c.info.ByteSize), bufferAlignment)
		if err != nil {
			c.free()
			dev.Close()
			return nil, curated.Errorf(AllocationFailed, err)
		}
		c.info.Buffers[i] = h
	}

	ctx, c.cancel = context.WithCancel(ctx)
	if err := dev.Start(ctx); err != nil {
		c.cancel()
		c.free()
		dev.Close()
		return nil, curated.Errorf(DeviceError, err)
	}

	logger.Logf(env, "v4l2cam", "%s: %dx%d at %d fps", path, c.info.Width, c.info.Height, fps)

	go c.capture(ctx)

	return c, nil
}

func (c *Camera) capture(ctx context.Context) {
	defer func() {
		c.done <- true
	}()

	frames := c.dev.GetOutput()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if !yuyvToRGBA(frame, c.info.Width, c.info.Height, c.rgba) {
				if c.errors.Add(1) == 1 {
					logger.Logf(c.env, "v4l2cam", "short frame (%d bytes)", len(frame))
				}
				continue
			}
			if buf := c.mem.Bytes(c.info.Buffers[0], len(c.rgba)); buf != nil {
				copy(buf, c.rgba)
			}
			c.cam.Publish(c.info, c.rgba, c.env.Clock.Now())
			c.frames.Add(1)
		}
	}
}

func (c *Camera) free() {
	for i, h := range c.info.Buffers {
		if h != 0 {
			_ = c.mem.Free(h)
			c.info.Buffers[i] = 0
		}
	}
}

// Info returns the descriptor used when frames are published.
func (c *Camera) Info() camera.Info {
	return c.info
}

// Frames returns the number of frames that have been published.
func (c *Camera) Frames() int {
	return int(c.frames.Load())
}

// Close stops capturing and closes the device.
func (c *Camera) Close() error {
	c.cancel()
	<-c.done
	err := c.dev.Close()
	c.free()
	if err != nil {
		return curated.Errorf(DeviceError, err)
	}
	return nil
}

func clampByte(v int32) uint8 {
	return uint8(max(0, min(v, 255)))
}

// yuyvToRGBA converts a YUYV frame to RGBA using the BT.601 coefficients.
// Returns false if either buffer is too small for the dimensions.
func yuyvToRGBA(src []byte, width, height int, dst []byte) bool {
	if len(src) < width*height*2 || len(dst) < width*height*4 {
		return false
	}

	for i := 0; i < width*height/2; i++ {
		s := src[i*4:]
		u := int32(s[1]) - 128
		v := int32(s[3]) - 128

		for j, y := range [2]byte{s[0], s[2]} {
			c := 298 * (int32(y) - 16)
			d := dst[(i*2+j)*4:]
			d[0] = clampByte((c + 409*v + 128) >> 8)
			d[1] = clampByte((c - 100*u - 208*v + 128) >> 8)
			d[2] = clampByte((c + 516*u + 128) >> 8)
			d[3] = 0xff
		}
	}

	return true
}
