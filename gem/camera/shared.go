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

package camera

import (
	"slices"
	"sync"
	"sync/atomic"
)

// NumBuffers is the number of guest buffer handles published with each frame.
const NumBuffers = 3

// Info describes the current camera frame.
type Info struct {
	Format Format
	Width  int
	Height int

	// the number of bytes in the frame as reported by the camera. this should
	// be the same as BufferSize() for the format and dimensions but the
	// camera is not required to make sure of this
	ByteSize int

	// the primary buffer followed by the two page buffers
	Buffers [NumBuffers]uint32
}

// Size returns the size of the frame as implied by the format and dimensions.
func (inf Info) Size() int {
	return BufferSize(inf.Format, inf.Width, inf.Height)
}

// IsBuffer returns true if the handle is one of the buffers in the frame.
// The zero handle is never a buffer.
func (inf Info) IsBuffer(handle uint32) bool {
	if handle == 0 {
		return false
	}
	return slices.Contains(inf.Buffers[:], handle)
}

// Shared is the frame descriptor shared between the host camera and the
// motion controller subsystem. The zero value has no frame and supports
// conversion.
type Shared struct {
	crit sync.RWMutex
	info Info
	data []byte

	// the timestamp of the most recent frame, in microseconds
	frameTimestamp atomic.Uint64

	noConversion atomic.Bool
}

// Publish a new frame. The data is copied and so can be reused by the caller
// as soon as the function returns.
func (sh *Shared) Publish(info Info, data []byte, timestamp uint64) {
	sh.crit.Lock()
	defer sh.crit.Unlock()

	sh.info = info
	if cap(sh.data) < len(data) {
		sh.data = make([]byte, len(data))
	}
	sh.data = sh.data[:len(data)]
	copy(sh.data, data)

	sh.frameTimestamp.Store(timestamp)
}

// Info returns the descriptor of the current frame.
func (sh *Shared) Info() Info {
	sh.crit.RLock()
	defer sh.crit.RUnlock()
	return sh.info
}

// Dimensions assumed before the first frame is published.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Width of current frame in pixels. DefaultWidth is returned if no frame has
// been published.
func (sh *Shared) Width() int {
	if w := sh.Info().Width; w > 0 {
		return w
	}
	return DefaultWidth
}

// Height of current frame in pixels. DefaultHeight is returned if no frame
// has been published.
func (sh *Shared) Height() int {
	if h := sh.Info().Height; h > 0 {
		return h
	}
	return DefaultHeight
}

// Format of current frame
func (sh *Shared) Format() Format {
	return sh.Info().Format
}

// Size of current frame in bytes
func (sh *Shared) Size() int {
	return sh.Info().Size()
}

// FrameTimestamp returns the timestamp of the most recent frame.
func (sh *Shared) FrameTimestamp() uint64 {
	return sh.frameTimestamp.Load()
}

// Frame returns a copy of the frame if the handle is one of the frame's
// buffers. The dst slice is reused if it has sufficient capacity.
func (sh *Shared) Frame(handle uint32, dst []byte) ([]byte, Info, bool) {
	sh.crit.RLock()
	defer sh.crit.RUnlock()

	if !sh.info.IsBuffer(handle) {
		return dst[:0], sh.info, false
	}

	dst = append(dst[:0], sh.data...)
	return dst, sh.info, true
}

// SupportsConversion returns true if the camera produces frames that can be
// converted for the guest.
func (sh *Shared) SupportsConversion() bool {
	return !sh.noConversion.Load()
}

// SetSupportsConversion sets whether the camera produces frames that can be
// converted for the guest.
func (sh *Shared) SetSupportsConversion(support bool) {
	sh.noConversion.Store(!support)
}
