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

//go:build statsview

package statsview

import (
	"net"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/jetsetilly/gemcore/curated"
)

// milliseconds between samples
const sampleInterval = 1000

// Launch the statistics server on the address in a new goroutine. An empty
// address means DefaultAddress. Returns the URL of the statistics page.
func Launch(addr string) (string, error) {
	if addr == "" {
		addr = DefaultAddress
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", curated.Errorf(BadAddress, err)
	}

	viewer.SetConfiguration(viewer.WithAddr(addr), viewer.WithInterval(sampleInterval))
	go statsview.New().Start()

	return url(addr), nil
}

// Available returns true if the statistics server can be launched.
func Available() bool {
	return true
}
