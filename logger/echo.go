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

package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Echo is an io.Writer suitable for use with SetEcho(). Each log entry
// written to it is forwarded to a zerolog logger, with the entry tag as a
// structured field.
type Echo struct {
	zl zerolog.Logger
}

// NewEcho creates an Echo writing to output. If console is true then output
// is human readable (zerolog.ConsoleWriter) otherwise each entry is a JSON
// object on its own line.
func NewEcho(output io.Writer, console bool) *Echo {
	if console {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.TimeOnly}
	}
	return &Echo{
		zl: zerolog.New(output).With().Timestamp().Logger(),
	}
}

// Write implements the io.Writer interface. The input is expected to be in
// the format produced by Entry.String().
func (e *Echo) Write(p []byte) (int, error) {
	s := strings.TrimSuffix(string(p), "\n")
	tag, detail, ok := strings.Cut(s, ": ")
	if !ok {
		detail = tag
		tag = ""
	}
	e.zl.Info().Str("tag", tag).Msg(detail)
	return len(p), nil
}
