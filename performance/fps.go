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

package performance

// CalcFPS takes the number of frames and the duration in seconds and returns
// the frames-per-second and the accuracy of that value compared to the target
// rate, as a percentage.
func CalcFPS(numFrames int, duration float64, target int) (fps float64, accuracy float64) {
	if duration <= 0 || target <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / float64(target)
	return fps, accuracy
}
