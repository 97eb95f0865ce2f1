// seehuhn.de/go/fonttools - tools for maintaining font family releases
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fontdata

import (
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
)

// LineMetrics holds the vertical metrics of a font, in font design
// units.
type LineMetrics struct {
	Ascent    funit.Int16
	Descent   funit.Int16 // negative
	LineGap   funit.Int16
	CapHeight funit.Int16
	XHeight   funit.Int16
}

// Metrics reads the line metrics of the font.
func Metrics(font *sfnt.Font) LineMetrics {
	return LineMetrics{
		Ascent:    font.Ascent,
		Descent:   font.Descent,
		LineGap:   font.LineGap,
		CapHeight: font.CapHeight,
		XHeight:   font.XHeight,
	}
}

// Apply sets the line metrics of the font.
func (m LineMetrics) Apply(font *sfnt.Font) {
	font.Ascent = m.Ascent
	font.Descent = m.Descent
	font.LineGap = m.LineGap
	font.CapHeight = m.CapHeight
	font.XHeight = m.XHeight
}
