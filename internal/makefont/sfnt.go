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

// Package makefont provides fonts for use in unit tests.
package makefont

import (
	"bytes"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fonttools/sfntfile"
)

// TrueType returns a font with glyf outlines.
func TrueType() *sfnt.Font {
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	return info
}

// RawTrueType returns the table-level view of the same font.
func RawTrueType() *sfntfile.Font {
	font, err := sfntfile.Decode(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return font
}
