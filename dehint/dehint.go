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

// Package dehint removes TrueType hinting from fonts.  Hinting
// tables are dropped and the instructions are stripped from the
// glyph programs, leaving the outlines untouched.
package dehint

import (
	"encoding/binary"
	"errors"

	"seehuhn.de/go/fonttools/sfntfile"
)

// Tables removed from dehinted fonts.  "TTFA" holds ttfautohint
// source information and is useless once the hints are gone.
var hintTables = []string{
	"fpgm", "prep", "cvt ", "hdmx", "LTSH", "VDMX", "TTFA",
}

var errMalformed = errors.New("dehint: malformed glyf table")

// Strip removes hinting from the font in place.  For CFF fonts only
// the hinting tables are dropped.
func Strip(f *sfntfile.Font) error {
	for _, tag := range hintTables {
		f.Drop(tag)
	}

	glyfData := f.Get("glyf")
	if glyfData == nil {
		return nil
	}
	headData := f.Get("head")
	locaData := f.Get("loca")
	if len(headData) < 54 || locaData == nil {
		return errMalformed
	}

	locaFormat := int16(binary.BigEndian.Uint16(headData[50:]))
	offsets, err := decodeLoca(locaData, locaFormat, len(glyfData))
	if err != nil {
		return err
	}

	var newGlyf []byte
	newOffsets := make([]int, 0, len(offsets))
	for i := 0; i+1 < len(offsets); i++ {
		newOffsets = append(newOffsets, len(newGlyf))
		glyph := glyfData[offsets[i]:offsets[i+1]]
		if len(glyph) == 0 {
			continue
		}
		newGlyf, err = appendStripped(newGlyf, glyph)
		if err != nil {
			return err
		}
	}
	newOffsets = append(newOffsets, len(newGlyf))

	newLoca, newFormat := encodeLoca(newOffsets)

	newHead := make([]byte, len(headData))
	copy(newHead, headData)
	binary.BigEndian.PutUint16(newHead[50:], uint16(newFormat))

	f.Set("glyf", newGlyf)
	f.Set("loca", newLoca)
	f.Set("head", newHead)

	if maxpData := f.Get("maxp"); len(maxpData) >= 32 &&
		binary.BigEndian.Uint32(maxpData) == 0x00010000 {
		newMaxp := make([]byte, len(maxpData))
		copy(newMaxp, maxpData)
		binary.BigEndian.PutUint16(newMaxp[14:], 1) // maxZones
		for _, off := range []int{16, 18, 20, 22, 24, 26} {
			binary.BigEndian.PutUint16(newMaxp[off:], 0)
		}
		f.Set("maxp", newMaxp)
	}

	return nil
}

// appendStripped appends the glyph with its instructions removed.
// The point data is copied unchanged.
func appendStripped(buf, glyph []byte) ([]byte, error) {
	if len(glyph) < 10 {
		return nil, errMalformed
	}
	numContours := int16(binary.BigEndian.Uint16(glyph))

	if numContours >= 0 {
		endPtsLen := 10 + 2*int(numContours)
		if len(glyph) < endPtsLen+2 {
			return nil, errMalformed
		}
		instrLen := int(binary.BigEndian.Uint16(glyph[endPtsLen:]))
		if len(glyph) < endPtsLen+2+instrLen {
			return nil, errMalformed
		}
		buf = append(buf, glyph[:endPtsLen]...)
		buf = append(buf, 0, 0)
		buf = append(buf, glyph[endPtsLen+2+instrLen:]...)
	} else {
		buf = append(buf, glyph[:10]...)
		data := glyph[10:]
		for {
			if len(data) < 4 {
				return nil, errMalformed
			}
			flags := binary.BigEndian.Uint16(data)
			flags &^= 0x0100 // WE_HAVE_INSTRUCTIONS

			skip := 4
			if flags&0x0001 != 0 { // ARG_1_AND_2_ARE_WORDS
				skip += 4
			} else {
				skip += 2
			}
			if flags&0x0008 != 0 { // WE_HAVE_A_SCALE
				skip += 2
			} else if flags&0x0040 != 0 { // WE_HAVE_AN_X_AND_Y_SCALE
				skip += 4
			} else if flags&0x0080 != 0 { // WE_HAVE_A_TWO_BY_TWO
				skip += 8
			}
			if len(data) < skip {
				return nil, errMalformed
			}
			buf = append(buf, byte(flags>>8), byte(flags))
			buf = append(buf, data[2:skip]...)
			data = data[skip:]

			if flags&0x0020 == 0 { // MORE_COMPONENTS
				break
			}
		}
		// trailing instructions are dropped
	}

	for len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	return buf, nil
}

func decodeLoca(data []byte, format int16, glyfLen int) ([]int, error) {
	var offs []int
	switch format {
	case 0:
		n := len(data)
		if n < 4 || n%2 != 0 {
			return nil, errMalformed
		}
		offs = make([]int, n/2)
		prev := 0
		for i := range offs {
			pos := 2 * int(binary.BigEndian.Uint16(data[2*i:]))
			if pos < prev || pos > glyfLen {
				return nil, errMalformed
			}
			offs[i] = pos
			prev = pos
		}
	case 1:
		n := len(data)
		if n < 8 || n%4 != 0 {
			return nil, errMalformed
		}
		offs = make([]int, n/4)
		prev := 0
		for i := range offs {
			pos := int(binary.BigEndian.Uint32(data[4*i:]))
			if pos < prev || pos > glyfLen {
				return nil, errMalformed
			}
			offs[i] = pos
			prev = pos
		}
	default:
		return nil, errors.New("dehint: invalid loca format")
	}
	return offs, nil
}

func encodeLoca(offs []int) ([]byte, int16) {
	if offs[len(offs)-1] <= 2*0xFFFF {
		data := make([]byte, 2*len(offs))
		for i, off := range offs {
			binary.BigEndian.PutUint16(data[2*i:], uint16(off/2))
		}
		return data, 0
	}
	data := make([]byte, 4*len(offs))
	for i, off := range offs {
		binary.BigEndian.PutUint32(data[4*i:], uint32(off))
	}
	return data, 1
}
