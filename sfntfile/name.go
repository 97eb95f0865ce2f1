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

package sfntfile

import (
	"encoding/binary"
	"unicode/utf16"
)

// PostScriptName extracts the PostScript name (name ID 6) from the
// raw "name" table of the font.
func PostScriptName(f *Font) (string, bool) {
	return Name(f, 6)
}

// Name extracts an entry from the raw "name" table of the font.  The
// Windows Unicode entry is preferred, with the Macintosh Roman entry
// as fallback.
func Name(f *Font, wantID uint16) (string, bool) {
	data := f.Get("name")
	if len(data) < 6 {
		return "", false
	}
	numRec := int(binary.BigEndian.Uint16(data[2:]))
	storageOffset := int(binary.BigEndian.Uint16(data[4:]))
	if 6+12*numRec > len(data) {
		return "", false
	}

	var macName string
	for i := 0; i < numRec; i++ {
		rec := data[6+12*i:]
		platformID := binary.BigEndian.Uint16(rec)
		encodingID := binary.BigEndian.Uint16(rec[2:])
		languageID := binary.BigEndian.Uint16(rec[4:])
		nameID := binary.BigEndian.Uint16(rec[6:])
		nameLen := int(binary.BigEndian.Uint16(rec[8:]))
		nameOffset := int(binary.BigEndian.Uint16(rec[10:]))

		if nameID != wantID {
			continue
		}
		if storageOffset+nameOffset+nameLen > len(data) {
			continue
		}
		nameBytes := data[storageOffset+nameOffset : storageOffset+nameOffset+nameLen]

		if platformID == 3 && encodingID == 1 && languageID == 0x0409 {
			return utf16Decode(nameBytes), true
		}
		if platformID == 1 && encodingID == 0 && macName == "" {
			macName = string(nameBytes)
		}
	}
	if macName != "" {
		return macName, true
	}
	return "", false
}

func utf16Decode(data []byte) string {
	uu := make([]uint16, len(data)/2)
	for i := range uu {
		uu[i] = binary.BigEndian.Uint16(data[2*i:])
	}
	return string(utf16.Decode(uu))
}
