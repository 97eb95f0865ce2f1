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
	"encoding/binary"
	"sort"

	"seehuhn.de/go/sfnt/glyph"
)

// EncodeFormat12 builds a format 12 cmap subtable for the given
// mapping.  Consecutive runes mapping to consecutive glyph IDs are
// merged into a single group.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
func EncodeFormat12(entries map[rune]glyph.ID) []byte {
	runes := make([]rune, 0, len(entries))
	for r := range entries {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	type group struct {
		start, end uint32
		startGID   uint32
	}
	var groups []group
	for _, r := range runes {
		gid := uint32(entries[r])
		if n := len(groups); n > 0 &&
			groups[n-1].end+1 == uint32(r) &&
			groups[n-1].startGID+(uint32(r)-groups[n-1].start) == gid {
			groups[n-1].end = uint32(r)
		} else {
			groups = append(groups, group{uint32(r), uint32(r), gid})
		}
	}

	length := 16 + 12*len(groups)
	buf := make([]byte, length)
	binary.BigEndian.PutUint16(buf[0:], 12)
	binary.BigEndian.PutUint32(buf[4:], uint32(length))
	binary.BigEndian.PutUint32(buf[12:], uint32(len(groups)))
	for i, g := range groups {
		binary.BigEndian.PutUint32(buf[16+12*i:], g.start)
		binary.BigEndian.PutUint32(buf[20+12*i:], g.end)
		binary.BigEndian.PutUint32(buf[24+12*i:], g.startGID)
	}
	return buf
}
