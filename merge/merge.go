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

// Package merge combines several fonts into one.
package merge

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fonttools/fontdata"
)

// Fonts merges the given fonts into a single font.  The first font
// provides the family data and the line metrics.  Glyphs of the later
// fonts are appended, and on cmap conflicts the first font wins.
//
// Only fonts with glyf outlines and equal units per em can be merged.
func Fonts(fonts []*sfnt.Font) (*sfnt.Font, error) {
	if len(fonts) < 2 {
		return nil, errors.New("merge: need at least two fonts")
	}
	for i, font := range fonts {
		if !font.IsGlyf() {
			return nil, fmt.Errorf("merge: font %d does not use glyf outlines", i)
		}
		if font.UnitsPerEm != fonts[0].UnitsPerEm {
			return nil, fmt.Errorf("merge: font %d has %d units per em, font 0 has %d",
				i, font.UnitsPerEm, fonts[0].UnitsPerEm)
		}
	}

	res := fonts[0].Clone()
	first := fonts[0].Outlines.(*glyf.Outlines)

	useNames := true
	for _, font := range fonts {
		if font.Outlines.(*glyf.Outlines).Names == nil {
			useNames = false
			break
		}
	}

	merged := &glyf.Outlines{
		Tables: first.Tables,
		Maxp:   first.Maxp,
	}
	entries := make(map[rune]glyph.ID)
	for _, font := range fonts {
		outlines := font.Outlines.(*glyf.Outlines)
		offset := glyph.ID(len(merged.Glyphs))

		newGid := make(map[glyph.ID]glyph.ID, len(outlines.Glyphs))
		for gid := range outlines.Glyphs {
			newGid[glyph.ID(gid)] = glyph.ID(gid) + offset
		}
		for gid := range outlines.Glyphs {
			merged.Glyphs = append(merged.Glyphs,
				outlines.Glyphs[gid].FixComponents(newGid))
			merged.Widths = append(merged.Widths, outlines.Widths[gid])
			if useNames {
				merged.Names = append(merged.Names, outlines.Names[gid])
			}
		}

		fontEntries, err := fontdata.CMapEntries(font)
		if err != nil {
			return nil, err
		}
		for r, gid := range fontEntries {
			if _, ok := entries[r]; !ok {
				entries[r] = gid + offset
			}
		}
	}
	res.Outlines = merged

	// glyph IDs of the later fonts invalidate the layout tables
	res.Gdef = nil
	res.Gsub = nil
	res.Gpos = nil

	err := fontdata.SetCMap(res, entries)
	if err != nil {
		return nil, err
	}
	return res, nil
}
