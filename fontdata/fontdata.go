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

// Package fontdata provides operations on the character mapping and
// metrics of parsed fonts.
package fontdata

import (
	"errors"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fonttools/charset"
)

// CMapEntries returns the mapping from runes to glyph IDs, taken from
// the best cmap subtable of the font.
func CMapEntries(font *sfnt.Font) (map[rune]glyph.ID, error) {
	subtable, err := font.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	res := make(map[rune]glyph.ID)
	low, high := subtable.CodeRange()
	for r := low; r <= high; r++ {
		if gid := subtable.Lookup(r); gid != 0 {
			res[r] = gid
		}
	}
	return res, nil
}

// Coverage returns the set of characters the font has glyphs for.
func Coverage(font *sfnt.Font) (charset.Set, error) {
	entries, err := CMapEntries(font)
	if err != nil {
		return nil, err
	}
	res := make(charset.Set, len(entries))
	for r := range entries {
		res.Add(r)
	}
	return res, nil
}

// SetCMap replaces the cmap table of the font so that it contains
// exactly the given entries.  A format 4 subtable covers the Basic
// Multilingual Plane; if entries beyond the BMP are present, a
// format 12 subtable is added for the full mapping.
func SetCMap(font *sfnt.Font, entries map[rune]glyph.ID) error {
	if len(entries) == 0 {
		return errors.New("fontdata: empty character mapping")
	}

	bmp := cmap.Format4{}
	needsFull := false
	for r, gid := range entries {
		if r >= 0xFFFF || (r >= 0xD800 && r < 0xE000) {
			needsFull = true
			continue
		}
		bmp[uint16(r)] = gid
	}

	table := cmap.Table{
		{PlatformID: 3, EncodingID: 1}: bmp.Encode(0),
	}
	if needsFull {
		table[cmap.Key{PlatformID: 3, EncodingID: 10}] = EncodeFormat12(entries)
	}
	font.CMapTable = table
	return nil
}

// DeleteFromCMap removes the given characters from the cmap of the
// font.  The remaining entries are preserved.
func DeleteFromCMap(font *sfnt.Font, set charset.Set) error {
	entries, err := CMapEntries(font)
	if err != nil {
		return err
	}
	for r := range set {
		delete(entries, r)
	}
	return SetCMap(font, entries)
}

// AddToCMap adds the given entries to the cmap of the font.  New
// entries win over existing ones.
func AddToCMap(font *sfnt.Font, add map[rune]glyph.ID) error {
	entries, err := CMapEntries(font)
	if err != nil {
		return err
	}
	for r, gid := range add {
		entries[r] = gid
	}
	return SetCMap(font, entries)
}

// Version returns the font revision as a printable string.
func Version(font *sfnt.Font) string {
	return font.Version.String()
}
