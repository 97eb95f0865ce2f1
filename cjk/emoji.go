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

// Package cjk patches pan-CJK fonts for platform integration.
package cjk

import (
	"encoding/binary"
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fonttools/charset"
	"seehuhn.de/go/fonttools/fontdata"
	"seehuhn.de/go/fonttools/sfntfile"
)

// DefaultEmoji returns the characters which have emoji presentation
// by default (UTR #51).  Platforms serve these from a dedicated color
// emoji font, so CJK text fonts must not claim them.
func DefaultEmoji() charset.Set {
	set := charset.New(0x26BD, 0x26BE, 0x1F18E)
	set.AddRange(0x1F191, 0x1F19A)
	set.Add(0x1F201)
	set.Add(0x1F21A)
	set.Add(0x1F22F)
	set.AddRange(0x1F232, 0x1F236)
	set.AddRange(0x1F238, 0x1F23A)
	set.Add(0x1F250)
	set.Add(0x1F251)
	return set
}

// RemoveDefaultEmoji removes the default-emoji characters from the
// cmap of a parsed font.
func RemoveDefaultEmoji(font *sfnt.Font) error {
	return fontdata.DeleteFromCMap(font, DefaultEmoji())
}

// RemoveDefaultEmojiRaw removes the default-emoji characters from the
// cmap table of a raw font, leaving all other tables untouched.
// Only format 4 and format 12 subtables are rewritten.  It reports
// whether the cmap was changed.
func RemoveDefaultEmojiRaw(f *sfntfile.Font) (bool, error) {
	data := f.Get("cmap")
	if data == nil {
		return false, errors.New("cjk: font has no cmap table")
	}
	table, err := cmap.Decode(data)
	if err != nil {
		return false, err
	}

	emoji := DefaultEmoji()
	changed := false
	for key, subtableData := range table {
		if len(subtableData) < 2 {
			continue
		}
		format := binary.BigEndian.Uint16(subtableData)
		if format != 4 && format != 12 {
			continue
		}
		subtable, err := table.Get(key)
		if err != nil {
			continue
		}

		entries := make(map[rune]glyph.ID)
		removed := false
		low, high := subtable.CodeRange()
		for r := low; r <= high; r++ {
			gid := subtable.Lookup(r)
			if gid == 0 {
				continue
			}
			if emoji.Contains(r) {
				removed = true
				continue
			}
			entries[r] = gid
		}
		if !removed {
			continue
		}

		switch format {
		case 4:
			bmp := cmap.Format4{}
			for r, gid := range entries {
				bmp[uint16(r)] = gid
			}
			table[key] = bmp.Encode(key.Language)
		case 12:
			table[key] = fontdata.EncodeFormat12(entries)
		}
		changed = true
	}

	if changed {
		f.Set("cmap", table.Encode())
	}
	return changed, nil
}

// PatchTTC removes the default-emoji characters from every member of
// a TrueType collection.  Because only the cmap tables are rewritten,
// sharing of all other tables survives.
func PatchTTC(c *sfntfile.Collection) (bool, error) {
	changed := false
	for i, font := range c.Fonts {
		ch, err := RemoveDefaultEmojiRaw(font)
		if err != nil {
			return changed, fmt.Errorf("member %d: %w", i, err)
		}
		changed = changed || ch
	}
	return changed, nil
}
