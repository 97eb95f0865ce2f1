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

package cjk

import (
	"testing"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fonttools/fontdata"
	"seehuhn.de/go/fonttools/internal/makefont"
	"seehuhn.de/go/fonttools/sfntfile"
)

func TestDefaultEmoji(t *testing.T) {
	set := DefaultEmoji()
	if set.Len() != 26 {
		t.Errorf("set has %d characters, want 26", set.Len())
	}
	for _, r := range []rune{0x26BD, 0x1F18E, 0x1F195, 0x1F236, 0x1F251} {
		if !set.Contains(r) {
			t.Errorf("%04x missing", r)
		}
	}
	if set.Contains(0x1F237) {
		t.Error("1f237 must not be in the set")
	}
}

func TestRemoveDefaultEmoji(t *testing.T) {
	font := makefont.TrueType()
	err := fontdata.AddToCMap(font, map[rune]glyph.ID{
		0x26BD:  3,
		0x1F18E: 4,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := RemoveDefaultEmoji(font); err != nil {
		t.Fatal(err)
	}

	cov, err := fontdata.Coverage(font)
	if err != nil {
		t.Fatal(err)
	}
	if cov.Contains(0x26BD) || cov.Contains(0x1F18E) {
		t.Error("emoji still covered")
	}
	if !cov.Contains('A') {
		t.Error("'A' lost")
	}
}

// rawCJKFont builds a table-level font whose cmap maps some text
// characters and some default-emoji characters.
func rawCJKFont() *sfntfile.Font {
	bmp := cmap.Format4{
		uint16('A'):    1,
		uint16('B'):    2,
		uint16(0x26BD): 3, // soccer ball, default emoji
	}
	full := map[rune]glyph.ID{
		'A':     1,
		'B':     2,
		0x26BD:  3,
		0x1F18E: 4,
	}
	table := cmap.Table{
		{PlatformID: 3, EncodingID: 1}:  bmp.Encode(0),
		{PlatformID: 3, EncodingID: 10}: fontdata.EncodeFormat12(full),
	}

	f := &sfntfile.Font{ScalerType: sfntfile.ScalerTrueType}
	f.Set("cmap", table.Encode())
	f.Set("glyf", []byte{1, 2, 3, 4})
	return f
}

func TestRemoveDefaultEmojiRaw(t *testing.T) {
	f := rawCJKFont()
	glyfBefore := f.Get("glyf")

	changed, err := RemoveDefaultEmojiRaw(f)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("cmap not changed")
	}

	table, err := cmap.Decode(f.Get("cmap"))
	if err != nil {
		t.Fatal(err)
	}
	for key := range table {
		subtable, err := table.Get(key)
		if err != nil {
			t.Fatal(err)
		}
		if subtable.Lookup(0x26BD) != 0 {
			t.Errorf("subtable (%d,%d) still maps 26bd", key.PlatformID, key.EncodingID)
		}
		if subtable.Lookup('A') != 1 {
			t.Errorf("subtable (%d,%d) lost 'A'", key.PlatformID, key.EncodingID)
		}
	}

	if &glyfBefore[0] != &f.Get("glyf")[0] {
		t.Error("glyf table touched")
	}

	// a second run must be a no-op
	changed, err = RemoveDefaultEmojiRaw(f)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second run changed the cmap again")
	}
}

func TestPatchTTC(t *testing.T) {
	shared := []byte{9, 9, 9, 9}
	f1 := rawCJKFont()
	f1.Set("glyf", shared)
	f2 := rawCJKFont()
	f2.Set("glyf", shared)
	c := &sfntfile.Collection{
		Version: sfntfile.TTCVersion1,
		Fonts:   []*sfntfile.Font{f1, f2},
	}

	changed, err := PatchTTC(c)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("collection not changed")
	}

	// identical patched cmaps and the shared glyf table must still be
	// stored once each
	c2, err := sfntfile.DecodeCollection(c.Encode())
	if err != nil {
		t.Fatal(err)
	}
	g1 := c2.Fonts[0].Get("glyf")
	g2 := c2.Fonts[1].Get("glyf")
	if &g1[0] != &g2[0] {
		t.Error("glyf sharing lost")
	}
	m1 := c2.Fonts[0].Get("cmap")
	m2 := c2.Fonts[1].Get("cmap")
	if &m1[0] != &m2[0] {
		t.Error("identical cmaps not shared")
	}
}

func TestFixThinWeight(t *testing.T) {
	font := &sfnt.Font{
		Weight:   100,
		Version:  0x00010000,
		Outlines: &cff.Outlines{},
	}

	if err := FixThinWeight(font); err != nil {
		t.Fatal(err)
	}
	if font.Weight != 250 {
		t.Errorf("weight is %d", font.Weight)
	}
	if font.Version.String() != "1.001" {
		t.Errorf("version is %s", font.Version)
	}
	if font.Description == "" {
		t.Error("no change notice")
	}

	// weight must be exactly 100 before the fix
	if err := FixThinWeight(font); err == nil {
		t.Error("expected error for weight 250")
	}

	ttf := makefont.TrueType()
	if err := FixThinWeight(ttf); err == nil {
		t.Error("expected error for glyf font")
	}
}
