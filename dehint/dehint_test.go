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

package dehint

import (
	"bytes"
	"encoding/binary"
	"testing"

	"seehuhn.de/go/fonttools/sfntfile"
)

// simpleGlyph builds a one-contour glyph with two points and the
// given instructions.
func simpleGlyph(instructions []byte) []byte {
	var buf []byte
	buf = appendU16(buf, 1)          // numberOfContours
	buf = appendU16(buf, 0, 0, 1, 1) // bbox
	buf = appendU16(buf, 1)          // endPtsOfContours
	buf = appendU16(buf, uint16(len(instructions)))
	buf = append(buf, instructions...)
	buf = append(buf,
		0x01, 0x01, // flags: two on-curve points, long vectors
		0, 0, 0, 1, // x coordinates
		0, 0, 0, 1, // y coordinates
	)
	for len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// compositeGlyph builds a glyph with two components referencing
// glyph 1, with trailing instructions.
func compositeGlyph(instructions []byte) []byte {
	var buf []byte
	buf = appendU16(buf, 0xFFFF)     // numberOfContours = -1
	buf = appendU16(buf, 0, 0, 1, 1) // bbox
	// first component: word args, more components follow
	buf = appendU16(buf, 0x0001|0x0020|0x0100, 1, 0, 0)
	// second component: byte args, last
	buf = appendU16(buf, 0x0100, 1)
	buf = append(buf, 10, 20)
	buf = appendU16(buf, uint16(len(instructions)))
	buf = append(buf, instructions...)
	for len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func hintedFont(t *testing.T) *sfntfile.Font {
	t.Helper()

	instr := []byte{0xB0, 0x01, 0x2C} // some instruction bytes
	glyphs := [][]byte{
		nil, // .notdef, empty
		simpleGlyph(instr),
		compositeGlyph(instr),
	}
	var glyf []byte
	offs := []int{0}
	for _, g := range glyphs {
		glyf = append(glyf, g...)
		offs = append(offs, len(glyf))
	}
	loca, format := encodeLoca(offs)

	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[12:], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(head[50:], uint16(format))

	maxp := make([]byte, 32)
	binary.BigEndian.PutUint32(maxp, 0x00010000)
	binary.BigEndian.PutUint16(maxp[4:], uint16(len(glyphs)))
	binary.BigEndian.PutUint16(maxp[14:], 2)  // maxZones
	binary.BigEndian.PutUint16(maxp[26:], 64) // maxSizeOfInstructions

	f := &sfntfile.Font{ScalerType: sfntfile.ScalerTrueType}
	f.Set("head", head)
	f.Set("maxp", maxp)
	f.Set("loca", loca)
	f.Set("glyf", glyf)
	f.Set("fpgm", []byte{1, 2, 3})
	f.Set("prep", []byte{4, 5})
	f.Set("cvt ", []byte{0, 10})
	f.Set("hdmx", []byte{0})
	f.Set("name", []byte("keepme"))
	return f
}

func TestStripTables(t *testing.T) {
	f := hintedFont(t)
	if err := Strip(f); err != nil {
		t.Fatal(err)
	}

	for _, tag := range []string{"fpgm", "prep", "cvt ", "hdmx"} {
		if f.Has(tag) {
			t.Errorf("table %q not dropped", tag)
		}
	}
	if !f.Has("name") {
		t.Error("unrelated table dropped")
	}
}

func TestStripInstructions(t *testing.T) {
	f := hintedFont(t)
	if err := Strip(f); err != nil {
		t.Fatal(err)
	}

	glyf := f.Get("glyf")
	if bytes.Contains(glyf, []byte{0xB0, 0x01, 0x2C}) {
		t.Error("instructions still present in glyf table")
	}

	loca := f.Get("loca")
	head := f.Get("head")
	format := int16(binary.BigEndian.Uint16(head[50:]))
	offs, err := decodeLoca(loca, format, len(glyf))
	if err != nil {
		t.Fatal(err)
	}
	if len(offs) != 4 {
		t.Fatalf("got %d loca entries, want 4", len(offs))
	}
	if offs[0] != 0 || offs[1] != 0 {
		t.Error("empty .notdef glyph changed")
	}

	// simple glyph: zero instruction length, point data preserved
	g := glyf[offs[1]:offs[2]]
	if n := binary.BigEndian.Uint16(g[12:]); n != 0 {
		t.Errorf("instruction length is %d", n)
	}
	wantTail := []byte{0x01, 0x01, 0, 0, 0, 1, 0, 0, 0, 1}
	if !bytes.Contains(g, wantTail) {
		t.Error("point data damaged")
	}

	// composite glyph: instruction flag cleared, args preserved
	g = glyf[offs[2]:offs[3]]
	flags := binary.BigEndian.Uint16(g[10:])
	if flags&0x0100 != 0 {
		t.Error("WE_HAVE_INSTRUCTIONS still set")
	}
	if flags&0x0021 != 0x0021 {
		t.Error("component flags damaged")
	}
	if !bytes.Contains(g, []byte{10, 20}) {
		t.Error("component args damaged")
	}
}

func TestStripMaxp(t *testing.T) {
	f := hintedFont(t)
	if err := Strip(f); err != nil {
		t.Fatal(err)
	}

	maxp := f.Get("maxp")
	if n := binary.BigEndian.Uint16(maxp[14:]); n != 1 {
		t.Errorf("maxZones is %d", n)
	}
	if n := binary.BigEndian.Uint16(maxp[26:]); n != 0 {
		t.Errorf("maxSizeOfInstructions is %d", n)
	}
	if n := binary.BigEndian.Uint16(maxp[4:]); n != 3 {
		t.Errorf("numGlyphs changed to %d", n)
	}
}

func TestStripCFF(t *testing.T) {
	f := &sfntfile.Font{ScalerType: sfntfile.ScalerCFF}
	f.Set("CFF ", []byte{1, 0, 4, 2})
	f.Set("fpgm", []byte{1})
	if err := Strip(f); err != nil {
		t.Fatal(err)
	}
	if f.Has("fpgm") {
		t.Error("fpgm not dropped")
	}
	if !f.Has("CFF ") {
		t.Error("CFF table dropped")
	}
}

func TestLocaRoundTrip(t *testing.T) {
	cases := [][]int{
		{0, 0, 100, 131070},
		{0, 2, 4, 200000},
	}
	for _, offs := range cases {
		data, format := encodeLoca(offs)
		got, err := decodeLoca(data, format, offs[len(offs)-1])
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(offs) {
			t.Fatalf("length changed")
		}
		for i := range offs {
			if got[i] != offs[i] {
				t.Errorf("offs[%d] = %d, want %d", i, got[i], offs[i])
			}
		}
	}
}

func appendU16(buf []byte, xx ...uint16) []byte {
	for _, x := range xx {
		buf = append(buf, byte(x>>8), byte(x))
	}
	return buf
}
