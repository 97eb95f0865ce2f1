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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testHead returns a minimal "head" table.
func testHead() []byte {
	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[0:], 0x00010000)  // version
	binary.BigEndian.PutUint32(head[12:], 0x5F0F3CF5) // magic
	binary.BigEndian.PutUint16(head[18:], 1000)       // unitsPerEm
	return head
}

func testFont() *Font {
	f := &Font{ScalerType: ScalerTrueType}
	f.Set("head", testHead())
	f.Set("maxp", []byte{0, 1, 0, 0, 0, 3})
	f.Set("cmap", []byte{0, 0, 0, 0})
	f.Set("glyf", []byte{1, 2, 3, 4, 5})
	return f
}

func TestRoundTrip(t *testing.T) {
	f1 := testFont()
	f2, err := Decode(f1.Encode())
	if err != nil {
		t.Fatal(err)
	}

	if f2.ScalerType != f1.ScalerType {
		t.Errorf("scaler type: got 0x%08X, want 0x%08X",
			f2.ScalerType, f1.ScalerType)
	}
	if d := cmp.Diff(f1.Tags(), f2.Tags()); d != "" {
		t.Error(d)
	}
	for _, tag := range []string{"maxp", "cmap", "glyf"} {
		if !bytes.Equal(f1.Get(tag), f2.Get(tag)) {
			t.Errorf("table %q changed", tag)
		}
	}
}

func TestChecksumAdjustment(t *testing.T) {
	data := testFont().Encode()

	// With the checksum adjustment in place, the whole file must sum
	// to the magic value.
	if sum := Checksum(data); sum != 0xB1B0AFBA {
		t.Errorf("file checksum is 0x%08X", sum)
	}
}

func TestChecksum(t *testing.T) {
	cases := []struct {
		data []byte
		sum  uint32
	}{
		{nil, 0},
		{[]byte{0, 0, 0, 1}, 1},
		{[]byte{0, 0, 0, 1, 0, 0, 0, 2}, 3},
		{[]byte{1}, 0x01000000}, // padded with zeros
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 2}, 1},
	}
	for _, c := range cases {
		if got := Checksum(c.data); got != c.sum {
			t.Errorf("Checksum(%v) = 0x%08X, want 0x%08X", c.data, got, c.sum)
		}
	}
}

func TestSetDrop(t *testing.T) {
	f := testFont()

	f.Set("glyf", []byte{9})
	if !bytes.Equal(f.Get("glyf"), []byte{9}) {
		t.Error("Set did not replace table")
	}

	if !f.Drop("cmap") {
		t.Error("Drop returned false for present table")
	}
	if f.Has("cmap") {
		t.Error("table still present after Drop")
	}
	if f.Drop("cmap") {
		t.Error("Drop returned true for missing table")
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := Decode([]byte("not a font, not even close.....")); err == nil {
		t.Error("expected error for garbage data")
	}

	ttc := (&Collection{Version: TTCVersion1, Fonts: []*Font{testFont()}}).Encode()
	if _, err := Decode(ttc); err != ErrCollection {
		t.Errorf("got %v, want ErrCollection", err)
	}
}

func TestPostScriptName(t *testing.T) {
	f := testFont()

	if _, ok := PostScriptName(f); ok {
		t.Error("got a name from a font without a name table")
	}

	f.Set("name", makeNameTable("Test-Bold"))
	name, ok := PostScriptName(f)
	if !ok || name != "Test-Bold" {
		t.Errorf("got (%q, %v), want (%q, true)", name, ok, "Test-Bold")
	}
}

func TestName(t *testing.T) {
	f := testFont()
	f.Set("name", makeNameTable("Test-Bold"))

	name, ok := Name(f, 6)
	if !ok || name != "Test-Bold" {
		t.Errorf("got (%q, %v), want (%q, true)", name, ok, "Test-Bold")
	}
	if _, ok := Name(f, 2); ok {
		t.Error("got a subfamily name from a table without one")
	}
}

// makeNameTable builds a name table with a single (3,1,0x409) record
// for name ID 6.
func makeNameTable(psName string) []byte {
	var val []byte
	for _, r := range psName {
		val = append(val, 0, byte(r))
	}

	buf := make([]byte, 18)
	binary.BigEndian.PutUint16(buf[2:], 1)  // count
	binary.BigEndian.PutUint16(buf[4:], 18) // storage offset
	binary.BigEndian.PutUint16(buf[6:], 3)
	binary.BigEndian.PutUint16(buf[8:], 1)
	binary.BigEndian.PutUint16(buf[10:], 0x0409)
	binary.BigEndian.PutUint16(buf[12:], 6)
	binary.BigEndian.PutUint16(buf[14:], uint16(len(val)))
	binary.BigEndian.PutUint16(buf[16:], 0)
	return append(buf, val...)
}
