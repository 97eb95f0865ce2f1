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

package glyphimage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testHeader = &FileHeader{
	File:       "test.ttf",
	Name:       "Test Font",
	Upem:       1000,
	Ascent:     800,
	Descent:    200,
	Size:       100,
	FontGlyphs: 4,
	NumGlyphs:  4,
}

func TestUnionFrames(t *testing.T) {
	cases := []struct {
		in  []Frame
		out Frame
	}{
		{nil, Frame{}},
		{[]Frame{{1, 2, 3, 4}}, Frame{1, 2, 3, 4}},
		{
			[]Frame{{0, 0, 2, 2}, {1, 1, 4, 4}},
			Frame{0, 0, 5, 5},
		},
		{
			[]Frame{{-2, -3, 2, 2}, {1, 1, 1, 1}},
			Frame{-2, -3, 4, 5},
		},
		{
			// zero-width frames still contribute their vertical extent
			[]Frame{{0, -1, 2, 2}, {0, -10, 0, 20}},
			Frame{0, -10, 2, 20},
		},
	}
	for i, c := range cases {
		got := UnionFrames(c.in)
		if got != c.out {
			t.Errorf("%d: got %v, want %v", i, got, c.out)
		}
	}
}

func TestFramePad(t *testing.T) {
	fr := Frame{1, -2, 3, 4}.Pad(5)
	want := Frame{-4, -7, 13, 14}
	if fr != want {
		t.Errorf("got %v, want %v", fr, want)
	}
}

func TestFrameContains(t *testing.T) {
	fr := Frame{-1, -1, 2, 2}
	for _, p := range [][2]int{{-1, -1}, {0, 0}, {-1, 0}} {
		if !fr.Contains(p[0], p[1]) {
			t.Errorf("(%d,%d) not in %v", p[0], p[1], fr)
		}
	}
	for _, p := range [][2]int{{1, 0}, {0, 1}, {-2, 0}} {
		if fr.Contains(p[0], p[1]) {
			t.Errorf("(%d,%d) in %v", p[0], p[1], fr)
		}
	}
}

func TestMetricsFrame(t *testing.T) {
	im := &Image{
		Header: testHeader,
		Adv:    Advance{Int: 10, Frac: 32},
		Frame:  Frame{0, -5, 5, 5},
	}
	got := im.MetricsFrame()
	want := Frame{0, -80, 11, 100}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	im.Adv = Advance{Int: 10}
	if got := im.MetricsFrame(); got.W != 10 {
		t.Errorf("advance is %d, want 10", got.W)
	}
}

func TestRender(t *testing.T) {
	im := &Image{
		Header: testHeader,
		Adv:    Advance{Int: 2},
		Frame:  Frame{0, -2, 2, 2},
		Data:   []byte{1, 2, 3, 4},
	}

	dst := Frame{-1, -3, 4, 4}
	got := im.Render(dst, 0)
	want := []byte{
		0, 0, 0, 0,
		0, 1, 2, 0,
		0, 3, 4, 0,
		0, 0, 0, 0,
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}

	// clipping at the destination frame
	dst = Frame{1, -2, 2, 1}
	got = im.Render(dst, 0)
	if d := cmp.Diff([]byte{2, 0}, got); d != "" {
		t.Error(d)
	}

	// rows overlap, but the glyph lies entirely outside the
	// destination frame
	dst = Frame{-4, -2, 3, 2}
	got = im.Render(dst, 0)
	if d := cmp.Diff(make([]byte, 6), got); d != "" {
		t.Error(d)
	}
	dst = Frame{3, -2, 3, 2}
	got = im.Render(dst, 0)
	if d := cmp.Diff(make([]byte, 6), got); d != "" {
		t.Error(d)
	}
}

func TestRenderDecorated(t *testing.T) {
	im := &Image{
		Header: testHeader,
		Adv:    Advance{Int: 3},
		Frame:  Frame{1, -1, 1, 1},
		Data:   []byte{0xff},
	}

	dst := Frame{-1, -81, 5, 83}
	data := im.Render(dst, 0x80)

	at := func(x, y int) byte {
		return data[(y-dst.T)*dst.W+x-dst.L]
	}

	// vertical line at x=0 spans ascent to descent
	if at(0, -80) != 0x80 || at(0, 0) != 0x80 || at(0, 1) != 0x80 {
		t.Error("ascent/descent line missing")
	}
	if at(0, -81) != 0 {
		t.Error("ascent line too long")
	}
	// advance line at y=0 from x=0 to the advance width
	if at(1, 0) != 0x80 || at(2, 0) != 0x80 {
		t.Error("advance line missing")
	}
	if at(3, 0) != 0 {
		t.Error("advance line too long")
	}
	// glyph pixels win over decoration
	if at(1, -1) != 0xff {
		t.Error("glyph pixel lost")
	}
}

func TestRenderZeroAdvance(t *testing.T) {
	im := &Image{
		Header: testHeader,
		Adv:    Advance{},
		Frame:  Frame{-2, -2, 1, 1},
		Data:   []byte{0xff},
	}

	dst := Frame{-5, -81, 10, 83}
	data := im.Render(dst, 0x80)

	at := func(x, y int) byte {
		return data[(y-dst.T)*dst.W+x-dst.L]
	}
	// baseline tick from -3 to 3
	for x := -3; x < 4; x++ {
		if at(x, 0) != 0x80 {
			t.Errorf("baseline tick missing at %d", x)
		}
	}
	if at(-4, 0) != 0 || at(4, 0) != 0 {
		t.Error("baseline tick too long")
	}
}

func TestCommonFrame(t *testing.T) {
	c := &Collection{
		Header: testHeader,
		Images: map[int]*Image{
			1: {
				Header: testHeader,
				Adv:    Advance{Int: 10},
				Frame:  Frame{0, -10, 8, 10},
				Data:   make([]byte, 80),
			},
			2: {
				Header: testHeader,
				Adv:    Advance{Int: 4},
				Frame:  Frame{-2, -8, 4, 10},
				Data:   make([]byte, 40),
			},
		},
	}

	got := c.CommonFrame(false)
	want := Frame{-2, -10, 10, 12}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// with metrics the frame spans the full ascent and descent
	got = c.CommonFrame(true)
	want = Frame{-2, -80, 12, 100}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if idx := c.MaxIndex(); idx != 2 {
		t.Errorf("max index is %d", idx)
	}
}

func TestComputeFrame(t *testing.T) {
	a := &Image{
		Header: testHeader,
		Frame:  Frame{0, -4, 4, 4},
	}
	b := &Image{
		Header: testHeader,
		Frame:  Frame{-1, -2, 4, 4},
	}

	fr, err := ComputeFrame(a, b, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Frame{-1, -4, 5, 6}); fr != want {
		t.Errorf("got %v, want %v", fr, want)
	}

	fr, err = ComputeFrame(a, nil, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Frame{-1, -5, 6, 6}); fr != want {
		t.Errorf("got %v, want %v", fr, want)
	}

	if _, err := ComputeFrame(nil, nil, false, 0); err == nil {
		t.Error("expected error for two missing images")
	}
}
