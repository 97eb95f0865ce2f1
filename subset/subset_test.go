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

package subset

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fonttools/charset"
	"seehuhn.de/go/fonttools/fontdata"
	"seehuhn.de/go/fonttools/internal/makefont"
)

func TestInclude(t *testing.T) {
	font := makefont.TrueType()
	include := charset.New('A', 'B', 0xC4) // 0xC4 is a composite, Ä

	sub, err := Font(font, &Options{Include: include})
	if err != nil {
		t.Fatal(err)
	}

	cov, err := fontdata.Coverage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if got := cov.Format(" "); got != include.Format(" ") {
		t.Errorf("coverage is %q, want %q", got, include.Format(" "))
	}

	if sub.NumGlyphs() >= font.NumGlyphs() {
		t.Errorf("subset has %d glyphs, original %d",
			sub.NumGlyphs(), font.NumGlyphs())
	}
	// .notdef plus three kept glyphs, plus any components of Ä
	if sub.NumGlyphs() < 4 {
		t.Errorf("subset has only %d glyphs", sub.NumGlyphs())
	}

	// advance widths must survive renumbering
	origEntries, err := fontdata.CMapEntries(font)
	if err != nil {
		t.Fatal(err)
	}
	subEntries, err := fontdata.CMapEntries(sub)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range include.Runes() {
		w1 := font.GlyphWidth(origEntries[r])
		w2 := sub.GlyphWidth(subEntries[r])
		if w1 != w2 {
			t.Errorf("width of %04x changed from %g to %g", r, w1, w2)
		}
	}
}

func TestExclude(t *testing.T) {
	font := makefont.TrueType()

	sub, err := Font(font, &Options{Exclude: charset.New('A')})
	if err != nil {
		t.Fatal(err)
	}

	cov, err := fontdata.Coverage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if cov.Contains('A') {
		t.Error("'A' still covered")
	}
	if !cov.Contains('B') {
		t.Error("'B' lost")
	}
}

func TestPrune(t *testing.T) {
	font := makefont.TrueType()

	sub, err := Font(font, nil)
	if err != nil {
		t.Fatal(err)
	}

	before, err := fontdata.Coverage(font)
	if err != nil {
		t.Fatal(err)
	}
	after, err := fontdata.Coverage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if before.Format(" ") != after.Format(" ") {
		t.Error("pruning changed the coverage")
	}
	if sub.NumGlyphs() > font.NumGlyphs() {
		t.Error("pruning added glyphs")
	}
}

// TestKeptComponent checks that a component with a higher glyph ID
// than its composite is stored only once when it is kept in its own
// right as well.
func TestKeptComponent(t *testing.T) {
	font := makefont.TrueType()
	outlines := font.Outlines.(*glyf.Outlines)

	var compGid glyph.ID
	for gid := range outlines.Glyphs {
		if len(outlines.Glyphs[gid].Components()) > 0 {
			compGid = glyph.ID(gid)
			break
		}
	}
	if compGid == 0 {
		t.Fatal("no composite glyph in test font")
	}
	simpleGid := outlines.Glyphs[compGid].Components()[0]

	// glyph 1 is a composite whose components all point to glyph 2
	remap := make(map[glyph.ID]glyph.ID)
	for _, c := range outlines.Glyphs[compGid].Components() {
		remap[c] = 2
	}
	o := &glyf.Outlines{
		Tables: outlines.Tables,
		Maxp:   outlines.Maxp,
	}
	o.Glyphs = append(o.Glyphs,
		outlines.Glyphs[0],
		outlines.Glyphs[compGid].FixComponents(remap),
		outlines.Glyphs[simpleGid])
	o.Widths = append(o.Widths,
		outlines.Widths[0],
		outlines.Widths[compGid],
		outlines.Widths[simpleGid])

	// both the composite and its component are kept directly
	newGid, o2 := subsetGlyf(o, []glyph.ID{0, 1, 2})

	if len(o2.Glyphs) != 3 {
		t.Errorf("subset has %d glyphs, want 3", len(o2.Glyphs))
	}
	if len(newGid) != 3 {
		t.Errorf("got %d glyph IDs, want 3", len(newGid))
	}
	for _, c := range o2.Glyphs[newGid[1]].Components() {
		if c != newGid[2] {
			t.Errorf("component points to %d, want %d", c, newGid[2])
		}
	}
}

// TestSubsetCFFCID checks that CID-keyed fonts keep their ROS and
// that the glyph-to-CID mapping follows the renumbering.
func TestSubsetCFFCID(t *testing.T) {
	o := &cff.Outlines{
		ROS: &cid.SystemInfo{
			Registry: "Adobe",
			Ordering: "Identity",
		},
	}
	o.Glyphs = append(o.Glyphs, nil, nil, nil, nil)
	o.Private = append(o.Private, nil)
	o.FDSelect = func(glyph.ID) int { return 0 }
	o.GIDToCID = append(o.GIDToCID, 0, 5, 6, 7)

	newGid, o2 := subsetCFF(o, []glyph.ID{0, 2})

	if len(o2.Glyphs) != 2 {
		t.Errorf("subset has %d glyphs, want 2", len(o2.Glyphs))
	}
	if o2.ROS != o.ROS {
		t.Error("ROS lost")
	}
	want := []cid.CID{0, 6}
	if d := cmp.Diff(want, o2.GIDToCID); d != "" {
		t.Error(d)
	}
	if got := o2.FDSelect(newGid[2]); got != 0 {
		t.Errorf("FDSelect is %d, want 0", got)
	}
}

func TestIncludeExclude(t *testing.T) {
	font := makefont.TrueType()
	_, err := Font(font, &Options{
		Include: charset.New('A'),
		Exclude: charset.New('B'),
	})
	if err != ErrIncludeExclude {
		t.Errorf("got %v, want ErrIncludeExclude", err)
	}
}

func TestLayoutDropped(t *testing.T) {
	font := makefont.TrueType()

	sub, err := Font(font, &Options{Include: charset.New('f', 'i')})
	if err != nil {
		t.Fatal(err)
	}
	if sub.Gsub != nil || sub.Gpos != nil || sub.Gdef != nil {
		t.Error("layout tables not dropped")
	}

	sub, err = Font(font, &Options{Include: charset.New('f', 'i'), KeepLayout: true})
	if err != nil {
		t.Fatal(err)
	}
	if font.Gsub != nil && sub.Gsub == nil {
		t.Error("KeepLayout dropped GSUB")
	}
}
