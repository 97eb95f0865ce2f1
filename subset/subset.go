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

// Package subset reduces fonts to a chosen set of characters.
package subset

import (
	"errors"
	"sort"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fonttools/charset"
	"seehuhn.de/go/fonttools/fontdata"
)

// Options selects the characters to keep.
type Options struct {
	// Include, if non-nil, lists the characters to keep.
	Include charset.Set

	// Exclude, if non-nil, lists the characters to remove.
	// Include and Exclude cannot both be set.
	Exclude charset.Set

	// KeepLayout keeps the GSUB, GPOS and GDEF tables.  By default
	// they are dropped, since their glyph IDs would be stale.
	KeepLayout bool
}

// ErrIncludeExclude is returned when both an include and an exclude
// set are given.
var ErrIncludeExclude = errors.New("subset: include and exclude are mutually exclusive")

// Font returns a new font containing ".notdef" and the glyphs for the
// selected characters.  Without include and exclude sets, the glyphs
// which are unreachable from the cmap are pruned.  Composite glyphs
// keep their components.
func Font(font *sfnt.Font, opt *Options) (*sfnt.Font, error) {
	if opt == nil {
		opt = &Options{}
	}
	if opt.Include != nil && opt.Exclude != nil {
		return nil, ErrIncludeExclude
	}

	entries, err := fontdata.CMapEntries(font)
	if err != nil {
		return nil, err
	}
	for r := range entries {
		if opt.Include != nil && !opt.Include.Contains(r) {
			delete(entries, r)
		} else if opt.Exclude != nil && opt.Exclude.Contains(r) {
			delete(entries, r)
		}
	}
	if len(entries) == 0 {
		return nil, errors.New("subset: no characters left")
	}

	// glyphs to keep, .notdef first, then by original glyph ID
	gidSeen := map[glyph.ID]bool{0: true}
	keep := []glyph.ID{0}
	for _, gid := range entries {
		if !gidSeen[gid] {
			gidSeen[gid] = true
			keep = append(keep, gid)
		}
	}
	sort.Slice(keep[1:], func(i, j int) bool { return keep[i+1] < keep[j+1] })

	res := font.Clone()
	var newGid map[glyph.ID]glyph.ID
	switch outlines := font.Outlines.(type) {
	case *glyf.Outlines:
		newGid, res.Outlines = subsetGlyf(outlines, keep)
	case *cff.Outlines:
		newGid, res.Outlines = subsetCFF(outlines, keep)
	default:
		return nil, errors.New("subset: unsupported outline format")
	}

	if !opt.KeepLayout {
		res.Gdef = nil
		res.Gsub = nil
		res.Gpos = nil
	}

	newEntries := make(map[rune]glyph.ID, len(entries))
	for r, gid := range entries {
		newEntries[r] = newGid[gid]
	}
	err = fontdata.SetCMap(res, newEntries)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// subsetGlyf copies the kept glyphs, pulling in the components of
// composite glyphs and renumbering all references.
func subsetGlyf(outlines *glyf.Outlines, keep []glyph.ID) (map[glyph.ID]glyph.ID, *glyf.Outlines) {
	newGid := make(map[glyph.ID]glyph.ID)
	todo := make(map[glyph.ID]bool)
	nextGid := glyph.ID(0)
	for _, gid := range keep {
		newGid[gid] = nextGid
		nextGid++

		for _, gid2 := range outlines.Glyphs[gid].Components() {
			if _, ok := newGid[gid2]; !ok {
				todo[gid2] = true
			}
		}
	}
	for len(todo) > 0 {
		gid := pop(todo)
		// Components queued before the first loop reached them may
		// have been numbered by now.
		if _, ok := newGid[gid]; ok {
			continue
		}
		keep = append(keep, gid)
		newGid[gid] = nextGid
		nextGid++

		for _, gid2 := range outlines.Glyphs[gid].Components() {
			if _, ok := newGid[gid2]; !ok {
				todo[gid2] = true
			}
		}
	}

	o2 := &glyf.Outlines{
		Tables: outlines.Tables,
		Maxp:   outlines.Maxp,
	}
	for _, gid := range keep {
		o2.Glyphs = append(o2.Glyphs, outlines.Glyphs[gid].FixComponents(newGid))
		o2.Widths = append(o2.Widths, outlines.Widths[gid])
		if outlines.Names != nil {
			o2.Names = append(o2.Names, outlines.Names[gid])
		}
	}
	return newGid, o2
}

// subsetCFF copies the kept glyphs together with the private
// dictionaries they use.  CID-keyed fonts keep their ROS.
func subsetCFF(outlines *cff.Outlines, keep []glyph.ID) (map[glyph.ID]glyph.ID, *cff.Outlines) {
	newGid := make(map[glyph.ID]glyph.ID)
	o2 := &cff.Outlines{}
	pIdxMap := make(map[int]int)
	fdSel := make(map[glyph.ID]int)
	for newIdx, gid := range keep {
		newGid[gid] = glyph.ID(newIdx)
		o2.Glyphs = append(o2.Glyphs, outlines.Glyphs[gid])
		oldPIdx := outlines.FDSelect(gid)
		if _, ok := pIdxMap[oldPIdx]; !ok {
			pIdxMap[oldPIdx] = len(o2.Private)
			o2.Private = append(o2.Private, outlines.Private[oldPIdx])
		}
		fdSel[glyph.ID(newIdx)] = pIdxMap[oldPIdx]
	}
	o2.FDSelect = func(gid glyph.ID) int { return fdSel[gid] }

	if outlines.ROS != nil {
		o2.ROS = outlines.ROS
		o2.GIDToCID = make([]cid.CID, len(keep))
		for newIdx, gid := range keep {
			if int(gid) < len(outlines.GIDToCID) {
				o2.GIDToCID[newIdx] = outlines.GIDToCID[gid]
			}
		}
	} else if outlines.Encoding != nil {
		enc := make([]glyph.ID, len(outlines.Encoding))
		for code, gid := range outlines.Encoding {
			if gid2, ok := newGid[gid]; ok && gid != 0 {
				enc[code] = gid2
			}
		}
		o2.Encoding = enc
	}

	return newGid, o2
}

func pop(todo map[glyph.ID]bool) glyph.ID {
	for key := range todo {
		delete(todo, key)
		return key
	}
	panic("empty map")
}
