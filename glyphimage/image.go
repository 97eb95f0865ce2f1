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

// Package glyphimage works with per-glyph bitmap renderings of a font.
//
// A glyph image file holds one grayscale bitmap per glyph, together
// with the font metrics needed to place the bitmaps on a common
// baseline.  The package can pair the glyphs of two versions of a
// font and render side-by-side comparison images which highlight
// differences in red and green.
package glyphimage

import (
	"errors"
	"fmt"
)

// A Frame is the bounding box of a glyph bitmap.  L and T give the
// position of the top-left corner relative to the glyph origin, with
// y growing downwards.
type Frame struct {
	L, T, W, H int
}

// IsEmpty reports whether the frame encloses no pixels.
func (fr Frame) IsEmpty() bool {
	return fr.W <= 0 || fr.H <= 0
}

// Contains reports whether the pixel at x, y lies inside the frame.
func (fr Frame) Contains(x, y int) bool {
	return fr.L <= x && x < fr.L+fr.W && fr.T <= y && y < fr.T+fr.H
}

// Pad grows the frame by pad pixels on every side.
func (fr Frame) Pad(pad int) Frame {
	return Frame{fr.L - pad, fr.T - pad, fr.W + 2*pad, fr.H + 2*pad}
}

// UnionFrames returns the smallest frame enclosing all the given
// frames.  The zero Frame is returned when the slice is empty.
func UnionFrames(frames []Frame) Frame {
	if len(frames) == 0 {
		return Frame{}
	}
	fr := frames[0]
	l, t := fr.L, fr.T
	r, b := fr.L+fr.W, fr.T+fr.H
	for _, fr := range frames[1:] {
		l = min(l, fr.L)
		t = min(t, fr.T)
		r = max(r, fr.L+fr.W)
		b = max(b, fr.T+fr.H)
	}
	return Frame{l, t, r - l, b - t}
}

// An Advance is a glyph advance width in pixels, split into an
// integer part and a fractional part in 1/64 pixel units.
type Advance struct {
	Int  int
	Frac int
}

// A FileHeader describes the font a glyph image file was rendered
// from.  Ascent and Descent are in font units, Size is the pixels
// per em the glyphs were rendered at.
type FileHeader struct {
	File       string
	Name       string
	Upem       int
	Ascent     int
	Descent    int
	Size       int
	FontGlyphs int
	NumGlyphs  int
}

// An Image is the grayscale bitmap of a single glyph.  Data holds
// Frame.W * Frame.H coverage values in row-major order.
type Image struct {
	Header *FileHeader
	Index  int
	Adv    Advance
	Frame  Frame
	Data   []byte
}

// At returns the coverage value at x, y, or def if the position lies
// outside the image frame.
func (im *Image) At(x, y int, def byte) byte {
	fr := im.Frame
	if !fr.Contains(x, y) {
		return def
	}
	return im.Data[(y-fr.T)*fr.W+x-fr.L]
}

// ceilDiv returns the smallest integer not less than a/b, for b > 0.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

// MetricsFrame returns the frame spanned by the ascent, descent and
// advance of the glyph, scaled to the rendering size.
func (im *Image) MetricsFrame() Frame {
	h := im.Header
	ascent := ceilDiv(h.Ascent*h.Size, h.Upem)
	descent := ceilDiv(h.Descent*h.Size, h.Upem)
	advance := im.Adv.Int + ceilDiv(im.Adv.Frac, 64)
	return Frame{0, -ascent, advance, ascent + descent}
}

// Render copies the image into a bitmap covering dst, aligning the
// two frames at the glyph origin.  If decorate is nonzero, lines
// showing the ascent, descent and advance are drawn with the given
// coverage value.  Glyphs with zero advance get a short baseline tick
// instead of the advance line.
func (im *Image) Render(dst Frame, decorate byte) []byte {
	src := im.Frame
	data := make([]byte, dst.W*dst.H)

	l := max(src.L, dst.L)
	t := max(src.T, dst.T)
	r := min(src.L+src.W, dst.L+dst.W)
	b := min(src.T+src.H, dst.T+dst.H)
	if r > l {
		for y := t; y < b; y++ {
			srcIdx := (y-src.T)*src.W + l - src.L
			dstIdx := (y-dst.T)*dst.W + l - dst.L
			copy(data[dstIdx:dstIdx+r-l], im.Data[srcIdx:])
		}
	}

	if decorate > 0 && len(data) > 0 {
		set := func(x, y int) {
			if dst.Contains(x, y) {
				idx := (y-dst.T)*dst.W + x - dst.L
				data[idx] = max(data[idx], decorate)
			}
		}

		mf := im.MetricsFrame()
		ascT := max(mf.T, dst.T)
		dscB := min(mf.T+mf.H, dst.T+dst.H)
		for y := ascT; y < dscB; y++ {
			set(0, y)
		}

		advR := min(mf.L+mf.W, dst.L+dst.W)
		if advR != 0 {
			for x := 0; x < advR; x++ {
				set(x, 0)
			}
		} else {
			// mark the baseline for zero advance glyphs
			advL := max(-3, dst.L)
			for x := advL; x < 4; x++ {
				set(x, 0)
			}
		}
	}

	return data
}

// A Collection holds all glyph images read from one file, keyed by
// glyph index.
type Collection struct {
	Header *FileHeader
	Images map[int]*Image
}

// MaxIndex returns the largest glyph index in the collection, or -1
// if the collection is empty.
func (c *Collection) MaxIndex() int {
	res := -1
	for idx := range c.Images {
		res = max(res, idx)
	}
	return res
}

// CommonFrame returns the union of all image frames in the
// collection.  With includeMetrics set, the metrics frames are
// included as well, so that the result also spans the ascent,
// descent and advances.
func (c *Collection) CommonFrame(includeMetrics bool) Frame {
	frames := make([]Frame, 0, 2*len(c.Images))
	for _, im := range c.Images {
		frames = append(frames, im.Frame)
		if includeMetrics {
			frames = append(frames, im.MetricsFrame())
		}
	}
	return UnionFrames(frames)
}

// ComputeFrame returns the union of the frames of the two images,
// either of which may be nil, padded by pad pixels on every side.
// With includeMetrics set the metrics frames are included, and for a
// single image the metrics frame replaces the bitmap frame.
func ComputeFrame(a, b *Image, includeMetrics bool, pad int) (Frame, error) {
	if a == nil || b == nil {
		im := a
		if im == nil {
			im = b
		}
		if im == nil {
			return Frame{}, errors.New("glyphimage: no images given")
		}
		fr := im.Frame
		if includeMetrics {
			fr = im.MetricsFrame()
		}
		return fr.Pad(pad), nil
	}

	frames := []Frame{a.Frame, b.Frame}
	if includeMetrics {
		frames = append(frames, a.MetricsFrame(), b.MetricsFrame())
	}
	return UnionFrames(frames).Pad(pad), nil
}

func (im *Image) String() string {
	return fmt.Sprintf("index: %3d, adv: %3d+%3d, ltwh: %3d %3d %3d %3d",
		im.Index, im.Adv.Int, im.Adv.Frac,
		im.Frame.L, im.Frame.T, im.Frame.W, im.Frame.H)
}
