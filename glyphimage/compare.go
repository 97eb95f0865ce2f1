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
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"

	"seehuhn.de/go/fonttools/fontdata"
	"seehuhn.de/go/fonttools/paths"
)

// metricsGray is the coverage value used for the ascent, descent and
// advance lines in decorated comparison images.
const metricsGray = 0x80

// CompareImage renders the two glyphs into frame, aligned at their
// origins, and returns an image together with a similarity value in
// percent.  Either glyph may be nil.
//
// The red channel of the image is the inverted coverage of the base
// glyph and the green channel the inverted coverage of the target
// glyph, so pixels where the two glyphs agree come out gray and
// differences are tinted.  With decorate set, gray lines show the
// ascent, descent and advance.
//
// The similarity is 100 if no pixels are set in either glyph;
// otherwise it is the ratio of the summed minimum to the summed
// maximum of corresponding pixel values.
func CompareImage(base, target *Image, frame Frame, decorate bool) (*image.RGBA, int) {
	if frame.IsEmpty() {
		return nil, 0
	}

	var gray byte
	if decorate {
		gray = metricsGray
	}
	render := func(im *Image) []byte {
		if im == nil {
			return make([]byte, frame.W*frame.H)
		}
		return im.Render(frame, gray)
	}
	redData := render(base)
	greenData := render(target)

	matched := 0
	marked := 0
	img := image.NewRGBA(image.Rect(0, 0, frame.W, frame.H))
	for i := range redData {
		rd := redData[i]
		gn := greenData[i]
		if rd != 0 || gn != 0 {
			marked += int(max(rd, gn))
			matched += int(min(rd, gn))
		}
		red := 255 - rd
		green := 255 - gn
		img.Pix[4*i] = red
		img.Pix[4*i+1] = green
		img.Pix[4*i+2] = min(red, green)
		img.Pix[4*i+3] = 255
	}

	similarity := 100
	if marked != 0 {
		similarity = matched * 100 / marked
	}
	return img, similarity
}

// A namedPair is one comparison image to generate.
type namedPair struct {
	name   string
	base   int
	target int
}

// selectNamedPairs generates a file name for each codepoint and
// primary pair.  Pairs matched by codepoint use the "uniXXXX" or
// "uXXXXX" name of the character, the rest are named from the glyph
// indices.
func selectNamedPairs(info *PairInfo) []namedPair {
	var named []namedPair
	for _, p := range info.CodePairs {
		prefix := "uni"
		if p.Rune >= 0x10000 {
			prefix = "u"
		}
		name := fmt.Sprintf("%s%04X", prefix, p.Rune)
		named = append(named, namedPair{name, p.Base, p.Target})
	}
	for _, p := range info.Pairs {
		var name string
		switch {
		case p.Base == p.Target:
			name = fmt.Sprintf("g_%05d", p.Base)
		case p.Target == -1:
			name = fmt.Sprintf("g_b%05d", p.Base)
		case p.Base == -1:
			name = fmt.Sprintf("g_t%05d", p.Target)
		default:
			name = fmt.Sprintf("g_b%05d_t%05d", p.Base, p.Target)
		}
		named = append(named, namedPair{name, p.Base, p.Target})
	}
	return named
}

func writePNG(fname string, img image.Image) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(fd, img)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}

// fontInfo builds the per-font comparison data from the font file
// named in the collection header.
func fontInfo(c *Collection) (FontData, []GlyphData, error) {
	font, err := sfnt.ReadFile(c.Header.File)
	if err != nil {
		return FontData{}, nil, err
	}
	entries, err := fontdata.CMapEntries(font)
	if err != nil {
		return FontData{}, nil, fmt.Errorf("%s: %w", c.Header.File, err)
	}

	fd := FontData{
		FileHeader: *c.Header,
		Codepoints: len(entries),
		Version:    fontdata.Version(font),
	}

	// When several characters map to the same glyph, report the
	// largest one.
	glyphRune := make(map[int]rune)
	for r, gid := range entries {
		if prev, ok := glyphRune[int(gid)]; !ok || r > prev {
			glyphRune[int(gid)] = r
		}
	}
	var names []string
	if outlines, ok := font.Outlines.(*glyf.Outlines); ok {
		names = outlines.Names
	}

	gdata := make([]GlyphData, font.NumGlyphs())
	for i := range gdata {
		r, ok := glyphRune[i]
		if !ok {
			r = -1
		}
		var name string
		if i > 0 && r < 0 && i < len(names) {
			name = names[i]
			if name == fmt.Sprintf("glyph%05d", i) {
				name = ""
			}
		}
		var adv int
		if im := c.Images[i]; im != nil {
			adv = im.Adv.Int
		}
		gdata[i] = GlyphData{Advance: adv, Rune: r, Name: name}
	}
	return fd, gdata, nil
}

// CompareCollections compares two glyph image collections, writing
// one PNG image per glyph pair to outDir.  Any previous contents of
// outDir are removed.  If info is nil, the glyphs are paired with
// [CollectionPairs].  The two collections must come from fonts with
// the same name, rendered at the same size.
func CompareCollections(base, target *Collection, info *PairInfo, outDir string) (*CompareData, error) {
	if base.Header.Name != target.Header.Name {
		return nil, fmt.Errorf("glyphimage: font name %q does not match %q",
			base.Header.Name, target.Header.Name)
	}
	if base.Header.Size != target.Header.Size {
		return nil, fmt.Errorf("glyphimage: image size %d does not match %d",
			base.Header.Size, target.Header.Size)
	}

	if info == nil {
		var err error
		info, err = CollectionPairs(base, target)
		if err != nil {
			return nil, err
		}
	}
	named := selectNamedPairs(info)

	maxFrame := UnionFrames([]Frame{
		base.CommonFrame(true),
		target.CommonFrame(true),
	})
	// Only the height of the common frame is used, so that all
	// images share the ascent/descent band but not the width.
	tallFrame := Frame{L: 0, T: maxFrame.T, W: 0, H: maxFrame.H}

	if err := paths.EnsureDir(outDir, true); err != nil {
		return nil, err
	}

	similarities := make([]int, len(named))
	for i, p := range named {
		bg := base.Images[p.base]
		tg := target.Images[p.target]
		frame, err := ComputeFrame(bg, tg, true, 0)
		if err != nil {
			return nil, fmt.Errorf("pair %s: %w", p.name, err)
		}
		frame = UnionFrames([]Frame{frame, tallFrame}).Pad(comparePad)
		img, similarity := CompareImage(bg, tg, frame, true)
		if img == nil {
			continue
		}
		fname := filepath.Join(outDir, p.name+".png")
		if err := writePNG(fname, img); err != nil {
			return nil, err
		}
		similarities[i] = similarity
	}

	baseFData, baseGData, err := fontInfo(base)
	if err != nil {
		return nil, err
	}
	targetFData, targetGData, err := fontInfo(target)
	if err != nil {
		return nil, err
	}

	pairs := make([]PairData, len(named))
	for i, p := range named {
		pairs[i] = PairData{
			Name:       p.name,
			Base:       p.base,
			Target:     p.target,
			Similarity: similarities[i],
		}
	}

	return &CompareData{
		BaseFont:     baseFData,
		TargetFont:   targetFData,
		BaseGlyphs:   baseGData,
		TargetGlyphs: targetGData,
		MaxFrame:     maxFrame.Pad(comparePad),
		Pairs:        pairs,
	}, nil
}

// comparePad is the padding around comparison images.
const comparePad = 5

// CompareFiles reads the two glyph image files and compares them,
// writing the comparison images to outDir.
func CompareFiles(baseFile, targetFile, outDir string) (*CompareData, error) {
	base, err := ReadCollectionFile(baseFile)
	if err != nil {
		return nil, err
	}
	target, err := ReadCollectionFile(targetFile)
	if err != nil {
		return nil, err
	}
	return CompareCollections(base, target, nil, outDir)
}
