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

// Package report turns glyph comparison data into a browsable HTML
// page.  The page shows one comparison image per glyph pair and can
// filter and sort the pairs by similarity.
package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/fonttools/glyphimage"
	"seehuhn.de/go/fonttools/paths"
)

//go:embed glyph_image_compare.js glyph_image_compare.css
var assets embed.FS

//go:embed template.html
var pageSource string

var pageTemplate = template.Must(template.New("report").Parse(pageSource))

// fontRow is one font line in the header table of the report.
type fontRow struct {
	Class      string
	File       string
	Version    string
	Upem       int
	Ascent     int
	Descent    int
	Glyphs     int
	Codepoints int
}

type pageData struct {
	Title        string
	Name         string
	Fonts        []fontRow
	HeaderHeight int
	ImageDir     string
	ImageData    template.JS
	CpData       template.JS
}

// commonDir returns the longest common directory prefix of the two
// paths, including the trailing separator.
func commonDir(a, b string) string {
	idx := 0
	limit := min(len(a), len(b))
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			break
		}
		if os.IsPathSeparator(a[i]) {
			idx = i + 1
		}
	}
	return a[:idx]
}

func makeFontRow(class string, fd *glyphimage.FontData, prefixLen int) fontRow {
	version := strings.TrimPrefix(fd.Version, "Version ")
	return fontRow{
		Class:      class,
		File:       fd.File[prefixLen:],
		Version:    version,
		Upem:       fd.Upem,
		Ascent:     fd.Ascent,
		Descent:    fd.Descent,
		Glyphs:     fd.NumGlyphs,
		Codepoints: fd.Codepoints,
	}
}

// imageData builds the JSON pair records embedded in the page.  Each
// record holds the image file name, the similarity, and index,
// advance, codepoint and name for the base and target glyphs.
func imageData(d *glyphimage.CompareData) (template.JS, template.JS, error) {
	cpNames := make(map[rune]string)
	addCp := func(r rune) {
		if r < 0 {
			return
		}
		if _, ok := cpNames[r]; ok {
			return
		}
		name := runenames.Name(r)
		if name == "" {
			name = fmt.Sprintf("u%04X", r)
		}
		cpNames[r] = name
	}

	noData := glyphimage.GlyphData{Rune: -1}
	records := make([]string, len(d.Pairs))
	for i, p := range d.Pairs {
		bd := noData
		if p.Base >= 0 && p.Base < len(d.BaseGlyphs) {
			bd = d.BaseGlyphs[p.Base]
			addCp(bd.Rune)
		}
		td := noData
		if p.Target >= 0 && p.Target < len(d.TargetGlyphs) {
			td = d.TargetGlyphs[p.Target]
			addCp(td.Rune)
		}
		record, err := json.Marshal([]interface{}{
			p.Name + ".png", p.Similarity,
			p.Base, bd.Advance, bd.Rune, bd.Name,
			p.Target, td.Advance, td.Rune, td.Name,
		})
		if err != nil {
			return "", "", err
		}
		records[i] = string(record)
	}

	names := make(map[string]string, len(cpNames))
	for r, name := range cpNames {
		names[fmt.Sprintf("%d", r)] = name
	}
	cpJSON, err := json.Marshal(names)
	if err != nil {
		return "", "", err
	}

	imageJSON := "[" + strings.Join(records, ",\n      ") + "]"
	return template.JS(imageJSON), template.JS(cpJSON), nil
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if err2 := out.Close(); err == nil {
		err = err2
	}
	return err
}

// Generate writes the HTML report to outputPath.  The comparison
// images are copied from inputDir into a directory named after the
// page, next to the page, and the supporting script and style files
// are written as siblings, so that several reports can share one
// output directory.  If d is nil, the comparison data is read from
// inputDir.
func Generate(title, inputDir, outputPath string, d *glyphimage.CompareData) error {
	if d == nil {
		var err error
		d, err = glyphimage.ReadCompareDataFile(
			filepath.Join(inputDir, glyphimage.CompareDataName))
		if err != nil {
			return err
		}
	}

	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	root := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	imageDir := strings.TrimSuffix(base, filepath.Ext(base))

	if err := paths.EnsureDir(root, false); err != nil {
		return err
	}
	for _, name := range []string{"glyph_image_compare.js", "glyph_image_compare.css"} {
		data, err := assets.ReadFile(name)
		if err != nil {
			return err
		}
		err = os.WriteFile(filepath.Join(root, name), data, 0o644)
		if err != nil {
			return err
		}
	}

	fullImageDir := filepath.Join(root, imageDir)
	if err := paths.EnsureDir(fullImageDir, true); err != nil {
		return err
	}
	for _, p := range d.Pairs {
		name := p.Name + ".png"
		err := copyFile(filepath.Join(fullImageDir, name), filepath.Join(inputDir, name))
		if err != nil {
			return err
		}
	}

	name := d.BaseFont.Name
	if d.TargetFont.Name != name {
		name += " / " + d.TargetFont.Name
	}

	prefixLen := len(commonDir(d.BaseFont.File, d.TargetFont.File))
	imageJSON, cpJSON, err := imageData(d)
	if err != nil {
		return err
	}

	page := &pageData{
		Title: title,
		Name:  name,
		Fonts: []fontRow{
			makeFontRow("b", &d.BaseFont, prefixLen),
			makeFontRow("t", &d.TargetFont, prefixLen),
		},
		HeaderHeight: max(250, d.MaxFrame.H+20),
		ImageDir:     imageDir,
		ImageData:    imageJSON,
		CpData:       cpJSON,
	}

	fd, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	err = pageTemplate.Execute(fd, page)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}
