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
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strings"
)

// TrueType collection header versions.
const (
	TTCVersion1 uint32 = 0x00010000
	TTCVersion2 uint32 = 0x00020000
)

// A Collection is a TrueType collection.  Member fonts can share
// tables; shared tables are represented by the same Table value in
// all members, and are stored only once when the collection is
// written.
type Collection struct {
	Version uint32
	Fonts   []*Font
}

// DecodeCollection parses a TrueType collection.  A plain font file is
// treated as a collection with a single member.
func DecodeCollection(data []byte) (*Collection, error) {
	if len(data) >= 12 && binary.BigEndian.Uint32(data) != ttcTag {
		font, err := Decode(data)
		if err != nil {
			return nil, err
		}
		return &Collection{Version: TTCVersion1, Fonts: []*Font{font}}, nil
	}

	if len(data) < 12 {
		return nil, errMalformed
	}
	version := binary.BigEndian.Uint32(data[4:])
	if version != TTCVersion1 && version != TTCVersion2 {
		return nil, fmt.Errorf("sfntfile: unknown TTC version 0x%08X", version)
	}
	numFonts := int(binary.BigEndian.Uint32(data[8:]))
	if uint64(12+4*numFonts) > uint64(len(data)) {
		return nil, errMalformed
	}

	res := &Collection{
		Version: version,
		Fonts:   make([]*Font, numFonts),
	}
	// Tables at the same file offset are shared between members.
	shared := make(map[uint32]*[]byte)
	for i := range res.Fonts {
		offset := binary.BigEndian.Uint32(data[12+4*i:])
		font, err := decodeAt(data, offset)
		if err != nil {
			return nil, err
		}
		for j := range font.Tables {
			rec := data[offset+12+16*uint32(j):]
			tableOffset := binary.BigEndian.Uint32(rec[8:])
			if p, ok := shared[tableOffset]; ok {
				font.Tables[j].Data = *p
			} else {
				shared[tableOffset] = &font.Tables[j].Data
			}
		}
		res.Fonts[i] = font
	}
	return res, nil
}

// ReadCollection reads a TrueType collection from r.
func ReadCollection(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeCollection(data)
}

// ReadCollectionFile reads a TrueType collection from the named file.
func ReadCollectionFile(fname string) (*Collection, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return DecodeCollection(data)
}

// Encode converts the collection into file format.  Tables with
// identical content are stored only once.
func (c *Collection) Encode() []byte {
	headerSize := uint32(12 + 4*len(c.Fonts))
	if c.Version == TTCVersion2 {
		headerSize += 12 // DSIG tag, length, offset (all zero)
	}

	offset := headerSize
	fontOffsets := make([]uint32, len(c.Fonts))
	for i, font := range c.Fonts {
		fontOffsets[i] = offset
		offset += uint32(12 + 16*len(font.Tables))
	}

	// lay out unique table contents after the directories
	tableOffsets := make(map[string]uint32)
	var tableOrder []string
	for _, font := range c.Fonts {
		for _, t := range font.Tables {
			key := string(t.Data)
			if _, ok := tableOffsets[key]; ok {
				continue
			}
			tableOffsets[key] = offset
			tableOrder = append(tableOrder, key)
			offset += 4 * ((uint32(len(t.Data)) + 3) / 4)
		}
	}

	var buf []byte
	buf = append32(buf, ttcTag, c.Version, uint32(len(c.Fonts)))
	buf = append32(buf, fontOffsets...)
	if c.Version == TTCVersion2 {
		buf = append32(buf, 0, 0, 0)
	}
	for _, font := range c.Fonts {
		numTables := len(font.Tables)
		entrySelector := bits.Len(uint(numTables)) - 1
		buf = append16(buf, uint16(font.ScalerType>>16), uint16(font.ScalerType))
		buf = append16(buf,
			uint16(numTables),
			uint16(1<<(entrySelector+4)),
			uint16(entrySelector),
			uint16(16*(numTables-1<<entrySelector)))
		for _, t := range font.Tables {
			buf = append(buf, t.Tag...)
			buf = append32(buf,
				Checksum(t.Data),
				tableOffsets[string(t.Data)],
				uint32(len(t.Data)))
		}
	}
	for _, key := range tableOrder {
		buf = append(buf, key...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	return buf
}

// Write writes the collection to w in file format.
func (c *Collection) Write(w io.Writer) (int64, error) {
	n, err := w.Write(c.Encode())
	return int64(n), err
}

// WriteFile writes the collection to the named file.
func (c *Collection) WriteFile(fname string) error {
	return os.WriteFile(fname, c.Encode(), 0o644)
}

// Names returns the PostScript names of the member fonts.  Members
// without a usable name table get a placeholder name.
func (c *Collection) Names() []string {
	names := make([]string, len(c.Fonts))
	for i, font := range c.Fonts {
		name, ok := PostScriptName(font)
		if !ok {
			if font.ScalerType == ScalerCFF {
				name = "<unknown otf>"
			} else {
				name = "<unknown ttf>"
			}
		}
		names[i] = name
	}
	return names
}

// MemberFileName returns a file name for member i, derived from its
// PostScript name.  Fonts without a style suffix get "-Regular"
// appended, and the extension follows the outline format.
func (c *Collection) MemberFileName(i int) string {
	name, ok := PostScriptName(c.Fonts[i])
	if !ok {
		name = fmt.Sprintf("font%d", i)
	}
	if !strings.Contains(name, "-") {
		name += "-Regular"
	}
	if c.Fonts[i].ScalerType == ScalerCFF {
		return name + ".otf"
	}
	return name + ".ttf"
}

// Dump writes a human-readable description of the collection to w.
// Shared tables are shown as "@font.tag", referring to the first
// member which uses the table.
func (c *Collection) Dump(w io.Writer) error {
	names := c.Names()
	type firstUse struct {
		font int
		tag  string
	}
	seen := make(map[*byte]firstUse)
	for i, font := range c.Fonts {
		_, err := fmt.Fprintf(w, "font %d: %s\n", i, names[i])
		if err != nil {
			return err
		}
		for _, t := range font.Tables {
			var key *byte
			if len(t.Data) > 0 {
				key = &t.Data[0]
			}
			if use, ok := seen[key]; ok && key != nil {
				_, err = fmt.Fprintf(w, "  %s @%d.%s\n", t.Tag, use.font, use.tag)
			} else {
				if key != nil {
					seen[key] = firstUse{i, t.Tag}
				}
				_, err = fmt.Fprintf(w, "  %s %8d\n", t.Tag, len(t.Data))
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
