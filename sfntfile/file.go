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

// Package sfntfile reads and writes sfnt font files at the level of raw
// tables.  Tables which are not modified survive a read/write round
// trip byte for byte, which matters when patching fonts inside a
// TrueType collection where table sharing must be preserved.
package sfntfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"sort"
)

// Scaler types used in the file header.
const (
	ScalerTrueType uint32 = 0x00010000
	ScalerCFF      uint32 = 0x4F54544F // "OTTO"
	ScalerApple    uint32 = 0x74727565 // "true"

	ttcTag uint32 = 0x74746366 // "ttcf"
)

// ErrCollection is returned by Decode when the data holds a TrueType
// collection instead of a single font.
var ErrCollection = errors.New("sfntfile: file is a TrueType collection")

var errMalformed = errors.New("sfntfile: malformed font file")

// A Table is one sfnt table together with its tag.
type Table struct {
	Tag  string
	Data []byte
}

// A Font is the list of tables of a single sfnt font.
type Font struct {
	ScalerType uint32
	Tables     []Table
}

// Decode parses a single sfnt font.
func Decode(data []byte) (*Font, error) {
	if len(data) < 12 {
		return nil, errMalformed
	}
	if binary.BigEndian.Uint32(data) == ttcTag {
		return nil, ErrCollection
	}
	return decodeAt(data, 0)
}

// decodeAt parses the font whose offset table starts at offset.
// Table offsets are relative to the start of data, as in the file
// format.  The returned tables alias data.
func decodeAt(data []byte, offset uint32) (*Font, error) {
	if uint64(offset)+12 > uint64(len(data)) {
		return nil, errMalformed
	}
	scalerType := binary.BigEndian.Uint32(data[offset:])
	switch scalerType {
	case ScalerTrueType, ScalerCFF, ScalerApple:
		// pass
	default:
		return nil, fmt.Errorf("sfntfile: unknown scaler type 0x%08X", scalerType)
	}
	numTables := int(binary.BigEndian.Uint16(data[offset+4:]))
	if uint64(offset)+12+16*uint64(numTables) > uint64(len(data)) {
		return nil, errMalformed
	}

	font := &Font{
		ScalerType: scalerType,
		Tables:     make([]Table, numTables),
	}
	for i := 0; i < numTables; i++ {
		rec := data[offset+12+16*uint32(i):]
		tag := string(rec[:4])
		tableOffset := binary.BigEndian.Uint32(rec[8:])
		tableLength := binary.BigEndian.Uint32(rec[12:])
		if uint64(tableOffset)+uint64(tableLength) > uint64(len(data)) {
			return nil, errMalformed
		}
		font.Tables[i] = Table{
			Tag:  tag,
			Data: data[tableOffset : tableOffset+tableLength : tableOffset+tableLength],
		}
	}
	return font, nil
}

// Read reads a single sfnt font from r.
func Read(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// ReadFile reads a single sfnt font from the named file.
func ReadFile(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Get returns the data of the table with the given tag,
// or nil if the font has no such table.
func (f *Font) Get(tag string) []byte {
	for _, t := range f.Tables {
		if t.Tag == tag {
			return t.Data
		}
	}
	return nil
}

// Has reports whether the font contains a table with the given tag.
func (f *Font) Has(tag string) bool {
	return f.Get(tag) != nil
}

// Set replaces the data of the table with the given tag, adding the
// table if it is not yet present.
func (f *Font) Set(tag string, data []byte) {
	for i, t := range f.Tables {
		if t.Tag == tag {
			f.Tables[i].Data = data
			return
		}
	}
	f.Tables = append(f.Tables, Table{Tag: tag, Data: data})
}

// Drop removes the table with the given tag, if present.
// It reports whether the table was present.
func (f *Font) Drop(tag string) bool {
	for i, t := range f.Tables {
		if t.Tag == tag {
			f.Tables = append(f.Tables[:i], f.Tables[i+1:]...)
			return true
		}
	}
	return false
}

// Tags returns the table tags of the font, sorted alphabetically.
func (f *Font) Tags() []string {
	tags := make([]string, len(f.Tables))
	for i, t := range f.Tables {
		tags[i] = t.Tag
	}
	sort.Strings(tags)
	return tags
}

// Encode converts the font into file format.  Table checksums are
// recomputed, and the checksum adjustment in the "head" table is
// updated.
func (f *Font) Encode() []byte {
	tables := make(map[string][]byte, len(f.Tables))
	for _, t := range f.Tables {
		tables[t.Tag] = t.Data
	}
	numTables := len(tables)

	tableNames := make([]string, 0, numTables)
	for name := range tables {
		tableNames = append(tableNames, name)
	}

	// sort the table names in the recommended order
	sort.Slice(tableNames, func(i, j int) bool {
		iPrio := ttTableOrder[tableNames[i]]
		jPrio := ttTableOrder[tableNames[j]]
		if iPrio != jPrio {
			return iPrio > jPrio
		}
		return tableNames[i] < tableNames[j]
	})

	// patching the checksum must not modify the caller's head table
	if headData, ok := tables["head"]; ok && len(headData) >= 12 {
		tables["head"] = bytes.Clone(headData)
		binary.BigEndian.PutUint32(tables["head"][8:12], 0)
	}

	entrySelector := bits.Len(uint(numTables)) - 1
	var buf []byte
	buf = append16(buf, uint16(f.ScalerType>>16), uint16(f.ScalerType))
	buf = append16(buf,
		uint16(numTables),
		uint16(1<<(entrySelector+4)),
		uint16(entrySelector),
		uint16(16*(numTables-1<<entrySelector)))

	type record struct {
		tag      string
		checksum uint32
		offset   uint32
		length   uint32
	}
	var totalSum uint32
	offset := uint32(12 + 16*numTables)
	records := make([]record, numTables)
	for i, name := range tableNames {
		body := tables[name]
		records[i] = record{
			tag:      name,
			checksum: Checksum(body),
			offset:   offset,
			length:   uint32(len(body)),
		}
		totalSum += records[i].checksum
		offset += 4 * ((records[i].length + 3) / 4)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].tag < records[j].tag
	})
	for _, rec := range records {
		buf = append(buf, rec.tag...)
		buf = append32(buf, rec.checksum, rec.offset, rec.length)
	}
	totalSum += Checksum(buf)

	if headData, ok := tables["head"]; ok && len(headData) >= 12 {
		binary.BigEndian.PutUint32(headData[8:12], 0xB1B0AFBA-totalSum)
	}

	for _, name := range tableNames {
		buf = append(buf, tables[name]...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	return buf
}

// Write writes the font to w in file format.
func (f *Font) Write(w io.Writer) (int64, error) {
	n, err := w.Write(f.Encode())
	return int64(n), err
}

// WriteFile writes the font to the named file.
func (f *Font) WriteFile(fname string) error {
	return os.WriteFile(fname, f.Encode(), 0o644)
}

// Checksum computes the sfnt table checksum of the given data.
// The data is conceptually zero-padded to a multiple of four bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var tail [4]byte
		copy(tail[:], data)
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}

func append16(buf []byte, xx ...uint16) []byte {
	for _, x := range xx {
		buf = append(buf, byte(x>>8), byte(x))
	}
	return buf
}

func append32(buf []byte, xx ...uint32) []byte {
	for _, x := range xx {
		buf = append(buf, byte(x>>24), byte(x>>16), byte(x>>8), byte(x))
	}
	return buf
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/recom#optimized-table-ordering
var ttTableOrder = map[string]int{
	"head": 95,
	"hhea": 90,
	"maxp": 85,
	"OS/2": 80,
	"hmtx": 75,
	"LTSH": 70,
	"VDMX": 65,
	"hdmx": 60,
	"cmap": 55,
	"fpgm": 50,
	"prep": 45,
	"cvt ": 40,
	"loca": 35,
	"glyf": 30,
	"kern": 25,
	"name": 20,
	"post": 15,
	"gasp": 10,
	"DSIG": 5,
}
