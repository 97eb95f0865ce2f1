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

// Package charset implements sets of Unicode code points and the
// hexadecimal range notation used to describe them, for example
// "0041-005a 00c0 1f600-1f64f".
package charset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Set is a set of Unicode code points.
type Set map[rune]struct{}

// Range is a contiguous, inclusive range of code points.
type Range struct {
	Lo, Hi rune
}

// New returns a Set containing the given code points.
func New(rr ...rune) Set {
	s := make(Set, len(rr))
	for _, r := range rr {
		s[r] = struct{}{}
	}
	return s
}

// Add inserts r into the set.
func (s Set) Add(r rune) {
	s[r] = struct{}{}
}

// AddRange inserts all code points from lo to hi (inclusive) into the set.
func (s Set) AddRange(lo, hi rune) {
	for r := lo; r <= hi; r++ {
		s[r] = struct{}{}
	}
}

// Contains reports whether r is in the set.
func (s Set) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of code points in the set.
func (s Set) Len() int {
	return len(s)
}

// Runes returns the code points of the set in increasing order.
func (s Set) Runes() []rune {
	rr := make([]rune, 0, len(s))
	for r := range s {
		rr = append(rr, r)
	}
	sort.Slice(rr, func(i, j int) bool { return rr[i] < rr[j] })
	return rr
}

// Ranges decomposes the set into maximal contiguous ranges,
// in increasing order.
func (s Set) Ranges() []Range {
	rr := s.Runes()
	var res []Range
	for _, r := range rr {
		if n := len(res); n > 0 && res[n-1].Hi+1 == r {
			res[n-1].Hi = r
		} else {
			res = append(res, Range{r, r})
		}
	}
	return res
}

// Union returns a new set containing the code points of s and other.
func (s Set) Union(other Set) Set {
	res := make(Set, len(s)+len(other))
	for r := range s {
		res[r] = struct{}{}
	}
	for r := range other {
		res[r] = struct{}{}
	}
	return res
}

// Intersect returns a new set containing the code points present in
// both s and other.
func (s Set) Intersect(other Set) Set {
	res := make(Set)
	for r := range s {
		if _, ok := other[r]; ok {
			res[r] = struct{}{}
		}
	}
	return res
}

// Subtract returns a new set containing the code points of s which are
// not in other.
func (s Set) Subtract(other Set) Set {
	res := make(Set)
	for r := range s {
		if _, ok := other[r]; !ok {
			res[r] = struct{}{}
		}
	}
	return res
}

// Parse reads a list of hexadecimal code points and ranges, separated
// by sep (a space if sep is empty).  A range is written "lo-hi" with
// lo strictly smaller than hi.  Listing a code point twice is an
// error.
func Parse(text, sep string) (Set, error) {
	if sep == "" {
		sep = " "
	}
	res := make(Set)
	for _, field := range strings.Split(text, sep) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		lo, hi, err := parseItem(field)
		if err != nil {
			return nil, err
		}
		for r := lo; r <= hi; r++ {
			if _, ok := res[r]; ok {
				return nil, fmt.Errorf("charset: %04x listed twice", r)
			}
			res[r] = struct{}{}
		}
	}
	return res, nil
}

func parseItem(field string) (lo, hi rune, err error) {
	if i := strings.IndexByte(field, '-'); i >= 0 {
		lo, err = parseHex(field[:i])
		if err != nil {
			return 0, 0, err
		}
		hi, err = parseHex(field[i+1:])
		if err != nil {
			return 0, 0, err
		}
		if lo >= hi {
			return 0, 0, fmt.Errorf("charset: invalid range %q", field)
		}
		return lo, hi, nil
	}
	lo, err = parseHex(field)
	return lo, lo, err
}

func parseHex(s string) (rune, error) {
	t := strings.TrimPrefix(s, "0x")
	t = strings.TrimPrefix(t, "0X")
	t = strings.TrimPrefix(t, "U+")
	t = strings.TrimPrefix(t, "u+")
	x, err := strconv.ParseUint(t, 16, 32)
	if err != nil || x > 0x10FFFF {
		return 0, fmt.Errorf("charset: invalid code point %q", s)
	}
	return rune(x), nil
}

// Format writes the set as a sorted list of hexadecimal code points
// and ranges, separated by sep (a space if sep is empty).  Maximal
// contiguous runs are collapsed into "lo-hi" ranges.
func (s Set) Format(sep string) string {
	if sep == "" {
		sep = " "
	}
	var parts []string
	for _, r := range s.Ranges() {
		if r.Lo == r.Hi {
			parts = append(parts, fmt.Sprintf("%04x", r.Lo))
		} else {
			parts = append(parts, fmt.Sprintf("%04x-%04x", r.Lo, r.Hi))
		}
	}
	return strings.Join(parts, sep)
}

func (s Set) String() string {
	return s.Format(" ")
}
