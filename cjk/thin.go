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

package cjk

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/os2"
)

// ThinWeightChangeNote is appended to the description of fonts fixed
// by FixThinWeight.
const ThinWeightChangeNote = "Weight class changed from 100 to 250 for improved rendering on Windows."

// versionStep is the smallest bump of the font revision which is
// still visible in the "%.03f" rendering of 16.16 fixed point.
const versionStep = 0x10000 / 1000

// FixThinWeight adjusts the OS/2 weight class of a CJK Thin font
// from 100 to 250.  Windows renders weights below 250 with a faux
// emboldening which ruins thin designs.  The font revision is bumped
// and a change notice is appended to the description.
func FixThinWeight(font *sfnt.Font) error {
	if !font.IsCFF() {
		return errors.New("cjk: thin weight fix applies to CFF fonts only")
	}
	if font.Weight != 100 {
		return fmt.Errorf("cjk: weight class is %d, want 100", font.Weight)
	}

	font.Weight = os2.Weight(250)
	font.Version += head.Version(versionStep)
	if font.Description != "" {
		font.Description += "\n"
	}
	font.Description += ThinWeightChangeNote
	return nil
}
