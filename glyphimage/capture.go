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
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// CaptureCommand is the name of the external helper program which
// rasterises all glyphs of a font and writes a glyph image file to
// its standard output.  It is called with the font file name and the
// pixel size as arguments.
var CaptureCommand = "glyph-image"

// Capture runs [CaptureCommand] to render all glyphs of the named
// font at the given pixel size.
func Capture(ctx context.Context, fontFile string, size int) (*Collection, error) {
	cmd := exec.CommandContext(ctx, CaptureCommand, fontFile, strconv.Itoa(size))
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", CaptureCommand, err)
	}

	c, readErr := ReadCollection(stdout)
	io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", CaptureCommand, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", CaptureCommand, err)
	}
	if readErr != nil {
		return nil, fmt.Errorf("%s output: %w", CaptureCommand, readErr)
	}
	return c, nil
}

// CaptureFile runs [CaptureCommand] and writes the result to the
// named glyph image file.
func CaptureFile(ctx context.Context, fontFile string, size int, outFile string) error {
	c, err := Capture(ctx, fontFile, size)
	if err != nil {
		return err
	}
	return c.WriteFile(outFile)
}
