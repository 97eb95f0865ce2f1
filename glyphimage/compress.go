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
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// compressTools are the external PNG optimisers, tried in order.
// Tools not installed are skipped.
var compressTools = []struct {
	name string
	args func(in, out string) []string
}{
	{"pngquant", func(in, out string) []string {
		return []string{"--force", "--skip-if-larger", "--output", out, in}
	}},
	{"zopflipng", func(in, out string) []string {
		return []string{"-y", in, out}
	}},
}

// pngquant exits with status 98 when --skip-if-larger rejects the
// result.
const pngquantSkipStatus = 98

// compressOne runs the available optimisers over one file, keeping
// the result only when it is smaller than the input.
func compressOne(ctx context.Context, fname string, tools []int) error {
	for _, idx := range tools {
		tool := compressTools[idx]
		tmp := fname + ".tmp"

		cmd := exec.CommandContext(ctx, tool.name, tool.args(fname, tmp)...)
		if err := cmd.Run(); err != nil {
			os.Remove(tmp)
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) &&
				tool.name == "pngquant" && exitErr.ExitCode() == pngquantSkipStatus {
				continue
			}
			return err
		}

		origInfo, err := os.Stat(fname)
		if err != nil {
			return err
		}
		tmpInfo, err := os.Stat(tmp)
		if err != nil {
			return err
		}
		if tmpInfo.Size() >= origInfo.Size() {
			os.Remove(tmp)
			continue
		}
		if err := os.Rename(tmp, fname); err != nil {
			return err
		}
	}
	return nil
}

// CompressImages shrinks all PNG files in dir using pngquant and
// zopflipng, running up to jobs files in parallel.  A jobs value of
// zero or less uses one job per CPU.  Optimisers which are not
// installed are skipped; files which would grow are left unchanged.
func CompressImages(ctx context.Context, dir string, jobs int) error {
	var tools []int
	for idx, tool := range compressTools {
		if _, err := exec.LookPath(tool.name); err == nil {
			tools = append(tools, idx)
		}
	}
	if len(tools) == 0 {
		return errors.New("glyphimage: no PNG optimiser found")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return err
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, fname := range files {
		fname := fname
		g.Go(func() error {
			return compressOne(ctx, fname, tools)
		})
	}
	return g.Wait()
}
