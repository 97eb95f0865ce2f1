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
	"bufio"
	"crypto/sha256"
	"fmt"
	"image"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fonttools/fontdata"
)

// A CodePair pairs the glyphs two fonts map the same character to.
// When only one font covers the character, the other glyph index
// is -1.
type CodePair struct {
	Base   int
	Target int
	Rune   rune
}

// A DiffPair pairs a base glyph with a target glyph based on how
// similar their images are.  Diff is the image difference of the
// pair; unpaired glyphs have the other index and the difference set
// to -1.
type DiffPair struct {
	Base   int
	Target int
	Diff   int
}

// PairInfo describes a complete pairing of the glyphs of two fonts.
//
// CodePairs holds the pairs which are matched through the character
// maps of the fonts.  Pairs holds the primary pairing of the
// remaining glyphs, chosen to minimise the total image difference.
// AltBase and AltTarget record pairs the matching discarded even
// though they have a lower difference than the primary pair of the
// same base or target glyph.
type PairInfo struct {
	BasePath   string
	BaseHash   string
	TargetPath string
	TargetHash string

	CodePairs []CodePair
	Pairs     []DiffPair
	AltBase   []DiffPair
	AltTarget []DiffPair
}

// fingerprintSize is the edge length of the downscaled images used
// to estimate glyph similarity.  Comparing full-size images is too
// slow for the several hundred unmatched glyphs a font update can
// have.
const fingerprintSize = 20

// fingerprint renders the image into the given frame and scales the
// result down with bilinear interpolation.
func fingerprint(im *Image, frame Frame) []byte {
	src := &image.Gray{
		Pix:    im.Render(frame, 0),
		Stride: frame.W,
		Rect:   image.Rect(0, 0, frame.W, frame.H),
	}
	dst := image.NewGray(image.Rect(0, 0, fingerprintSize, fingerprintSize))
	draw.BiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst.Pix
}

func diffFingerprints(a, b []byte) int {
	sum := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		sum += d * d
	}
	return sum
}

func sortedKeys(m map[int][]byte) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// bestDiff records the closest counterpart found for a glyph.
type bestDiff struct {
	diff  int
	other int
}

// imageDiffPairs pairs the given base glyphs with the given target
// glyphs by image similarity.  Glyphs whose fingerprints match
// exactly are paired first, the rest is handed to the Hungarian
// matcher.  The second and third return values list discarded pairs
// with a lower difference than the corresponding primary pair.
func imageDiffPairs(base *Collection, baseUnmatched []int, target *Collection, targetUnmatched []int) (pri, altBase, altTarget []DiffPair) {
	frame := UnionFrames([]Frame{
		base.CommonFrame(false),
		target.CommonFrame(false),
	})

	baseFP := make(map[int][]byte, len(baseUnmatched))
	for _, idx := range baseUnmatched {
		baseFP[idx] = fingerprint(base.Images[idx], frame)
	}
	targetFP := make(map[int][]byte, len(targetUnmatched))
	for _, idx := range targetUnmatched {
		targetFP[idx] = fingerprint(target.Images[idx], frame)
	}

	// Exact fingerprint matches are assumed to be intentional pairs.
	// Remove them before running the matcher, and remember the
	// closest target for each base glyph while we are at it.
	type pool struct{ b, t int }
	diffPool := make(map[pool]int)
	bestBase := make(map[int]bestDiff)
	var exact [][2]int
	for _, b := range sortedKeys(baseFP) {
		if len(targetFP) == 0 {
			break
		}
		best := bestDiff{diff: -1}
		exactT := -1
		for _, t := range sortedKeys(targetFP) {
			diff := diffFingerprints(baseFP[b], targetFP[t])
			if diff == 0 {
				exactT = t
				break
			}
			if best.diff < 0 || diff < best.diff {
				best = bestDiff{diff: diff, other: t}
			}
			diffPool[pool{b, t}] = diff
		}
		if exactT >= 0 {
			exact = append(exact, [2]int{b, exactT})
			delete(targetFP, exactT)
		}
		if best.diff >= 0 {
			bestBase[b] = best
		}
	}
	for _, m := range exact {
		delete(baseFP, m[0])
		pri = append(pri, DiffPair{Base: m[0], Target: m[1], Diff: 0})
	}

	bestTarget := make(map[int]bestDiff)
	for t := range targetFP {
		best := bestDiff{diff: -1}
		for b := range baseFP {
			diff, ok := diffPool[pool{b, t}]
			if !ok {
				continue
			}
			if best.diff < 0 || diff < best.diff {
				best = bestDiff{diff: diff, other: b}
			}
		}
		if best.diff >= 0 {
			bestTarget[t] = best
		}
	}

	if len(baseFP) > 0 && len(targetFP) > 0 {
		rowToBase := sortedKeys(baseFP)
		colToTarget := sortedKeys(targetFP)
		baseToRow := make(map[int]int, len(rowToBase))
		for i, b := range rowToBase {
			baseToRow[b] = i
		}
		targetToCol := make(map[int]int, len(colToTarget))
		for i, t := range colToTarget {
			targetToCol[t] = i
		}

		nrows := len(rowToBase)
		ncols := len(colToTarget)
		maxDiff := 255 * frame.W * frame.H
		mat := make([]int, nrows*ncols)
		for i := range mat {
			mat[i] = maxDiff
		}
		for p, d := range diffPool {
			r, okR := baseToRow[p.b]
			c, okC := targetToCol[p.t]
			if okR && okC {
				mat[r*ncols+c] = d
			}
		}

		m, err := newMatcher(mat, nrows, ncols)
		if err != nil {
			panic(err) // cannot happen
		}
		rcPairs := m.Run()
		sort.Slice(rcPairs, func(i, j int) bool {
			if rcPairs[i][0] != rcPairs[j][0] {
				return rcPairs[i][0] < rcPairs[j][0]
			}
			return rcPairs[i][1] < rcPairs[j][1]
		})
		for _, rc := range rcPairs {
			b := rowToBase[rc[0]]
			t := colToTarget[rc[1]]
			delete(baseFP, b)
			delete(targetFP, t)
			pri = append(pri, DiffPair{Base: b, Target: t, Diff: diffPool[pool{b, t}]})
		}
	}

	for _, b := range sortedKeys(baseFP) {
		pri = append(pri, DiffPair{Base: b, Target: -1, Diff: -1})
	}
	for _, t := range sortedKeys(targetFP) {
		pri = append(pri, DiffPair{Base: -1, Target: t, Diff: -1})
	}

	for _, p := range pri {
		if p.Diff == 0 {
			continue
		}
		if best, ok := bestBase[p.Base]; ok && (p.Diff < 0 || best.diff < p.Diff) {
			altBase = append(altBase, DiffPair{Base: p.Base, Target: best.other, Diff: best.diff})
		}
		if best, ok := bestTarget[p.Target]; ok && (p.Diff < 0 || best.diff < p.Diff) {
			altTarget = append(altTarget, DiffPair{Base: best.other, Target: p.Target, Diff: best.diff})
		}
	}
	sort.Slice(altBase, func(i, j int) bool { return altBase[i].Base < altBase[j].Base })
	sort.Slice(altTarget, func(i, j int) bool { return altTarget[i].Target < altTarget[j].Target })

	return pri, altBase, altTarget
}

// cpToGlyph reads the character map of the named font file.
func cpToGlyph(fname string) (map[rune]int, error) {
	font, err := sfnt.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	entries, err := fontdata.CMapEntries(font)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	res := make(map[rune]int, len(entries))
	for r, gid := range entries {
		res[r] = int(gid)
	}
	return res, nil
}

// codePairs pairs glyph indices via the character maps of the two
// fonts.  Matched characters come first, then characters only in the
// base font, then characters only in the target font, each group in
// character order.
func codePairs(baseMap, targetMap map[rune]int) []CodePair {
	var matched, baseOnly, targetOnly []rune
	for r := range baseMap {
		if _, ok := targetMap[r]; ok {
			matched = append(matched, r)
		} else {
			baseOnly = append(baseOnly, r)
		}
	}
	for r := range targetMap {
		if _, ok := baseMap[r]; !ok {
			targetOnly = append(targetOnly, r)
		}
	}
	for _, runes := range [][]rune{matched, baseOnly, targetOnly} {
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	}

	var pairs []CodePair
	for _, r := range matched {
		pairs = append(pairs, CodePair{Base: baseMap[r], Target: targetMap[r], Rune: r})
	}
	for _, r := range baseOnly {
		pairs = append(pairs, CodePair{Base: baseMap[r], Target: -1, Rune: r})
	}
	for _, r := range targetOnly {
		pairs = append(pairs, CodePair{Base: -1, Target: targetMap[r], Rune: r})
	}
	return pairs
}

// fileHash returns the SHA-256 hash of the named file, in the form
// "sha256:...".
func fileHash(fname string) (string, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer fd.Close()
	h := sha256.New()
	if _, err := io.Copy(h, fd); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// CollectionPairs pairs the glyphs of the two collections.  The font
// files named in the collection headers must still exist, since the
// character maps are read from there.  Glyphs matched by character
// are excluded from the image-based matching.
func CollectionPairs(base, target *Collection) (*PairInfo, error) {
	baseMap, err := cpToGlyph(base.Header.File)
	if err != nil {
		return nil, err
	}
	targetMap, err := cpToGlyph(target.Header.File)
	if err != nil {
		return nil, err
	}
	cpPairs := codePairs(baseMap, targetMap)

	baseUsed := make(map[int]bool)
	targetUsed := make(map[int]bool)
	for _, p := range cpPairs {
		baseUsed[p.Base] = true
		targetUsed[p.Target] = true
	}
	var baseUnmatched, targetUnmatched []int
	for idx := 1; idx < base.Header.NumGlyphs; idx++ {
		if !baseUsed[idx] && base.Images[idx] != nil {
			baseUnmatched = append(baseUnmatched, idx)
		}
	}
	for idx := 1; idx < target.Header.NumGlyphs; idx++ {
		if !targetUsed[idx] && target.Images[idx] != nil {
			targetUnmatched = append(targetUnmatched, idx)
		}
	}

	pri, altBase, altTarget := imageDiffPairs(base, baseUnmatched, target, targetUnmatched)

	baseHash, err := fileHash(base.Header.File)
	if err != nil {
		return nil, err
	}
	targetHash, err := fileHash(target.Header.File)
	if err != nil {
		return nil, err
	}

	return &PairInfo{
		BasePath:   base.Header.File,
		BaseHash:   baseHash,
		TargetPath: target.Header.File,
		TargetHash: targetHash,
		CodePairs:  cpPairs,
		Pairs:      pri,
		AltBase:    altBase,
		AltTarget:  altTarget,
	}, nil
}

// GeneratePairs reads the two glyph image files and pairs their
// glyphs.
func GeneratePairs(baseFile, targetFile string) (*PairInfo, error) {
	base, err := ReadCollectionFile(baseFile)
	if err != nil {
		return nil, err
	}
	target, err := ReadCollectionFile(targetFile)
	if err != nil {
		return nil, err
	}
	return CollectionPairs(base, target)
}

// Write writes the pairing in a line-based text format.
func (info *PairInfo) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(bw, "> base: %s\n", info.BasePath)
	fmt.Fprintf(bw, "> base_hash: %s\n", info.BaseHash)
	fmt.Fprintf(bw, "> target: %s\n", info.TargetPath)
	fmt.Fprintf(bw, "> target_hash: %s\n", info.TargetHash)
	fmt.Fprintf(bw, "> cp_pairs: %d\n", len(info.CodePairs))
	for _, p := range info.CodePairs {
		fmt.Fprintf(bw, "%d;%d;%04x\n", p.Base, p.Target, p.Rune)
	}
	for _, group := range []struct {
		label string
		pairs []DiffPair
	}{
		{"pri_pairs", info.Pairs},
		{"alt_base_pairs", info.AltBase},
		{"alt_target_pairs", info.AltTarget},
	} {
		fmt.Fprintf(bw, "> %s: %d\n", group.label, len(group.pairs))
		for _, p := range group.pairs {
			fmt.Fprintf(bw, "%d;%d;%d\n", p.Base, p.Target, p.Diff)
		}
	}
	return bw.Flush()
}

// WriteFile writes the pairing to the named file.
func (info *PairInfo) WriteFile(fname string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = info.Write(fd)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}

func readDiffPairs(l *lineReader, label string) ([]DiffPair, error) {
	count, err := l.keyInt(label)
	if err != nil {
		return nil, err
	}
	pairs := make([]DiffPair, count)
	for i := range pairs {
		line, err := l.Next()
		if err != nil {
			return nil, err
		}
		parts := strings.Split(line, ";")
		if len(parts) != 3 {
			return nil, l.errf("malformed pair %q", line)
		}
		var nums [3]int
		for j, s := range parts {
			nums[j], err = strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, l.errf("malformed pair %q", line)
			}
		}
		pairs[i] = DiffPair{Base: nums[0], Target: nums[1], Diff: nums[2]}
	}
	return pairs, nil
}

// ReadPairInfo reads a pairing written by [PairInfo.Write].
func ReadPairInfo(r io.Reader) (*PairInfo, error) {
	l := newLineReader(r)
	info := &PairInfo{}
	var err error
	if info.BasePath, err = l.keyVal("base"); err != nil {
		return nil, err
	}
	if info.BaseHash, err = l.keyVal("base_hash"); err != nil {
		return nil, err
	}
	if info.TargetPath, err = l.keyVal("target"); err != nil {
		return nil, err
	}
	if info.TargetHash, err = l.keyVal("target_hash"); err != nil {
		return nil, err
	}

	count, err := l.keyInt("cp_pairs")
	if err != nil {
		return nil, err
	}
	info.CodePairs = make([]CodePair, count)
	for i := range info.CodePairs {
		line, err := l.Next()
		if err != nil {
			return nil, err
		}
		parts := strings.Split(line, ";")
		if len(parts) != 3 {
			return nil, l.errf("malformed pair %q", line)
		}
		b, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		t, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		cp, err3 := strconv.ParseUint(strings.TrimSpace(parts[2]), 16, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, l.errf("malformed pair %q", line)
		}
		info.CodePairs[i] = CodePair{Base: b, Target: t, Rune: rune(cp)}
	}

	if info.Pairs, err = readDiffPairs(l, "pri_pairs"); err != nil {
		return nil, err
	}
	if info.AltBase, err = readDiffPairs(l, "alt_base_pairs"); err != nil {
		return nil, err
	}
	if info.AltTarget, err = readDiffPairs(l, "alt_target_pairs"); err != nil {
		return nil, err
	}
	return info, nil
}

// ReadPairInfoFile reads the pair file with the given name.
func ReadPairInfoFile(fname string) (*PairInfo, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	info, err := ReadPairInfo(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return info, nil
}
