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

import "fmt"

// matcher implements the Hungarian matching algorithm.  Given a cost
// matrix it pairs rows with columns so that the total cost over all
// pairs is minimal.  The number of rows and columns may differ, in
// which case some rows or columns stay unpaired.
type matcher struct {
	data []int
	rows int
	cols int

	// marked holds 0 for unmarked entries, 1 for starred zeros and
	// 2 for primed zeros.
	marked      []byte
	coveredRows []bool
	coveredCols []bool
	path        [][2]int
}

type matcherStep func() matcherStep

func newMatcher(data []int, rows, cols int) (*matcher, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf(
			"matcher: data length %d != %d x %d", len(data), rows, cols)
	}
	return &matcher{
		data:        data,
		rows:        rows,
		cols:        cols,
		marked:      make([]byte, len(data)),
		coveredRows: make([]bool, rows),
		coveredCols: make([]bool, cols),
	}, nil
}

// Run executes the algorithm and returns the row/column pairs found.
// The cost matrix is modified in the process.
func (m *matcher) Run() [][2]int {
	m.setup()
	step := m.coverStarredZeros
	for step != nil {
		step = step()
	}

	var pairs [][2]int
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.marked[r*m.cols+c] == 1 {
				pairs = append(pairs, [2]int{r, c})
			}
		}
	}
	return pairs
}

// setup subtracts the row minima, then stars one zero per column.
func (m *matcher) setup() {
	for r := 0; r < m.rows; r++ {
		row := m.data[r*m.cols : (r+1)*m.cols]
		minVal := row[0]
		for _, v := range row[1:] {
			minVal = min(minVal, v)
		}
		for i := range row {
			row[i] -= minVal
		}
	}

	starredCols := make([]bool, m.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.data[r*m.cols+c] == 0 && !starredCols[c] {
				starredCols[c] = true
				m.marked[r*m.cols+c] = 1
				break
			}
		}
	}
}

// coverStarredZeros covers each column containing a starred zero.
// Once enough columns are covered the matching is complete.
func (m *matcher) coverStarredZeros() matcherStep {
	for n, mark := range m.marked {
		if mark == 1 {
			m.coveredCols[n%m.cols] = true
		}
	}

	count := 0
	for _, covered := range m.coveredCols {
		if covered {
			count++
		}
	}
	if count >= min(m.rows, m.cols) {
		return nil
	}
	return m.primeUncoveredZeros
}

// primeUncoveredZeros primes uncovered zeros one at a time.  A primed
// zero with no starred zero in its row starts an augmenting path;
// otherwise the row is covered and the starred column uncovered.
func (m *matcher) primeUncoveredZeros() matcherStep {
	for {
		r, c := m.findUncoveredZero()
		if r < 0 {
			return m.adjustBySmallestUncovered
		}
		m.marked[r*m.cols+c] = 2
		starredCol := m.findStarInRow(r)
		if starredCol < 0 {
			m.path = [][2]int{{r, c}}
			return m.augmentPath
		}
		m.coveredRows[r] = true
		m.coveredCols[starredCol] = false
	}
}

func (m *matcher) findUncoveredZero() (int, int) {
	for r := 0; r < m.rows; r++ {
		if m.coveredRows[r] {
			continue
		}
		for c := 0; c < m.cols; c++ {
			if !m.coveredCols[c] && m.data[r*m.cols+c] == 0 {
				return r, c
			}
		}
	}
	return -1, -1
}

func (m *matcher) findStarInRow(row int) int {
	for c := 0; c < m.cols; c++ {
		if m.marked[row*m.cols+c] == 1 {
			return c
		}
	}
	return -1
}

func (m *matcher) findStarInCol(col int) int {
	for r := 0; r < m.rows; r++ {
		if m.marked[r*m.cols+col] == 1 {
			return r
		}
	}
	return -1
}

func (m *matcher) findPrimeInRow(row int) int {
	for c := 0; c < m.cols; c++ {
		if m.marked[row*m.cols+c] == 2 {
			return c
		}
	}
	panic("matcher: no primed zero in row")
}

// augmentPath extends the path of alternating primed and starred
// zeros, then flips the marks along the path.
func (m *matcher) augmentPath() matcherStep {
	for {
		c := m.path[len(m.path)-1][1]
		starredRow := m.findStarInCol(c)
		if starredRow < 0 {
			break
		}
		m.path = append(m.path, [2]int{starredRow, c})
		primedCol := m.findPrimeInRow(starredRow)
		m.path = append(m.path, [2]int{starredRow, primedCol})
	}

	for _, rc := range m.path {
		n := rc[0]*m.cols + rc[1]
		if m.marked[n] == 2 {
			m.marked[n] = 1
		} else {
			m.marked[n] = 0
		}
	}
	for n, mark := range m.marked {
		if mark == 2 {
			m.marked[n] = 0
		}
	}
	clear(m.coveredRows)
	clear(m.coveredCols)

	return m.coverStarredZeros
}

// adjustBySmallestUncovered finds the smallest uncovered value, adds
// it to the covered rows and subtracts it from the uncovered columns.
func (m *matcher) adjustBySmallestUncovered() matcherStep {
	minVal := -1
	for r := 0; r < m.rows; r++ {
		if m.coveredRows[r] {
			continue
		}
		for c := 0; c < m.cols; c++ {
			if m.coveredCols[c] {
				continue
			}
			v := m.data[r*m.cols+c]
			if minVal < 0 || v < minVal {
				minVal = v
			}
		}
	}

	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			delta := 0
			if m.coveredRows[r] {
				delta += minVal
			}
			if !m.coveredCols[c] {
				delta -= minVal
			}
			m.data[r*m.cols+c] += delta
		}
	}

	return m.primeUncoveredZeros
}
