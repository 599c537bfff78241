// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Microsoft Corporation. All rights reserved.
 *  Licensed under the MIT License. See License.txt in the project root for license information.
 *--------------------------------------------------------------------------------------------*/
// myersDiff below is ported from
// https://github.com/microsoft/vscode/blob/main/src/vs/editor/common/diff/defaultLinesDiffComputer/algorithms/myersDiffAlgorithm.ts

// Package diffmerge implements the line-diff and three-way-merge
// contract (spec §4.3): a Myers shortest-edit-script diff and a diff3
// merge, both operating over lines rather than shelling out to an
// external tool.
package diffmerge

// Change is one edit in an edit script: Del elements starting at P1 in
// the first sequence are replaced by Ins elements starting at P2 in the
// second.
type Change struct {
	P1, P2   int
	Del, Ins int
}

// myersDiff computes the shortest edit script turning seq1 into seq2.
func myersDiff[E comparable](seq1, seq2 []E) []Change {
	if len(seq1) == 0 && len(seq2) == 0 {
		return []Change{}
	}
	if len(seq1) == 0 {
		return []Change{{Ins: len(seq2)}}
	}
	if len(seq2) == 0 {
		return []Change{{Del: len(seq1)}}
	}
	getXAfterSnake := func(x, y int) int {
		for x < len(seq1) && y < len(seq2) && seq1[x] == seq2[y] {
			x++
			y++
		}
		return x
	}

	v := newFastIntArray()
	v.set(0, getXAfterSnake(0, 0))
	paths := newSnakeIndex()
	if v.get(0) == 0 {
		paths.set(0, nil)
	} else {
		paths.set(0, &snakePath{x: 0, y: 0, length: v.get(0)})
	}

	d := 0
	k := 0
outer:
	for {
		d++
		lowerBound := -min(d, len(seq2)+(d%2))
		upperBound := min(d, len(seq1)+(d%2))
		for k = lowerBound; k <= upperBound; k += 2 {
			topX, leftX := -1, -1
			if k != upperBound {
				topX = v.get(k + 1)
			}
			if k != lowerBound {
				leftX = v.get(k-1) + 1
			}
			x := min(max(topX, leftX), len(seq1))
			y := x - k
			if x > len(seq1) || y > len(seq2) {
				continue
			}
			newX := getXAfterSnake(x, y)
			v.set(k, newX)
			var prev *snakePath
			if x == topX {
				prev = paths.get(k + 1)
			} else {
				prev = paths.get(k - 1)
			}
			if newX != x {
				paths.set(k, &snakePath{pre: prev, x: x, y: y, length: newX - x})
			} else {
				paths.set(k, prev)
			}
			if v.get(k) == len(seq1) && v.get(k)-k == len(seq2) {
				break outer
			}
		}
	}

	path := paths.get(k)
	lastX, lastY := len(seq1), len(seq2)
	var changes []Change
	for {
		var endX, endY int
		if path != nil {
			endX = path.x + path.length
			endY = path.y + path.length
		}
		if endX != lastX || endY != lastY {
			changes = append(changes, Change{P1: endX, P2: endY, Del: lastX - endX, Ins: lastY - endY})
		}
		if path == nil {
			break
		}
		lastX, lastY = path.x, path.y
		path = path.pre
	}
	reverseChanges(changes)
	return changes
}

func reverseChanges(c []Change) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

type snakePath struct {
	pre          *snakePath
	x, y, length int
}

type fastIntArray struct {
	pos, neg []int
}

func newFastIntArray() *fastIntArray {
	return &fastIntArray{pos: make([]int, 10), neg: make([]int, 10)}
}

func (a *fastIntArray) get(i int) int {
	if i < 0 {
		return a.neg[-i-1]
	}
	return a.pos[i]
}

func (a *fastIntArray) set(i, v int) {
	if i < 0 {
		i = -i - 1
		a.neg = growInts(a.neg, i)
		a.neg[i] = v
		return
	}
	a.pos = growInts(a.pos, i)
	a.pos[i] = v
}

func growInts(s []int, i int) []int {
	if i < len(s) {
		return s
	}
	grown := make([]int, max(i+1, len(s)*2))
	copy(grown, s)
	return grown
}

type snakeIndex struct {
	pos, neg map[int]*snakePath
}

func newSnakeIndex() *snakeIndex {
	return &snakeIndex{pos: make(map[int]*snakePath), neg: make(map[int]*snakePath)}
}

func (s *snakeIndex) get(i int) *snakePath {
	if i < 0 {
		return s.neg[-i-1]
	}
	return s.pos[i]
}

func (s *snakeIndex) set(i int, v *snakePath) {
	if i < 0 {
		s.neg[-i-1] = v
		return
	}
	s.pos[i] = v
}
