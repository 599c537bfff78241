// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Copyright (c) 2024 epic labs
Three-way merge algorithm below (diff3MergeIndices/diff3Merge/ThreeWayMerge).
Original version in Javascript by Bryan Housel @bhousel: https://github.com/bhousel/node-diff3,
which in turn is based on project Synchrotron, created by Tony Garnock-Jones. For more detail please visit:
http://homepages.kcbbs.gen.nz/tonyg/projects/synchrotron.html
https://github.com/tonyg/synchrotron

Ported to go by Javier Peletier @jpeletier

SOURCE: https://github.com/epiclabs-io/diff3

SPDX-License-Identifier: MIT
*/

package diffmerge

import "sort"

type hunk [5]int

// diff3MergeIndices aligns o/head/other into a sequence of common and
// conflicting regions.
func diff3MergeIndices(o, head, other []string) [][]int {
	m1 := myersDiff(o, head)
	m2 := myersDiff(o, other)

	var hunks []*hunk
	addHunk := func(c Change, side int) {
		hunks = append(hunks, &hunk{c.P1, side, c.Del, c.P2, c.Ins})
	}
	for _, c := range m1 {
		addHunk(c, 0)
	}
	for _, c := range m2 {
		addHunk(c, 2)
	}
	sort.Slice(hunks, func(i, j int) bool { return hunks[i][0] < hunks[j][0] })

	var result [][]int
	commonOffset := 0
	copyCommon := func(target int) {
		if target > commonOffset {
			result = append(result, []int{1, commonOffset, target - commonOffset})
			commonOffset = target
		}
	}

	for i := 0; i < len(hunks); i++ {
		first := i
		h := hunks[i]
		lhs := h[0]
		rhs := lhs + h[2]
		for i < len(hunks)-1 {
			next := hunks[i+1]
			if next[0] > rhs {
				break
			}
			rhs = max(rhs, next[0]+next[2])
			i++
		}

		copyCommon(lhs)
		if first == i {
			if h[4] > 0 {
				result = append(result, []int{h[1], h[3], h[4]})
			}
		} else {
			regions := [][]int{{len(head), -1, len(o), -1}, nil, {len(other), -1, len(o), -1}}
			for j := first; j <= i; j++ {
				hh := hunks[j]
				side := hh[1]
				r := regions[side]
				oLhs, oRhs := hh[0], hh[0]+hh[2]
				abLhs, abRhs := hh[3], hh[3]+hh[4]
				r[0] = min(abLhs, r[0])
				r[1] = max(abRhs, r[1])
				r[2] = min(oLhs, r[2])
				r[3] = max(oRhs, r[3])
			}
			aLhs := regions[0][0] + (lhs - regions[0][2])
			aRhs := regions[0][1] + (rhs - regions[0][3])
			bLhs := regions[2][0] + (lhs - regions[2][2])
			bRhs := regions[2][1] + (rhs - regions[2][3])
			result = append(result, []int{-1, aLhs, aRhs - aLhs, lhs, rhs - lhs, bLhs, bRhs - bLhs})
		}
		commonOffset = rhs
	}
	copyCommon(len(o))
	return result
}

type mergeBlock struct {
	ok       []string
	conflict *mergeConflict
}

type mergeConflict struct {
	head  []string
	other []string
}

func diff3Merge(o, head, other []string) []*mergeBlock {
	files := [][]string{head, o, other}
	indices := diff3MergeIndices(o, head, other)

	var result []*mergeBlock
	var okLines []string
	flushOk := func() {
		if len(okLines) != 0 {
			result = append(result, &mergeBlock{ok: okLines})
			okLines = nil
		}
	}
	pushOk := func(xs []string) { okLines = append(okLines, xs...) }

	isTrueConflict := func(rec []int) bool {
		if rec[2] != rec[6] {
			return true
		}
		aoff, boff := rec[1], rec[5]
		for j := 0; j < rec[2]; j++ {
			if head[j+aoff] != other[j+boff] {
				return true
			}
		}
		return false
	}

	for _, x := range indices {
		side := x[0]
		if side == -1 {
			if !isTrueConflict(x) {
				pushOk(head[x[1] : x[1]+x[2]])
				continue
			}
			flushOk()
			result = append(result, &mergeBlock{conflict: &mergeConflict{
				head:  head[x[1] : x[1]+x[2]],
				other: other[x[5] : x[5]+x[6]],
			}})
			continue
		}
		pushOk(files[side][x[1] : x[1]+x[2]])
	}
	flushOk()
	return result
}

const (
	conflictStart = "<<<<<<<"
	conflictMid   = "======="
	conflictEnd   = ">>>>>>>"
)

// ThreeWayMerge implements the three_way_merge half of the diff/merge
// contract (spec §4.3): a diff3 merge of head and other against their
// common base, with conflict markers around unresolved hunks. labelBase
// is accepted for contract symmetry with the external-tool form but is
// not shown in the default marker style (no base hunk is printed).
func ThreeWayMerge(baseBytes, headBytes, otherBytes []byte, labelHead, labelBase, labelOther string) (merged []byte, conflict bool) {
	_ = labelBase
	o := splitLines(baseBytes)
	head := splitLines(headBytes)
	other := splitLines(otherBytes)

	blocks := diff3Merge(o, head, other)

	var out []string
	for _, blk := range blocks {
		if blk.conflict == nil {
			out = append(out, blk.ok...)
			continue
		}
		conflict = true
		out = append(out, markerLine(conflictStart, labelHead))
		out = append(out, blk.conflict.head...)
		out = append(out, markerLine(conflictMid, ""))
		out = append(out, blk.conflict.other...)
		out = append(out, markerLine(conflictEnd, labelOther))
	}
	return []byte(joinLines(out)), conflict
}

func markerLine(marker, label string) string {
	if label == "" {
		return marker + "\n"
	}
	return marker + " " + label + "\n"
}
