// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diffmerge

import (
	"fmt"
	"strings"
)

// LineDiff implements the line_diff half of the diff/merge contract
// (spec §4.3): unified-diff output with the given labels, empty when the
// two inputs are equal.
func LineDiff(aBytes, bBytes []byte, labelA, labelB string) []byte {
	a := splitLines(aBytes)
	b := splitLines(bBytes)
	changes := myersDiff(a, b)
	if len(changes) == 0 {
		return nil
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n", labelA)
	fmt.Fprintf(&out, "+++ %s\n", labelB)
	for _, c := range changes {
		fmt.Fprintf(&out, "@@ -%d,%d +%d,%d @@\n", c.P1+1, c.Del, c.P2+1, c.Ins)
		for i := 0; i < c.Del; i++ {
			out.WriteString("-")
			out.WriteString(a[c.P1+i])
			ensureNewline(&out, a[c.P1+i])
		}
		for i := 0; i < c.Ins; i++ {
			out.WriteString("+")
			out.WriteString(b[c.P2+i])
			ensureNewline(&out, b[c.P2+i])
		}
	}
	return []byte(out.String())
}

func ensureNewline(out *strings.Builder, line string) {
	if !strings.HasSuffix(line, "\n") {
		out.WriteString("\n")
	}
}
