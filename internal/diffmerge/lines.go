// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diffmerge

import "strings"

// splitLines splits data into lines, keeping each line's trailing "\n"
// attached so that concatenating the slice reproduces data exactly. A
// final line with no trailing newline is kept as a short last element.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	s := string(data)
	var lines []string
	for {
		i := strings.IndexByte(s, '\n')
		if i == -1 {
			if len(s) > 0 {
				lines = append(lines, s)
			}
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
	}
	return b.String()
}
