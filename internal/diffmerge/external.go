// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diffmerge

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// ExternalMergeTool shells out to a user-configured three-way-merge
// command instead of the built-in diff3, mirroring how the teacher's
// editor integration splits a configured command line into argv.
// vcsrepo wires this in via the merge.tool config key (internal/config)
// whenever it is non-empty; the built-in diff3 is used otherwise.
type ExternalMergeTool struct {
	CommandLine string
}

// Merge runs the configured command with labelHead and labelOther
// appended as its last two arguments, feeding it base/head/other on
// stdin; the command must print the merged result, conflict markers
// included, to stdout. A non-zero exit is treated as "conflict
// present", matching diff3's exit code convention.
func (t *ExternalMergeTool) Merge(ctx context.Context, base, head, other []byte, labelHead, labelOther string) ([]byte, bool, error) {
	args, err := shellquote.Split(t.CommandLine)
	if err != nil {
		return nil, false, fmt.Errorf("diffmerge: parse external tool command: %w", err)
	}
	if len(args) == 0 {
		return nil, false, fmt.Errorf("diffmerge: empty external tool command")
	}
	args = append(args, labelHead, labelOther)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = bytes.NewReader(buildExternalInput(base, head, other))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err = cmd.Run()
	if err == nil {
		return stdout.Bytes(), false, nil
	}
	var exitErr *exec.ExitError
	if ok := isExitError(err, &exitErr); ok {
		return stdout.Bytes(), true, nil
	}
	return nil, false, fmt.Errorf("diffmerge: external tool: %w", err)
}

func isExitError(err error, target **exec.ExitError) bool {
	e, ok := err.(*exec.ExitError)
	if ok {
		*target = e
	}
	return ok
}

func buildExternalInput(base, head, other []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("--- BASE ---\n")
	buf.Write(base)
	buf.WriteString("--- HEAD ---\n")
	buf.Write(head)
	buf.WriteString("--- OTHER ---\n")
	buf.Write(other)
	return buf.Bytes()
}
