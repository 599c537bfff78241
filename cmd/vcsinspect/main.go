// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// vcsinspect is a thin smoke-test binary: point it at a working
// directory and it prints the store's current status and recent
// history. It is not a command-line dispatcher; flags/subcommands are
// out of scope (spec §1) — this exists only to exercise vcsrepo
// end-to-end against a real filesystem.
package main

import (
	"fmt"
	"os"

	"github.com/arborvcs/arbor/vcsrepo"
	"github.com/mattn/go-isatty"
)

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	repo, err := vcsrepo.Open(root, vcsrepo.DefaultStoreDirName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vcsinspect:", err)
		os.Exit(1)
	}

	color := isatty.IsTerminal(os.Stdout.Fd())
	if err := printStatus(repo, color); err != nil {
		fmt.Fprintln(os.Stderr, "vcsinspect:", err)
		os.Exit(1)
	}
	if err := printHistory(repo, 10, color); err != nil {
		fmt.Fprintln(os.Stderr, "vcsinspect:", err)
		os.Exit(1)
	}
}

func printStatus(repo *vcsrepo.Repository, color bool) error {
	st, err := repo.Status()
	if err != nil {
		return err
	}
	if st.IsClean() {
		fmt.Println(paint(color, "32", "working tree clean"))
		return nil
	}
	for path, ps := range st {
		label := fmt.Sprintf("%-10s staged=%-10s worktree=%-10s", path, ps.Staged, ps.Worktree)
		if ps.Staged != vcsrepo.StatusUnmodified || ps.Worktree != vcsrepo.StatusUnmodified {
			fmt.Println(paint(color, "33", label))
		}
	}
	return nil
}

func printHistory(repo *vcsrepo.Repository, max int, color bool) error {
	commits, err := repo.History("@", max) //nolint:errcheck -- empty repo, HEAD unresolved, nothing to print
	if err != nil {
		return nil
	}
	for _, c := range commits {
		fmt.Println(paint(color, "36", c.Committer.String()), "-", c.Message)
	}
	return nil
}

func paint(color bool, code, s string) string {
	if !color {
		return s
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, s)
}
