// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config resolves the committer identity used by commit: a TOML
// file, falling back to environment variables, falling back to a fixed
// default (spec §4.7's commit precondition).
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// User is a name/email pair, matching the teacher's config.User shape.
type User struct {
	Name  string `toml:"name,omitempty"`
	Email string `toml:"email,omitempty"`
}

func (u User) Empty() bool {
	return u.Name == "" && u.Email == ""
}

func overwrite(a, b string) string {
	if b != "" {
		return b
	}
	return a
}

// Overwrite returns u with each field replaced by o's wherever o's is
// non-empty.
func (u User) Overwrite(o User) User {
	return User{Name: overwrite(u.Name, o.Name), Email: overwrite(u.Email, o.Email)}
}

// Merge holds the diff/merge service override of spec §4.3: when Tool
// is set, conflicting hunks are resolved by shelling out to that
// command line (internal/diffmerge.ExternalMergeTool) instead of the
// built-in diff3.
type Merge struct {
	Tool string `toml:"tool,omitempty"`
}

// Config is the on-disk, TOML-encoded repository configuration.
type Config struct {
	User  User  `toml:"user"`
	Merge Merge `toml:"merge"`
}

const fileName = "config.toml"

// DefaultUser is used when no identity is configured anywhere.
var DefaultUser = User{Name: "Unknown", Email: "unknown@example.com"}

// Load reads root/config.toml, tolerating its absence.
func Load(root string) (*Config, error) {
	c := &Config{}
	path := filepath.Join(root, fileName)
	_, err := toml.DecodeFile(path, c)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return c, nil
}

// Save writes root/config.toml.
func (c *Config) Save(root string) error {
	path := filepath.Join(root, fileName)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// ResolveUser computes the commit identity per spec §4.7: explicit
// overrides first, then the repository config, then the
// GIT_AUTHOR_NAME/GIT_AUTHOR_EMAIL environment variables, falling back to
// DefaultUser for any field none of them sets.
func (c *Config) ResolveUser(overrides User) User {
	u := User{Name: os.Getenv("GIT_AUTHOR_NAME"), Email: os.Getenv("GIT_AUTHOR_EMAIL")}
	u = u.Overwrite(c.User)
	u = u.Overwrite(overrides)
	if u.Empty() {
		return DefaultUser
	}
	if u.Name == "" {
		u.Name = DefaultUser.Name
	}
	if u.Email == "" {
		u.Email = DefaultUser.Email
	}
	return u
}
