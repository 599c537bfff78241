// Copyright ©️ Arbor VCS Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package plumbing

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// Signature is an author or committer identity: name, email, and the
// timestamp the action was taken, with its original timezone offset
// preserved (spec §6: "<unix-seconds> <±HHMM>" local, DST-aware).
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

const timeZoneLength = 5

// String encodes the signature in the wire form spec §3 names:
// "<name> <<email>> <unix-seconds> <±HHMM>".
func (s Signature) String() string {
	at := s.When.Unix()
	zone := s.When.Format("-0700")
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, at, zone)
}

// DecodeSignature parses the wire form written by String. Decode errors
// leave partially-populated fields rather than failing outright, mirroring
// the teacher's tolerant signature parser: a malformed trailing
// timestamp must not make an otherwise-valid commit unreadable.
func DecodeSignature(b []byte) Signature {
	var s Signature
	open := bytes.LastIndexByte(b, '<')
	closeIdx := bytes.LastIndexByte(b, '>')
	if open == -1 || closeIdx == -1 || closeIdx < open {
		return s
	}
	s.Name = string(bytes.TrimSpace(b[:open]))
	s.Email = string(b[open+1 : closeIdx])
	if closeIdx+2 < len(b) {
		s.decodeTimeAndZone(b[closeIdx+2:])
	}
	return s
}

func (s *Signature) decodeTimeAndZone(b []byte) {
	space := bytes.IndexByte(b, ' ')
	if space == -1 {
		space = len(b)
	}
	ts, err := strconv.ParseInt(string(b[:space]), 10, 64)
	if err != nil {
		return
	}
	s.When = time.Unix(ts, 0).In(time.UTC)
	tzStart := space + 1
	if tzStart >= len(b) || tzStart+timeZoneLength > len(b) {
		return
	}
	tz := string(b[tzStart : tzStart+timeZoneLength])
	hours, err1 := strconv.ParseInt(tz[0:3], 10, 64)
	mins, err2 := strconv.ParseInt(tz[3:], 10, 64)
	if err1 != nil || err2 != nil {
		return
	}
	if hours < 0 {
		mins *= -1
	}
	loc := time.FixedZone("", int(hours*3600+mins*60))
	s.When = s.When.In(loc)
}

// NewSignature builds a signature stamped with the local, DST-aware
// timezone at "when" — the offset is computed from the wall-clock
// location, not fixed to UTC, per spec §6.
func NewSignature(name, email string, when time.Time) Signature {
	return Signature{Name: name, Email: email, When: when.In(time.Local)}
}
