package auth

import (
	"strings"
	"unicode"
)

// AllowList is the static administrator configuration: a set of
// case-folded email addresses and Auth0 subject IDs. It is parsed once
// at startup and immutable afterwards.
type AllowList struct {
	entries map[string]struct{}
}

// ParseAllowList splits a delimited configuration string into an
// AllowList. Accepted delimiters: comma, semicolon, pipe and newlines.
// Entries are trimmed, stripped of non-printable characters and
// lower-cased; empty entries are dropped.
func ParseAllowList(raw string) *AllowList {
	entries := make(map[string]struct{})
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '\n' || r == '\r'
	})
	for _, f := range fields {
		f = strings.Map(func(r rune) rune {
			if unicode.IsPrint(r) {
				return r
			}
			return -1
		}, f)
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			entries[f] = struct{}{}
		}
	}
	return &AllowList{entries: entries}
}

// Contains reports whether the given email or subject ID is on the
// list. Matching is case-insensitive; the empty string never matches.
func (a *AllowList) Contains(v string) bool {
	if v == "" {
		return false
	}
	_, ok := a.entries[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Len returns the number of configured entries. Diagnostics report the
// count only, never the raw list.
func (a *AllowList) Len() int { return len(a.entries) }
