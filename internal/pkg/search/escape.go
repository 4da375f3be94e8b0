// Package search holds helpers shared by the LIKE/ILIKE query builders.
package search

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE wildcards in s using backslash as escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns a LIKE pattern matching any value containing s.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// Normalize trims s. A blank result means the filter is absent.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}
