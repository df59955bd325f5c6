// Package textutil holds the text helpers shared by the geocoders: filtered
// joins, page decoding and lookups in parsed XML documents.
package textutil

import "strings"

// JoinFilter joins the non-empty parts with sep.
func JoinFilter(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// CollapseSpaces trims s and reduces every run of whitespace to a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
