package token

import "strings"

func foldEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// foldKey produces a case-insensitive canonical map key.
func foldKey(name string) string {
	return strings.ToLower(name)
}
