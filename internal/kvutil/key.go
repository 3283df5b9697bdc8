package kvutil

import "strings"

// Key joins a prefix and an identifier into a KV key.
//
// KV keys may only contain [-/_=.a-zA-Z0-9] and must not start or end with
// a dot. Disallowed characters in id are replaced with '_'. An empty prefix
// yields the sanitized id alone.
//
// Example:
//
//	kvutil.Key("collective", "flat 42") // "collective.flat_42"
func Key(prefix, id string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '/' || r == '=':
			return r
		default:
			return '_'
		}
	}, id)

	if prefix == "" {
		return clean
	}

	return strings.Trim(prefix, ".") + "." + clean
}
