package qualify

import (
	"strings"
)

// USFormattedAddress reports whether an address string looks like a US
// locale: a two-letter state code, optionally followed by a ZIP code, in one
// of its comma-separated segments ("123 Main St, Springfield, IL 62701").
// A trailing "USA"/"United States" segment also passes.
func USFormattedAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}

	for _, part := range strings.Split(addr, ",") {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "usa") || strings.EqualFold(part, "united states") {
			return true
		}
		if state, _ := parseStateZip(part); state != "" {
			return true
		}
	}
	return false
}

// parseStateZip extracts "IL 62701" or "IL" from an address segment.
func parseStateZip(s string) (state, zip string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}

	candidate := fields[0]
	if len(candidate) != 2 || !isUpperAlpha(candidate) {
		return "", ""
	}

	state = candidate
	if len(fields) >= 2 && isZipCode(fields[1]) {
		zip = fields[1]
	}
	return state, zip
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// isZipCode accepts 5-digit and ZIP+4 formats.
func isZipCode(s string) bool {
	if len(s) < 5 || len(s) > 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '-' && (s[i] < '0' || s[i] > '9') {
			return false
		}
	}
	return true
}
