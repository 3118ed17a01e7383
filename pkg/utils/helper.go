package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseID converts a path segment to a positive identifier.
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// NormalizeAirportCode trims and upper-cases an IATA code taken from a URL.
func NormalizeAirportCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RedactURI hides the password of a connection URI for logging.
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<invalid uri>"
	}
	return u.Redacted()
}
