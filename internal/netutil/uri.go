// Package netutil holds the network helpers used by probes: URI parsing,
// TCP reachability and HTTP document retrieval.
package netutil

import (
	"net/url"
	"strconv"
	"strings"
)

// parseURI parses [scheme://]host[:port][/rest], assuming http when the
// scheme is missing.
func parseURI(uri string) (*url.URL, error) {
	if !strings.Contains(uri, "://") {
		uri = "http://" + uri
	}
	return url.Parse(uri)
}

// URI2Host returns the lower-cased host part of uri, or "".
func URI2Host(uri string) string {
	u, err := parseURI(uri)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// URI2Port returns the port of uri, or def when there is none or it is not a
// number.
func URI2Port(uri string, def int) int {
	u, err := parseURI(uri)
	if err != nil {
		return def
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return def
	}
	return port
}
