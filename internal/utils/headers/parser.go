package headers

import (
	"net/http"
	"strings"
)

// ParseHeaders converts "Key: Value" strings from repeated -H flags into a
// map keyed by canonical header name. Entries without a colon or with an
// empty name are dropped; a later entry for the same name wins.
func ParseHeaders(h []string) map[string]string {
	m := make(map[string]string)
	for _, hdr := range h {
		parts := strings.SplitN(hdr, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		m[http.CanonicalHeaderKey(key)] = strings.TrimSpace(parts[1])
	}
	return m
}
