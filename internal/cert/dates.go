package cert

import (
	"fmt"
	"strings"
	"time"
)

// opensslTimeLayout matches `openssl x509 -dates`, e.g. "Jan  2 15:04:05 2030 GMT".
const opensslTimeLayout = "Jan _2 15:04:05 2006 GMT"

var dateLayouts = []string{
	opensslTimeLayout,
	// -dateopt iso_8601 (OpenSSL 3.x)
	"2006-01-02 15:04:05Z",
}

// parseDates reads the notBefore=/notAfter= lines of `openssl x509 -dates`.
// Each boundary is parsed independently; a missing line leaves Err set to
// ErrFieldMissing.
func parseDates(stdout []byte) ValidityWindow {
	w := ValidityWindow{
		NotBefore: Boundary{Err: ErrFieldMissing},
		NotAfter:  Boundary{Err: ErrFieldMissing},
	}
	for _, line := range strings.Split(string(stdout), "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "notBefore":
			w.NotBefore = parseBoundary(val)
		case "notAfter":
			w.NotAfter = parseBoundary(val)
		}
	}
	return w
}

func parseBoundary(raw string) Boundary {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Boundary{Raw: raw, Time: t}
		}
	}
	return Boundary{Raw: raw, Err: fmt.Errorf("unrecognized date %q", raw)}
}
