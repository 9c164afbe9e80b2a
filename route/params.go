package route

import (
	"net/url"
	"strings"
)

// resolveParams merges default values, raw captures, and wildcard
// segmentation into the final parameter map.
//
// Rules, in order: start from a copy of the defaults; overlay every
// non-empty capture, percent-decoded, under its name (an empty capture
// never appears, which is what makes optional trailing tokens work);
// finally, a configured wildcard parameter is always an ordered
// []string — empty when nothing was captured, otherwise the raw
// capture split on "/" with each segment decoded individually.
func resolveParams(defaults map[string]any, captures map[string]string, wildcard string) map[string]any {
	params := make(map[string]any, len(defaults)+len(captures))
	for k, v := range defaults {
		params[k] = v
	}

	for name, raw := range captures {
		if raw == "" {
			continue
		}
		params[name] = decodeSegment(raw)
	}

	if wildcard != "" {
		raw := captures[wildcard]
		if raw == "" {
			params[wildcard] = []string{}
		} else {
			segments := strings.Split(raw, "/")
			decoded := make([]string, len(segments))
			for i, s := range segments {
				decoded[i] = decodeSegment(s)
			}
			params[wildcard] = decoded
		}
	}

	return params
}

// decodeSegment percent-decodes s, keeping it verbatim when the
// encoding is malformed.
func decodeSegment(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
