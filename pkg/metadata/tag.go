package metadata

import (
	"fmt"
	"strings"
)

// Asset tags follow the structure ADM-<DEPT3>-<CAT3>-<SEQ4>, e.g. ADM-ITX-LAP-0001.
const (
	TagInit          = "ADM"
	deptCodeFallback = "GEN"
	catCodeFallback  = "AST"
	segmentLength    = 3
	sequenceDigits   = 4
	segmentPadChar   = 'X'
)

// CodeFrom reduces a free-text value to an exactly three character,
// uppercase, alphanumeric segment. Empty input falls back to the
// provided default before padding.
func CodeFrom(value string, fallback string) string {
	var clean strings.Builder
	for _, r := range strings.ToUpper(value) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			clean.WriteRune(r)
		}
	}

	code := clean.String()
	if code == "" {
		code = fallback
	}
	for len(code) < segmentLength {
		code += string(segmentPadChar)
	}

	return code[:segmentLength]
}

// TagPrefix derives the three-segment tag prefix. A raw prefix already
// starting with the ADM segment keeps its first three dash-delimited
// segments; anything else is synthesized from department and category.
func TagPrefix(rawPrefix, department, category string) string {
	deptCode := CodeFrom(department, deptCodeFallback)
	catCode := CodeFrom(category, catCodeFallback)

	if raw := strings.TrimSpace(rawPrefix); raw != "" {
		parts := splitSegments(strings.ToUpper(raw))
		if len(parts) > 0 && parts[0] == TagInit {
			for len(parts) < segmentLength {
				if len(parts) == 1 {
					parts = append(parts, deptCode)
				} else {
					parts = append(parts, catCode)
				}
			}
			return strings.Join(parts[:segmentLength], "-")
		}
	}

	return fmt.Sprintf("%s-%s-%s", TagInit, deptCode, catCode)
}

// FormatTag appends the zero-padded sequence number to a prefix.
func FormatTag(prefix string, sequence int) string {
	return fmt.Sprintf("%s-%0*d", prefix, sequenceDigits, sequence)
}

func splitSegments(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
