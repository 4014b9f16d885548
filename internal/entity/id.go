package entity

import (
	"regexp"
	"strconv"
	"strings"
)

var integralDecimal = regexp.MustCompile(`^-?\d+(\.0+)?$`)

// CanonicalID gives the comparable form of an identifier that may have been
// carried as a JSON number, a quoted string or a URL segment.
func CanonicalID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if integralDecimal.MatchString(s) {
		if n, err := strconv.ParseInt(strings.SplitN(s, ".", 2)[0], 10, 64); err == nil {
			return strconv.FormatInt(n, 10)
		}
	}
	return s
}

func SameID(a, b string) bool {
	ca := CanonicalID(a)
	return ca != "" && ca == CanonicalID(b)
}
