package buildcond

import (
	"strconv"
	"strings"
)

// NumericValue attempts numeric coercion of expanded text. Decimal and
// hexadecimal forms are accepted; anything else fails closed. Version-like
// tokens such as "5.0" coerce as doubles, which is what gives `'5' == '5.0'`
// its numeric-equality result.
func NumericValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// BoolValue attempts boolean coercion of expanded text. Only the canonical
// tokens "true" and "false" coerce, case-insensitively; near-misses like
// "on" or "yes" fail closed and fall through to string comparison.
func BoolValue(s string) (bool, bool) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	default:
		return false, false
	}
}
