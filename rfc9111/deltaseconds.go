package rfc9111

import "math"

// maxDeltaSeconds is the clamp applied on overflow.
//
// §  1.2.2.  Delta Seconds
// §
// §     A recipient parsing a delta-seconds value and converting it to
// §     binary form ought to use an arithmetic type of at least 31 bits of
// §     non-negative integer range.  If a cache receives a delta-seconds
// §     value greater than the greatest integer it can represent, or if any
// §     of its subsequent calculations overflows, the cache MUST consider
// §     the value to be 2147483648 (2^31) or the greatest positive integer
// §     it can conveniently represent.
const maxDeltaSeconds = 1 << 31

// parseDeltaSeconds parses a strict non-negative decimal integer: only the
// digits 0-9, at least one of them, clamped to maxDeltaSeconds on overflow.
// No sign, no fractional or exponent syntax, no hexadecimal. Anything else
// reports absent.
func parseDeltaSeconds(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
		if n > maxDeltaSeconds || n < 0 {
			return maxDeltaSeconds, true
		}
	}
	if n > math.MaxInt32 {
		return maxDeltaSeconds, true
	}
	return n, true
}
