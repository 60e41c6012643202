package rfc9111

import (
	"strings"
	"time"
)

// §  5.6.7.  Date/Time Formats (RFC 9110)
// §
// §     Prior to 1995, there were three different formats commonly used by
// §     servers to communicate timestamps.  For compatibility with old
// §     implementations, all three are defined here.  The preferred format
// §     is a fixed-length and single-zone subset of the date and time
// §     specification used by the Internet Message Format [RFC5322].
// §
// §       HTTP-date    = IMF-fixdate / obs-date
// §
// §     A recipient that parses a timestamp value in an HTTP field MUST
// §     accept all three HTTP-date formats.
const imfFixdateLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// ParseHTTPDate parses an HTTP-date field value in any of the three
// permitted formats, relaxing case as recipients are allowed to (§4.2 of
// [CACHING] relaxes the sender-side case sensitivity of §5.6.7). The zero
// time and false are returned when the value cannot be parsed.
func ParseHTTPDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	normalized := strings.ToUpper(value)
	if t, err := time.Parse(imfFixdateLayout, normalized); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC850, normalized); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.ANSIC, normalized); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatHTTPDate renders t in the preferred IMF-fixdate form.
func FormatHTTPDate(t time.Time) string {
	return t.UTC().Format(imfFixdateLayout)
}
