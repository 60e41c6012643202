package rfc9111

import (
	"strconv"
	"time"
)

// AgeInputs bundles the values needed to compute corrected_initial_age per
// §4.2.3, without depending on any particular HTTP request/response type.
type AgeInputs struct {
	// AgeHeader is the raw "Age" field value, or "" if absent.
	AgeHeader string
	// DateHeader is the raw "Date" field value, or "" if absent.
	DateHeader   string
	RequestTime  time.Time
	ResponseTime time.Time
	Now          time.Time
}

// §  4.2.3.  Calculating Age
// §
// §     Age calculation uses the following data:
// §
// §     "age_value"
// §        The term "age_value" denotes the value of the Age header field,
// §        in a form appropriate for arithmetic operation; or 0, if not
// §        available.
func ageValue(ageHeader string) time.Duration {
	if ageHeader == "" {
		return 0
	}
	seconds, ok := parseDeltaSeconds(ageHeader)
	if !ok {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// dateValue normalizes the Date header to the half-open interval
// (requestTime, now); a missing or out-of-range value falls back to
// requestTime, as recommended when clocks may be unsynchronized.
func dateValue(dateHeader string, requestTime, now time.Time) time.Time {
	t, ok := ParseHTTPDate(dateHeader)
	if !ok {
		return requestTime
	}
	if !t.After(requestTime) || !t.Before(now) {
		return requestTime
	}
	return t
}

func durationMax(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// CorrectedInitialAge computes corrected_initial_age per §4.2.3:
//
// §       apparent_age = max(0, response_time - date_value);
// §       response_delay = response_time - request_time;
// §       corrected_age_value = age_value + response_delay;
// §       corrected_initial_age = max(apparent_age, corrected_age_value);
func CorrectedInitialAge(in AgeInputs) time.Duration {
	dateVal := dateValue(in.DateHeader, in.RequestTime, in.Now)
	apparentAge := durationMax(0, in.ResponseTime.Sub(dateVal))
	responseDelay := in.ResponseTime.Sub(in.RequestTime)
	correctedAgeValue := ageValue(in.AgeHeader) + responseDelay
	return durationMax(apparentAge, correctedAgeValue)
}

// CurrentAge computes current_age at lookup time:
//
// §       resident_time = now - response_time;
// §       current_age = corrected_initial_age + resident_time;
func CurrentAge(correctedInitialAge time.Duration, responseTime, now time.Time) time.Duration {
	return correctedInitialAge + now.Sub(responseTime)
}

// FormatAgeSeconds renders a duration as the integer-seconds "Age" field
// value, per the current_age/1000 floor used when re-emitting a cached
// response.
func FormatAgeSeconds(age time.Duration) string {
	if age < 0 {
		age = 0
	}
	return strconv.FormatInt(int64(age/time.Second), 10)
}
