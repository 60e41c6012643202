package rfc9111

import (
	"testing"
	"time"
)

func TestCorrectedInitialAgeNoHeaders(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	in := AgeInputs{
		RequestTime:  now,
		ResponseTime: now.Add(5 * time.Millisecond),
		Now:          now.Add(5 * time.Millisecond),
	}
	got := CorrectedInitialAge(in)
	if got != 5*time.Millisecond {
		t.Fatalf("got %v, want 5ms", got)
	}
}

func TestCorrectedInitialAgeWithAgeHeader(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	in := AgeInputs{
		AgeHeader:    "10",
		RequestTime:  now,
		ResponseTime: now,
		Now:          now,
	}
	got := CorrectedInitialAge(in)
	if got != 10*time.Second {
		t.Fatalf("got %v, want 10s", got)
	}
}

func TestCurrentAgeAndFormat(t *testing.T) {
	responseTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := responseTime.Add(90 * time.Second)
	current := CurrentAge(0, responseTime, now)
	if current != 90*time.Second {
		t.Fatalf("got %v, want 90s", current)
	}
	if got := FormatAgeSeconds(current); got != "90" {
		t.Fatalf("got %q, want %q", got, "90")
	}
}

func TestDateValueFallsBackOutsideInterval(t *testing.T) {
	requestTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := requestTime.Add(time.Second)
	// a Date far in the future is outside (requestTime, now) and must fall back.
	future := FormatHTTPDate(now.Add(time.Hour))
	got := dateValue(future, requestTime, now)
	if !got.Equal(requestTime) {
		t.Fatalf("got %v, want fallback to requestTime %v", got, requestTime)
	}
}
