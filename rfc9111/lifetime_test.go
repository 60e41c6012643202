package rfc9111

import (
	"testing"
	"time"
)

func TestLifetimeNoStoreWins(t *testing.T) {
	in := LifetimeInputs{
		ResponseCacheControl: ParseCacheControl("no-store, max-age=60"),
		HeuristicLifetime:    time.Minute,
		Now:                  time.Now(),
	}
	if _, ok := Lifetime(in); ok {
		t.Fatal("no-store must make the response not storable")
	}
}

func TestLifetimeSharedPrivateNotStorable(t *testing.T) {
	in := LifetimeInputs{
		Shared:               true,
		ResponseCacheControl: ParseCacheControl("private, max-age=60"),
		HeuristicLifetime:    time.Minute,
		Now:                  time.Now(),
	}
	if _, ok := Lifetime(in); ok {
		t.Fatal("shared cache facing private must not store")
	}
}

func TestLifetimeSMaxAgeBeatsMaxAgeWhenShared(t *testing.T) {
	in := LifetimeInputs{
		Shared:               true,
		ResponseCacheControl: ParseCacheControl("max-age=10, s-maxage=20"),
		Now:                  time.Now(),
	}
	got, ok := Lifetime(in)
	if !ok || got != 20*time.Second {
		t.Fatalf("got (%v, %v), want (20s, true)", got, ok)
	}
}

func TestLifetimeMaxAge(t *testing.T) {
	in := LifetimeInputs{
		ResponseCacheControl: ParseCacheControl("max-age=30"),
		Now:                  time.Now(),
	}
	got, ok := Lifetime(in)
	if !ok || got != 30*time.Second {
		t.Fatalf("got (%v, %v), want (30s, true)", got, ok)
	}
}

func TestLifetimeHeuristicWhenNoExpires(t *testing.T) {
	in := LifetimeInputs{
		ResponseCacheControl: ParseCacheControl(""),
		HeuristicLifetime:    60 * time.Second,
		Now:                  time.Now(),
	}
	got, ok := Lifetime(in)
	if !ok || got != 60*time.Second {
		t.Fatalf("got (%v, %v), want (60s, true)", got, ok)
	}
}

func TestLifetimeExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	in := LifetimeInputs{
		ResponseCacheControl: ParseCacheControl(""),
		ExpiresHeader:        FormatHTTPDate(now.Add(90 * time.Second)),
		Now:                  now,
	}
	got, ok := Lifetime(in)
	if !ok || got != 90*time.Second {
		t.Fatalf("got (%v, %v), want (90s, true)", got, ok)
	}
}

func TestLifetimeUnparsableExpiresNotStorable(t *testing.T) {
	in := LifetimeInputs{
		ResponseCacheControl: ParseCacheControl(""),
		ExpiresHeader:        "not a date",
		Now:                  time.Now(),
	}
	if _, ok := Lifetime(in); ok {
		t.Fatal("an unparsable Expires must make the response not storable")
	}
}
