package headerview

import (
	"net/http"
	"testing"
)

func TestFromHTTPHeaderJoinsListValues(t *testing.T) {
	h := http.Header{}
	h.Add("X-Multi", "a")
	h.Add("X-Multi", "b")
	v := FromHTTPHeader(h)
	got, ok := v.Get("x-multi")
	if !ok || got != "a,b" {
		t.Fatalf("got (%q, %v), want (%q, true)", got, ok, "a,b")
	}
}

func TestFromHTTPHeaderAbsent(t *testing.T) {
	v := FromHTTPHeader(http.Header{})
	if v.Has("Cache-Control") {
		t.Fatal("expected absent")
	}
}

func TestFromMapScalarAndList(t *testing.T) {
	v := FromMap(map[string]any{
		"Cache-Control": "max-age=60",
		"X-Multi":       []string{"a", "b"},
		"X-Number":      42,
		"X-Absent":      nil,
	})
	if got, ok := v.Get("cache-control"); !ok || got != "max-age=60" {
		t.Fatalf("got (%q, %v)", got, ok)
	}
	if got, ok := v.Get("x-multi"); !ok || got != "a,b" {
		t.Fatalf("got (%q, %v)", got, ok)
	}
	if got, ok := v.Get("x-number"); !ok || got != "42" {
		t.Fatalf("got (%q, %v)", got, ok)
	}
	if v.Has("x-absent") {
		t.Fatal("nil values must be omitted")
	}
}

func TestKeysAreLowerAndSorted(t *testing.T) {
	v := FromMap(map[string]any{"B": "1", "A": "2"})
	got := v.Keys()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v", got)
	}
}
