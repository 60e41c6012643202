package rfc9111

import "testing"

func TestValidatorsMatchesExactly(t *testing.T) {
	a := Validators{ETag: `"v1"`, LastModified: "t1"}
	b := Validators{ETag: `"v1"`, LastModified: "t1"}
	if !a.MatchesExactly(b) {
		t.Fatal("identical validator sets must match")
	}
	b.ETag = `"v2"`
	if a.MatchesExactly(b) {
		t.Fatal("differing ETag must not match")
	}
}
