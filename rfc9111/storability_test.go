package rfc9111

import "testing"

func TestCanStoreBasicGET200WithMaxAge(t *testing.T) {
	in := CanStoreInputs{
		Method:               "GET",
		Status:               200,
		ResponseCacheControl: ParseCacheControl("max-age=60"),
	}
	if !CanStore(in) {
		t.Fatal("expected storable")
	}
}

func TestCanStoreRejectsWildcardVary(t *testing.T) {
	in := CanStoreInputs{
		Method:               "GET",
		Status:               200,
		ResponseCacheControl: ParseCacheControl("max-age=60"),
		Vary:                 []string{"*"},
	}
	if CanStore(in) {
		t.Fatal("Vary: * must never be storable")
	}
}

func TestCanStoreRejectsPost(t *testing.T) {
	in := CanStoreInputs{
		Method:               "POST",
		Status:               200,
		ResponseCacheControl: ParseCacheControl("max-age=60"),
	}
	if CanStore(in) {
		t.Fatal("POST must never be storable")
	}
}

func TestCanStoreRejectsNoStore(t *testing.T) {
	in := CanStoreInputs{
		Method:               "GET",
		Status:               200,
		ResponseCacheControl: ParseCacheControl("no-store, max-age=60"),
	}
	if CanStore(in) {
		t.Fatal("no-store must never be storable")
	}
}

func TestCanStoreSharedAuthorizationRequiresExplicitSignal(t *testing.T) {
	in := CanStoreInputs{
		Shared:               true,
		Method:               "GET",
		Status:               200,
		HasAuthorization:     true,
		ResponseCacheControl: ParseCacheControl("max-age=60"),
	}
	if CanStore(in) {
		t.Fatal("shared cache with Authorization and no public/must-revalidate/s-maxage must not store")
	}

	in.ResponseCacheControl = ParseCacheControl("public, max-age=60")
	if !CanStore(in) {
		t.Fatal("public should permit storing an authorized request's response")
	}
}

func TestCanStoreMustUnderstandRejectsUnrecognizedStatus(t *testing.T) {
	in := CanStoreInputs{
		Method:               "GET",
		Status:               299,
		ResponseCacheControl: ParseCacheControl("must-understand, max-age=60"),
	}
	if CanStore(in) {
		t.Fatal("must-understand with an unrecognized status must not store")
	}
}

func TestCanStoreHeuristicallyCacheableStatus(t *testing.T) {
	in := CanStoreInputs{
		Method:               "GET",
		Status:               404,
		ResponseCacheControl: ParseCacheControl(""),
	}
	if !CanStore(in) {
		t.Fatal("404 with no explicit signal is heuristically cacheable")
	}
}

func TestCanStoreNoPositiveSignalRejects(t *testing.T) {
	in := CanStoreInputs{
		Method:               "GET",
		Status:               201,
		ResponseCacheControl: ParseCacheControl(""),
	}
	if CanStore(in) {
		t.Fatal("201 with no signal and not heuristically cacheable must not store")
	}
}
