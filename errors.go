package httpcache

import "errors"

// ErrBodyAlreadyConsumed is returned by OnResponse when the body reader it
// was handed reports it has already been read elsewhere. The engine refuses
// to silently discard the caller's bytes rather than proceed as if the body
// were empty.
var ErrBodyAlreadyConsumed = errors.New("httpcache: response body already consumed")
