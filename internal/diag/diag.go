// Package diag renders error chains and raw payloads for failure logs,
// for cases where a one-line zap.Error isn't enough to see what a
// decode actually choked on.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// ErrChain walks err's Unwrap chain and renders each layer with its
// concrete type, outermost first.
func ErrChain(err error) string {
	if err == nil {
		return "<nil>"
	}
	var b strings.Builder
	i := 0
	for e := err; e != nil; e = errors.Unwrap(e) {
		fmt.Fprintf(&b, "[%d] %T: %v\n", i, e, e)
		i++
	}
	return b.String()
}

// DumpPayload renders v with spew, for attaching a malformed or
// partially-decoded payload to a log line.
func DumpPayload(v any) string {
	return spew.Sdump(v)
}
