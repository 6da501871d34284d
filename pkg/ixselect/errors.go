package ixselect

import (
	"fmt"
	"log"
)

// invariant panics with msg if cond is false. The core treats any
// violation of its own internal assumptions (an index with no key
// pattern, an effective key type outside the known specialty set) as a
// programmer error rather than a recoverable one, matching the
// teacher's own liberal use of panic for invariant failures.
func invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("ixselect: "+format, args...))
	}
}

// warnUnknownEffectiveType logs the unknown-specialty-type warning
// required before the fatal invariant (spec.md 4.4.7). It exists as its
// own function so tests can confirm it fires without inspecting the
// panic message.
func warnUnknownEffectiveType(field string, effective string) {
	log.Printf("ixselect: unknown indexing for effective type %q on field %q", effective, field)
}
