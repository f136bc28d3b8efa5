package index

import "strings"

// RangeQuery describes a bounded (or half-bounded, or exact) scalar range
// over a RangeIndex[V]. The grammar (parsed by ParseRangeQuery) is:
//
//	v..w   inclusive both ends
//	v..=w  same as v..w (explicit inclusive upper)
//	v..    lo bound only (inclusive), unbounded above
//	..w    hi bound only, unbounded below, EXCLUSIVE of w (no lower
//	        bound to anchor an inclusive reading, so it behaves like <w)
//	=v     exact
//	v      bare exact (same as =v)
//	<v     strictly less than v
//	>v     strictly greater than v
type RangeQuery[V any] struct {
	HasLo       bool
	Lo          V
	LoInclusive bool
	HasHi       bool
	Hi          V
	HiInclusive bool
}

// ParseRangeQuery parses text into a RangeQuery[V], delegating endpoint
// literal parsing to parseAtom (the per-field atom parser, e.g. decimal
// parsing for plain integers or the `a/b` aspect-ratio grammar). Returns
// false if text is not a legal range expression for V.
func ParseRangeQuery[V any](text string, parseAtom func(string) (V, bool)) (RangeQuery[V], bool) {
	var zero RangeQuery[V]

	if idx := strings.Index(text, ".."); idx >= 0 {
		loText := text[:idx]
		hiText := strings.TrimPrefix(text[idx+2:], "=")

		// A lower bound changes what ".." means for the upper end: "v..w"
		// and "v..=w" both include w, but a bare "..w" (no lower bound)
		// excludes it.
		hiInclusive := loText != ""

		var rq RangeQuery[V]
		if loText != "" {
			lo, ok := parseAtom(loText)
			if !ok {
				return zero, false
			}
			rq.HasLo, rq.Lo, rq.LoInclusive = true, lo, true
		}
		if hiText != "" {
			hi, ok := parseAtom(hiText)
			if !ok {
				return zero, false
			}
			rq.HasHi, rq.Hi, rq.HiInclusive = true, hi, hiInclusive
		}
		if !rq.HasLo && !rq.HasHi {
			return zero, false
		}
		return rq, true
	}

	if rest, ok := strings.CutPrefix(text, "<"); ok {
		hi, ok := parseAtom(rest)
		if !ok {
			return zero, false
		}
		return RangeQuery[V]{HasHi: true, Hi: hi, HiInclusive: false}, true
	}
	if rest, ok := strings.CutPrefix(text, ">"); ok {
		lo, ok := parseAtom(rest)
		if !ok {
			return zero, false
		}
		return RangeQuery[V]{HasLo: true, Lo: lo, LoInclusive: false}, true
	}

	bare := strings.TrimPrefix(text, "=")
	v, ok := parseAtom(bare)
	if !ok {
		return zero, false
	}
	return RangeQuery[V]{HasLo: true, Lo: v, LoInclusive: true, HasHi: true, Hi: v, HiInclusive: true}, true
}
