package query

import (
	"fmt"
	"strings"

	"github.com/edirooss/booru-index/internal/index"
)

// ResolveOutcome classifies what a Resolver did with one query atom.
type ResolveOutcome int

const (
	// Resolved means term is the atom's posting; use it as-is.
	Resolved ResolveOutcome = iota
	// InvalidAtom means the field exists but text isn't a legal literal
	// for it (e.g. a malformed range expression). Per the invalid-atom
	// policy this is silently dropped, not surfaced as an error.
	InvalidAtom
	// UnknownIdentifier means ident doesn't name any registered index.
	// Unlike InvalidAtom, this is a parse-level error surfaced to the
	// caller: a typo'd field name is a different failure than "no tag
	// matched".
	UnknownIdentifier
)

// Resolver looks up the posting for one query atom. ident is empty when
// the atom carried no "field:" prefix, in which case the resolver should
// dispatch to the database's default index and never return
// UnknownIdentifier.
type Resolver func(ident, text string) (index.Queryable, ResolveOutcome)

// ParseError reports malformed query syntax: an unbalanced parenthesis or
// an empty field identifier before ":". Distinct from an unresolved atom,
// which the invalid-atom policy drops silently rather than erroring.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// Parse parses the surface query syntax into a Query tree:
//
//	a b c        -> AndChain(a, b, c)
//	a, b, c      -> OrChain(a, b, c)
//	-term        -> term, inverted
//	~term        -> term joins an OR group with its ~-prefixed siblings,
//	                the group itself ANDed with the rest of the chain
//	(expr)       -> expr as a single grouped term, negatable as a whole
//	ident:text   -> dispatches to the named field via resolve
//	text         -> dispatches to the default field via resolve
//
// Atoms that resolve to nothing (InvalidAtom) are dropped silently; if
// every atom in a chain is dropped, the chain is empty, which Eval
// treats as the universe for an AndChain and the empty set for an
// OrChain. An unbalanced paren, an empty identifier before ":", or an
// UnknownIdentifier from resolve aborts parsing and returns a *ParseError.
func Parse(s string, resolve Resolver) (Query, error) {
	toks := tokenize(s)
	q, err := parseOrList(toks, resolve)
	if err != nil {
		return Query{}, err
	}
	return Simplify(q), nil
}

func parseOrList(toks []string, resolve Resolver) (Query, error) {
	var groups [][]string
	var cur []string
	depth := 0
	for _, t := range toks {
		switch t {
		case "(":
			depth++
		case ")":
			depth--
		}
		if t == "," && depth == 0 {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)

	items := make([]Query, 0, len(groups))
	for _, g := range groups {
		item, err := parseAndList(g, resolve)
		if err != nil {
			return Query{}, err
		}
		items = append(items, item)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return New(Or(items...)), nil
}

func parseAndList(toks []string, resolve Resolver) (Query, error) {
	var plain []Query
	var tildeGroup []Query
	negateGroup := false

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t == "-" && i+1 < len(toks) && toks[i+1] == "(" {
			negateGroup = true
			continue
		}
		if t == "(" {
			depth := 1
			j := i + 1
			for ; j < len(toks) && depth > 0; j++ {
				switch toks[j] {
				case "(":
					depth++
				case ")":
					depth--
				}
			}
			if depth > 0 {
				return Query{}, &ParseError{Msg: "unbalanced '(': missing closing ')'"}
			}
			inner := toks[i+1 : j-1]
			innerQ, err := parseOrList(inner, resolve)
			if err != nil {
				return Query{}, err
			}
			if negateGroup {
				innerQ = Not(innerQ)
				negateGroup = false
			}
			plain = append(plain, innerQ)
			i = j - 1
			continue
		}
		if t == ")" {
			return Query{}, &ParseError{Msg: "unbalanced ')': no matching '('"}
		}

		atom := t
		inverse := false
		if strings.HasPrefix(atom, "-") {
			inverse = true
			atom = atom[1:]
		}
		tilde := false
		if strings.HasPrefix(atom, "~") {
			tilde = true
			atom = atom[1:]
		}

		ident, text, hasField := splitAtom(atom)
		if hasField && ident == "" {
			return Query{}, &ParseError{Msg: fmt.Sprintf("empty identifier before ':' in %q", t)}
		}

		term, outcome := resolve(ident, text)
		switch outcome {
		case UnknownIdentifier:
			return Query{}, &ParseError{Msg: fmt.Sprintf("unknown identifier %q", ident)}
		case InvalidAtom:
			continue
		}
		q := Query{Item: Single(term), Inverse: inverse}
		if tilde {
			tildeGroup = append(tildeGroup, q)
		} else {
			plain = append(plain, q)
		}
	}

	if len(tildeGroup) > 0 {
		if len(tildeGroup) == 1 {
			plain = append(plain, tildeGroup[0])
		} else {
			plain = append(plain, New(Or(tildeGroup...)))
		}
	}

	if len(plain) == 1 {
		return plain[0], nil
	}
	return New(And(plain...)), nil
}

// splitAtom divides "ident:text" into its parts. Bare text (no colon)
// dispatches to the default index via an empty ident and hasField=false.
// A colon with nothing before it (":text") is a malformed field
// reference, signaled via hasField=true, ident="".
func splitAtom(atom string) (ident, text string, hasField bool) {
	if i := strings.IndexByte(atom, ':'); i >= 0 {
		return atom[:i], atom[i+1:], true
	}
	return "", atom, false
}

// tokenize splits surface syntax into whitespace-separated atoms, keeping
// "," and grouping parentheses as their own tokens.
//
// A "," encountered once the atom being built already carries a "field:"
// prefix belongs to that field's own value-list grammar (e.g. "id:1,2,3")
// rather than the top-level OR separator, and is kept in the atom; the
// field's Resolve splits it itself. A "," seen before any ':' in the
// current atom is the bare top-level OR separator, as in "a,b,c".
func tokenize(s string) []string {
	var toks []string
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, buf.String())
			buf.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == ',':
			if strings.ContainsRune(buf.String(), ':') {
				buf.WriteRune(r)
				continue
			}
			flush()
			toks = append(toks, ",")
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return toks
}
