package index

import "strings"

// TextQueryKind selects the substring predicate applied by an NgramIndex.
type TextQueryKind int

const (
	// TextContains matches strings containing the text anywhere.
	TextContains TextQueryKind = iota
	// TextStartsWith matches strings beginning with the text.
	TextStartsWith
	// TextEndsWith matches strings ending with the text.
	TextEndsWith
)

// TextQuery is the surface form of a wildcard text match:
//
//	*x   -> EndsWith
//	x*   -> StartsWith
//	*x*  -> Contains
//	x    -> Contains (bare text is treated as a substring match)
type TextQuery struct {
	Kind TextQueryKind
	Text string
}

// ParseTextQuery strips wildcard markers and classifies the query kind.
func ParseTextQuery(s string) TextQuery {
	hasPrefix := strings.HasPrefix(s, "*")
	hasSuffix := strings.HasSuffix(s, "*")
	trimmed := s
	if hasPrefix {
		trimmed = strings.TrimPrefix(trimmed, "*")
	}
	if hasSuffix {
		trimmed = strings.TrimSuffix(trimmed, "*")
	}
	switch {
	case hasPrefix && hasSuffix:
		return TextQuery{Kind: TextContains, Text: trimmed}
	case hasSuffix:
		return TextQuery{Kind: TextStartsWith, Text: trimmed}
	case hasPrefix:
		return TextQuery{Kind: TextEndsWith, Text: trimmed}
	default:
		return TextQuery{Kind: TextContains, Text: trimmed}
	}
}

// Match applies the predicate to s.
func (q TextQuery) Match(s string) bool {
	switch q.Kind {
	case TextStartsWith:
		return strings.HasPrefix(s, q.Text)
	case TextEndsWith:
		return strings.HasSuffix(s, q.Text)
	default:
		return strings.Contains(s, q.Text)
	}
}
