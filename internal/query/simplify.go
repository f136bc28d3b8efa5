package query

// Simplify rewrites q into an equivalent, smaller tree:
//
//   - nested chains of the same kind (AndChain-of-AndChain,
//     OrChain-of-OrChain) are flattened into their parent, provided the
//     nested chain isn't itself inverted
//   - a chain with exactly one child collapses to that child, folding the
//     chain's own Inverse into the child's
//   - an empty chain is left as it is; Eval evaluates an empty AndChain
//     to the universe and an empty OrChain to the empty set
//   - double negation (Not(Not(x))) cancels, which falls out for free
//     since Inverse is a bool rather than a nested wrapper
func Simplify(q Query) Query {
	switch q.Item.Kind {
	case ItemAnd, ItemOr:
		return simplifyChain(q)
	default:
		return q
	}
}

func simplifyChain(q Query) Query {
	kind := q.Item.Kind

	flattened := make([]Query, 0, len(q.Item.Items))
	for _, child := range q.Item.Items {
		sc := Simplify(child)
		if sc.Item.Kind == kind && !sc.Inverse {
			flattened = append(flattened, sc.Item.Items...)
			continue
		}
		flattened = append(flattened, sc)
	}

	if len(flattened) == 1 {
		only := flattened[0]
		return Query{Item: only.Item, Inverse: only.Inverse != q.Inverse}
	}

	return Query{Item: Item{Kind: kind, Items: flattened}, Inverse: q.Inverse}
}
