package query

import "github.com/edirooss/booru-index/internal/bitset"

// Eval materializes q against a universe of size n (the database's live id
// space), returning the bitset of matching ids.
func Eval(q Query, n uint32) *bitset.Bitset {
	bs := evalItem(q.Item, n)
	if q.Inverse {
		bs.Complement(n)
	}
	return bs
}

func evalItem(item Item, n uint32) *bitset.Bitset {
	switch item.Kind {
	case ItemSingle:
		if item.Term == nil {
			return bitset.New(n)
		}
		return item.Term.ToBitset(n)

	case ItemAnd:
		acc := bitset.New(n)
		acc.Complement(n) // start from the universe; AND over an empty chain is the universe
		for _, child := range item.Items {
			acc.Intersect(Eval(child, n))
		}
		return acc

	case ItemOr:
		acc := bitset.New(n)
		for _, child := range item.Items {
			acc.Union(Eval(child, n))
		}
		return acc

	default:
		return bitset.New(n)
	}
}
