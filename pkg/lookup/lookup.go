package lookup

import "fmt"

// Table is a typed id->record map used as a hash-join substitute for
// datasets that live in physically separate databases and cannot be joined
// in SQL.
type Table[K comparable, V any] map[K]V

// LookupOr returns the value stored under key, or def when the key is
// absent. A miss is never an error: callers resolve it to a sentinel value
// ("Unknown", zero) and keep going.
func (t Table[K, V]) LookupOr(key K, def V) V {
	if v, ok := t[key]; ok {
		return v
	}
	return def
}

func (t Table[K, V]) Has(key K) bool {
	_, ok := t[key]
	return ok
}

// Index builds a Table from a slice using the given key function. Later
// entries overwrite earlier ones.
func Index[K comparable, V any](rows []V, key func(V) K) Table[K, V] {
	t := make(Table[K, V], len(rows))
	for _, row := range rows {
		t[key(row)] = row
	}
	return t
}

// Join merges each primary row with its counterpart from the secondary
// table. Missing counterparts are substituted with def, so the output
// always has exactly one row per primary row.
func Join[P any, K comparable, S any, R any](primary []P, secondary Table[K, S], key func(P) K, def S, merge func(P, S) R) []R {
	out := make([]R, 0, len(primary))
	for _, row := range primary {
		out = append(out, merge(row, secondary.LookupOr(key(row), def)))
	}
	return out
}

// PairKey builds the composite "<a>-<b>" key used for (locationId,
// variantId) and (userId, variantId) joins.
func PairKey(a, b string) string {
	return fmt.Sprintf("%s-%s", a, b)
}
