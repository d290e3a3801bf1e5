// Package types provides small container types shared across the module.
package types

import (
	"slices"

	"github.com/wilsonrivera/anxiousant/internal/util"
)

// KV is a single key-value pair.
type KV[V any] struct {
	Key   string
	Value V
}

// KeyValues is a list of key-value pairs preserving insertion order.
// Keys may repeat; key matching is case-sensitive or case-insensitive
// depending on how the collection was constructed.
type KeyValues[V any] struct {
	kvs        []KV[V]
	ignoreCase bool
}

// NewKeyValues returns an empty collection. When ignoreCase is set, key
// lookups match case-insensitively.
func NewKeyValues[V any](ignoreCase bool) *KeyValues[V] {
	return &KeyValues[V]{ignoreCase: ignoreCase}
}

func (kv *KeyValues[V]) match(k1, k2 string) bool {
	if kv.ignoreCase {
		return util.EqFold(k1, k2)
	}
	return k1 == k2
}

// Len returns the number of stored pairs.
func (kv *KeyValues[V]) Len() int { return len(kv.kvs) }

// At returns the pair at position i.
func (kv *KeyValues[V]) At(i int) KV[V] { return kv.kvs[i] }

// Add appends a pair, keeping any existing pairs with the same key.
func (kv *KeyValues[V]) Add(key string, value V) {
	kv.kvs = append(kv.kvs, KV[V]{Key: key, Value: value})
}

// GetAll returns all values stored under key in insertion order.
func (kv *KeyValues[V]) GetAll(key string) []V {
	var vals []V
	for i := range kv.kvs {
		if kv.match(kv.kvs[i].Key, key) {
			vals = append(vals, kv.kvs[i].Value)
		}
	}
	return vals
}

// TryGetFirst returns the first value stored under key.
func (kv *KeyValues[V]) TryGetFirst(key string) (V, bool) {
	for i := range kv.kvs {
		if kv.match(kv.kvs[i].Key, key) {
			return kv.kvs[i].Value, true
		}
	}
	var zero V
	return zero, false
}

// Has reports whether at least one pair is stored under key.
func (kv *KeyValues[V]) Has(key string) bool {
	_, ok := kv.TryGetFirst(key)
	return ok
}

// AddOrReplace replaces the value of the first pair matching key in place and
// removes every subsequent pair with the same key, so the key collapses to a
// single slot at its original position. Appends when the key is absent.
func (kv *KeyValues[V]) AddOrReplace(key string, value V) {
	replaced := false
	out := kv.kvs[:0]
	for i := range kv.kvs {
		if !kv.match(kv.kvs[i].Key, key) {
			out = append(out, kv.kvs[i])
			continue
		}
		if !replaced {
			out = append(out, KV[V]{Key: kv.kvs[i].Key, Value: value})
			replaced = true
		}
	}
	kv.kvs = out
	if !replaced {
		kv.kvs = append(kv.kvs, KV[V]{Key: key, Value: value})
	}
}

// Remove deletes all pairs stored under key and reports whether any existed.
func (kv *KeyValues[V]) Remove(key string) bool {
	n := len(kv.kvs)
	kv.kvs = slices.DeleteFunc(kv.kvs, func(p KV[V]) bool {
		return kv.match(p.Key, key)
	})
	return len(kv.kvs) != n
}

// Clear removes all pairs.
func (kv *KeyValues[V]) Clear() { kv.kvs = kv.kvs[:0] }

// SortFunc sorts the pairs using the provided comparison, preserving the
// original order of equal elements.
func (kv *KeyValues[V]) SortFunc(cmp func(a, b KV[V]) int) {
	slices.SortStableFunc(kv.kvs, cmp)
}

// All iterates over the stored pairs in order.
func (kv *KeyValues[V]) All(yield func(i int, p KV[V]) bool) {
	for i := range kv.kvs {
		if !yield(i, kv.kvs[i]) {
			return
		}
	}
}

// Clone returns a shallow copy of the collection with its own backing slice.
func (kv *KeyValues[V]) Clone() *KeyValues[V] {
	if kv == nil {
		return nil
	}
	return &KeyValues[V]{kvs: slices.Clone(kv.kvs), ignoreCase: kv.ignoreCase}
}
