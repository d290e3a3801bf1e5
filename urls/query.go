package urls

import (
	"fmt"
	"strings"

	"github.com/wilsonrivera/anxiousant/internal/grammar"
	"github.com/wilsonrivera/anxiousant/internal/types"
	"github.com/wilsonrivera/anxiousant/internal/util"
)

// NullValueHandling selects how query parameter operations treat an absent
// (nil) value.
type NullValueHandling uint8

const (
	// NullValueNameOnly stores the key with no value; it serializes as the
	// bare key without "=".
	NullValueNameOnly NullValueHandling = iota
	// NullValueRemove deletes any existing entries for the key and adds
	// nothing.
	NullValueRemove
	// NullValueIgnore turns the operation into a no-op, leaving existing
	// entries untouched.
	NullValueIgnore
)

// queryParamValue holds both representations of a query value. Both forms are
// computed once at construction and never recomputed, so an already-valid
// encoding survives a parse/serialize round trip byte for byte.
type queryParamValue struct {
	value    string // decoded
	encoded  string
	nameOnly bool
}

func newDecodedValue(decoded string) queryParamValue {
	return queryParamValue{value: decoded, encoded: grammar.Escape(decoded, false)}
}

func newEncodedValue(encoded string) queryParamValue {
	return queryParamValue{value: grammar.Unescape(encoded, true), encoded: encoded}
}

func nameOnlyValue() queryParamValue {
	return queryParamValue{nameOnly: true}
}

// QueryParams is an ordered multimap of query string parameters. Duplicate
// keys are permitted and keep insertion order. The serialized form is cached
// and rebuilt only after a mutation; a collection parsed from a string and
// left untouched serializes back to the original string verbatim.
//
// The zero value is an empty collection ready for use.
type QueryParams struct {
	kvs     *types.KeyValues[queryParamValue] // nil until first param is stored
	cached  *string
	version uint32
}

// ParseQuery parses a query string into a QueryParams collection. Any number
// of leading '?' characters is stripped first. Empty "&" segments are
// dropped; a segment without "=" becomes a name-only parameter; the part
// after the first "=" is taken as already percent-encoded.
func ParseQuery(s string) *QueryParams {
	s = strings.TrimLeft(s, "?")
	qp := &QueryParams{}
	if util.TrimSP(s) == "" {
		return qp
	}

	for seg := range strings.SplitSeq(s, "&") {
		if seg == "" {
			continue
		}
		key, val, found := strings.Cut(seg, "=")
		if found {
			qp.list().Add(key, newEncodedValue(val))
		} else {
			qp.list().Add(key, nameOnlyValue())
		}
	}
	qp.cached = &s
	return qp
}

func (qp *QueryParams) list() *types.KeyValues[queryParamValue] {
	if qp.kvs == nil {
		qp.kvs = types.NewKeyValues[queryParamValue](false)
	}
	return qp.kvs
}

func (qp *QueryParams) markDirty() {
	qp.cached = nil
	qp.version++
}

// Len returns the number of stored parameters.
func (qp *QueryParams) Len() int {
	if qp == nil || qp.kvs == nil {
		return 0
	}
	return qp.kvs.Len()
}

// At returns the key and decoded value of the parameter at position i.
// A name-only parameter yields an empty value.
func (qp *QueryParams) At(i int) (key, value string) {
	p := qp.kvs.At(i)
	return p.Key, p.Value.value
}

// Get returns the first decoded value stored under key.
func (qp *QueryParams) Get(key string) (string, bool) {
	if qp == nil || qp.kvs == nil {
		return "", false
	}
	v, ok := qp.kvs.TryGetFirst(key)
	return v.value, ok
}

// GetAll returns all decoded values stored under key in insertion order.
func (qp *QueryParams) GetAll(key string) []string {
	if qp == nil || qp.kvs == nil {
		return nil
	}
	var vals []string
	for _, v := range qp.kvs.GetAll(key) {
		vals = append(vals, v.value)
	}
	return vals
}

// Has reports whether at least one parameter is stored under key.
func (qp *QueryParams) Has(key string) bool {
	return qp != nil && qp.kvs != nil && qp.kvs.Has(key)
}

// Add appends a parameter. A nil value is routed through the null-handling
// policy: name-only entry, removal of existing entries, or no-op. The cached
// serialization is discarded only when the collection actually changed.
func (qp *QueryParams) Add(key string, value any, nullHandling NullValueHandling) {
	if value == nil {
		switch nullHandling {
		case NullValueNameOnly:
			qp.list().Add(key, nameOnlyValue())
			qp.markDirty()
		case NullValueRemove:
			qp.Remove(key)
		case NullValueIgnore:
		}
		return
	}
	qp.list().Add(key, newDecodedValue(toInvariantString(value)))
	qp.markDirty()
}

// AddOrReplace behaves as Add when the key is absent. When the key is
// present, it replaces the first occurrence in place and removes every
// subsequent occurrence, so the key collapses to a single slot at its
// original position. A nil value with NullValueIgnore retains the existing
// entries unchanged.
func (qp *QueryParams) AddOrReplace(key string, value any, nullHandling NullValueHandling) {
	if qp.kvs == nil || !qp.kvs.Has(key) {
		qp.Add(key, value, nullHandling)
		return
	}

	if value == nil {
		switch nullHandling {
		case NullValueNameOnly:
			qp.kvs.AddOrReplace(key, nameOnlyValue())
			qp.markDirty()
		case NullValueRemove:
			qp.Remove(key)
		case NullValueIgnore:
		}
		return
	}
	qp.kvs.AddOrReplace(key, newDecodedValue(toInvariantString(value)))
	qp.markDirty()
}

// Remove deletes all parameters stored under key and reports whether any
// existed. Removing a missing key is a no-op and keeps the cache intact.
func (qp *QueryParams) Remove(key string) bool {
	if qp.kvs == nil {
		return false
	}
	if !qp.kvs.Remove(key) {
		return false
	}
	qp.markDirty()
	return true
}

// Clear removes all parameters.
func (qp *QueryParams) Clear() {
	if qp.kvs == nil && qp.cached == nil {
		return
	}
	qp.kvs = nil
	qp.markDirty()
}

// Sort orders the parameters by key, ordinal and case-insensitive,
// preserving the relative order of duplicate keys.
func (qp *QueryParams) Sort() {
	if qp.kvs == nil {
		return
	}
	qp.kvs.SortFunc(func(a, b types.KV[queryParamValue]) int {
		return strings.Compare(util.LCase(a.Key), util.LCase(b.Key))
	})
	qp.markDirty()
}

// String serializes the collection without a leading '?'. The result is
// cached until the next mutation; an untouched parsed collection returns the
// input string verbatim.
func (qp *QueryParams) String() string {
	if qp == nil {
		return ""
	}
	if qp.cached != nil {
		return *qp.cached
	}
	if qp.kvs == nil || qp.kvs.Len() == 0 {
		s := ""
		qp.cached = &s
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	qp.kvs.All(func(i int, p types.KV[queryParamValue]) bool {
		if i > 0 {
			sb.WriteString("&")
		}
		sb.WriteString(grammar.EscapeIllegal(p.Key))
		if !p.Value.nameOnly {
			sb.WriteString("=")
			sb.WriteString(p.Value.encoded)
		}
		return true
	})
	s := sb.String()
	qp.cached = &s
	return s
}

// Clone returns a deep, independent copy of the collection.
func (qp *QueryParams) Clone() *QueryParams {
	if qp == nil {
		return nil
	}
	return &QueryParams{kvs: qp.kvs.Clone(), cached: qp.cached, version: qp.version}
}

func toInvariantString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
