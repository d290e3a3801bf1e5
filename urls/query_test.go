package urls_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wilsonrivera/anxiousant/urls"
)

func queryPairs(qp *urls.QueryParams) [][2]string {
	var out [][2]string
	for i := 0; i < qp.Len(); i++ {
		k, v := qp.At(i)
		out = append(out, [2]string{k, v})
	}
	return out
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want [][2]string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"only question marks", "???", nil},
		{"single pair", "a=1", [][2]string{{"a", "1"}}},
		{"leading question mark", "?a=1&b=2", [][2]string{{"a", "1"}, {"b", "2"}}},
		{"empty segments dropped", "a=1&&b=2&", [][2]string{{"a", "1"}, {"b", "2"}}},
		{"name only", "flag", [][2]string{{"flag", ""}}},
		{"mixed", "a=1&flag&b=2", [][2]string{{"a", "1"}, {"flag", ""}, {"b", "2"}}},
		{"split on first equals only", "a=b=c", [][2]string{{"a", "b=c"}}},
		{"empty value", "a=", [][2]string{{"a", ""}}},
		{"decoded values", "a=x%20y&b=1%2B2", [][2]string{{"a", "x y"}, {"b", "1+2"}}},
		{"plus decodes to space", "a=1+2", [][2]string{{"a", "1 2"}}},
		{"duplicate keys kept in order", "k=1&k=2", [][2]string{{"k", "1"}, {"k", "2"}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := queryPairs(urls.ParseQuery(c.in))
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("pairs mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestQueryParams_String_Identity(t *testing.T) {
	t.Parallel()

	// An untouched parsed collection serializes to the input verbatim, even
	// when the input uses encodings the collection itself would not produce.
	inputs := []string{
		"a=1&b=2",
		"a=%2f",
		"a=1+2",
		"flag&a=x%20y",
		"k=1&k=2&k=3",
	}
	for _, in := range inputs {
		if got := urls.ParseQuery(in).String(); got != in {
			t.Errorf("urls.ParseQuery(%q).String() = %q, want identity", in, got)
		}
	}
}

func TestQueryParams_String_Rebuild(t *testing.T) {
	t.Parallel()

	// After a mutation the original encoded forms of surviving pairs are
	// still emitted verbatim.
	qp := urls.ParseQuery("a=%2f&b=1+2")
	qp.Add("c", "x y", urls.NullValueNameOnly)
	if got, want := qp.String(), "a=%2f&b=1+2&c=x%20y"; got != want {
		t.Errorf("qp.String() = %q, want %q", got, want)
	}
}

func TestQueryParams_Add_NullHandling(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		key  string
		nh   urls.NullValueHandling
		want string
	}{
		{"name only", "a=1", "b", urls.NullValueNameOnly, "a=1&b"},
		{"remove existing", "a=1&b=2&a=3", "a", urls.NullValueRemove, "b=2"},
		{"remove missing is noop", "a=1", "b", urls.NullValueRemove, "a=1"},
		{"ignore", "a=1", "b", urls.NullValueIgnore, "a=1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			qp := urls.ParseQuery(c.in)
			qp.Add(c.key, nil, c.nh)
			if got := qp.String(); got != c.want {
				t.Errorf("qp.String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestQueryParams_Add_Values(t *testing.T) {
	t.Parallel()

	qp := &urls.QueryParams{}
	qp.Add("s", "go urls", urls.NullValueRemove)
	qp.Add("n", 42, urls.NullValueRemove)
	qp.Add("b", true, urls.NullValueRemove)
	if got, want := qp.String(), "s=go%20urls&n=42&b=true"; got != want {
		t.Errorf("qp.String() = %q, want %q", got, want)
	}
}

func TestQueryParams_AddOrReplace_Collapse(t *testing.T) {
	t.Parallel()

	qp := urls.ParseQuery("k=1&a=0&k=2&k=3&z=9")
	qp.AddOrReplace("k", "x", urls.NullValueRemove)

	// Exactly one pair remains, at the position of the first occurrence.
	if got, want := qp.String(), "k=x&a=0&z=9"; got != want {
		t.Errorf("qp.String() = %q, want %q", got, want)
	}
	if got := qp.GetAll("k"); len(got) != 1 || got[0] != "x" {
		t.Errorf("qp.GetAll(k) = %v, want [x]", got)
	}
}

func TestQueryParams_AddOrReplace_NullHandling(t *testing.T) {
	t.Parallel()

	t.Run("ignore retains existing", func(t *testing.T) {
		t.Parallel()

		in := "k=1&k=2"
		qp := urls.ParseQuery(in)
		qp.AddOrReplace("k", nil, urls.NullValueIgnore)
		// Untouched: the identity cache must still be intact.
		if got := qp.String(); got != in {
			t.Errorf("qp.String() = %q, want %q", got, in)
		}
	})

	t.Run("remove deletes", func(t *testing.T) {
		t.Parallel()

		qp := urls.ParseQuery("k=1&a=2&k=3")
		qp.AddOrReplace("k", nil, urls.NullValueRemove)
		if got, want := qp.String(), "a=2"; got != want {
			t.Errorf("qp.String() = %q, want %q", got, want)
		}
	})

	t.Run("name only collapses", func(t *testing.T) {
		t.Parallel()

		qp := urls.ParseQuery("k=1&a=2&k=3")
		qp.AddOrReplace("k", nil, urls.NullValueNameOnly)
		if got, want := qp.String(), "k&a=2"; got != want {
			t.Errorf("qp.String() = %q, want %q", got, want)
		}
	})

	t.Run("absent behaves as add", func(t *testing.T) {
		t.Parallel()

		qp := urls.ParseQuery("a=1")
		qp.AddOrReplace("b", "2", urls.NullValueRemove)
		if got, want := qp.String(), "a=1&b=2"; got != want {
			t.Errorf("qp.String() = %q, want %q", got, want)
		}
	})
}

func TestQueryParams_Remove(t *testing.T) {
	t.Parallel()

	qp := urls.ParseQuery("a=1&b=2&a=3")
	if !qp.Remove("a") {
		t.Error("qp.Remove(a) = false, want true")
	}
	if qp.Remove("missing") {
		t.Error("qp.Remove(missing) = true, want false")
	}
	if got, want := qp.String(), "b=2"; got != want {
		t.Errorf("qp.String() = %q, want %q", got, want)
	}
}

func TestQueryParams_Clear(t *testing.T) {
	t.Parallel()

	qp := urls.ParseQuery("a=1&b=2")
	qp.Clear()
	if qp.Len() != 0 {
		t.Errorf("qp.Len() = %d, want 0", qp.Len())
	}
	if got := qp.String(); got != "" {
		t.Errorf("qp.String() = %q, want empty", got)
	}
}

func TestQueryParams_Sort(t *testing.T) {
	t.Parallel()

	qp := urls.ParseQuery("b=2&a=1&B=3&a=0")
	qp.Sort()

	// Ordinal case-insensitive by key, duplicates keep relative order.
	if got, want := qp.String(), "a=1&a=0&b=2&B=3"; got != want {
		t.Errorf("qp.String() = %q, want %q", got, want)
	}
}

func TestQueryParams_Lookup(t *testing.T) {
	t.Parallel()

	qp := urls.ParseQuery("a=1&b=x%20y&a=2&flag")

	if v, ok := qp.Get("a"); !ok || v != "1" {
		t.Errorf("qp.Get(a) = %q, %v, want 1, true", v, ok)
	}
	if v, ok := qp.Get("b"); !ok || v != "x y" {
		t.Errorf("qp.Get(b) = %q, %v, want \"x y\", true", v, ok)
	}
	if _, ok := qp.Get("missing"); ok {
		t.Error("qp.Get(missing) matched")
	}
	if got := qp.GetAll("a"); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("qp.GetAll(a) = %v, want [1 2]", got)
	}
	if !qp.Has("flag") || qp.Has("missing") {
		t.Error("qp.Has gave wrong answers")
	}
	// Keys are case-sensitive.
	if qp.Has("A") {
		t.Error("qp.Has(A) matched lower-case key")
	}
}

func TestQueryParams_Clone(t *testing.T) {
	t.Parallel()

	qp := urls.ParseQuery("a=1")
	qp2 := qp.Clone()
	qp2.Add("b", "2", urls.NullValueRemove)

	if got, want := qp.String(), "a=1"; got != want {
		t.Errorf("original after clone mutation = %q, want %q", got, want)
	}
	if got, want := qp2.String(), "a=1&b=2"; got != want {
		t.Errorf("clone = %q, want %q", got, want)
	}
}
