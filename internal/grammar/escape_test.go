package grammar_test

import (
	"strings"
	"testing"

	"github.com/wilsonrivera/anxiousant/internal/grammar"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		in          string
		spaceAsPlus bool
		want        string
	}{
		{"empty", "", false, ""},
		{"unreserved", "abc-XYZ_0.9~", false, "abc-XYZ_0.9~"},
		{"reserved escaped", "a/b?c", false, "a%2Fb%3Fc"},
		{"percent escaped", "100%", false, "100%25"},
		{"existing triplet escaped again", "a%20b", false, "a%2520b"},
		{"space", "a b", false, "a%20b"},
		{"space as plus", "a b c", true, "a+b+c"},
		{"plus stays escaped with space-as-plus", "a+b", true, "a%2Bb"},
		{"utf8", "bücher", false, "b%C3%BCcher"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.Escape(c.in, c.spaceAsPlus); got != c.want {
				t.Errorf("grammar.Escape(%q, %v) = %q, want %q", c.in, c.spaceAsPlus, got, c.want)
			}
		})
	}
}

func TestEscape_LongInput(t *testing.T) {
	t.Parallel()

	// Multi-byte runes across the chunk boundary must survive chunked encoding.
	in := strings.Repeat("ü", 70000)
	got := grammar.Escape(in, false)
	want := strings.Repeat("%C3%BC", 70000)
	if got != want {
		t.Errorf("grammar.Escape long input mismatch: len(got) = %d, len(want) = %d", len(got), len(want))
	}
	if back := grammar.Unescape(got, false); back != in {
		t.Errorf("grammar.Unescape did not restore long input")
	}
}

func TestEscape_LongInvalidUTF8(t *testing.T) {
	t.Parallel()

	// A single rune start followed by continuation bytes past the chunk
	// boundary must still terminate and escape every byte.
	in := "a" + strings.Repeat("\x80", 65600)
	got := grammar.Escape(in, false)
	if want := 1 + 3*65600; len(got) != want {
		t.Fatalf("grammar.Escape long invalid input: len = %d, want %d", len(got), want)
	}
	if got[:7] != "a%80%80" {
		t.Errorf("grammar.Escape long invalid input prefix = %q", got[:7])
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		in          string
		plusAsSpace bool
		want        string
	}{
		{"empty", "", false, ""},
		{"plain", "abc", false, "abc"},
		{"triplet", "a%20b", false, "a b"},
		{"lowercase hex", "a%2fb", false, "a/b"},
		{"malformed kept", "50%", false, "50%"},
		{"truncated triplet kept", "a%2", false, "a%2"},
		{"bad hex kept", "a%zzb", false, "a%zzb"},
		{"plus literal", "a+b", false, "a+b"},
		{"plus as space", "a+b", true, "a b"},
		{"utf8", "b%C3%BCcher", false, "bücher"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.Unescape(c.in, c.plusAsSpace); got != c.want {
				t.Errorf("grammar.Unescape(%q, %v) = %q, want %q", c.in, c.plusAsSpace, got, c.want)
			}
		})
	}
}

func TestEscapeUnescape_RoundTrip(t *testing.T) {
	t.Parallel()

	for c := byte(0x20); c < 0x7f; c++ {
		s := "x" + string(c) + "y"
		if got := grammar.Unescape(grammar.Escape(s, false), false); got != s {
			t.Errorf("round trip failed for %q: got %q", s, got)
		}
	}
}

func TestEscapeIllegal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no percent fast path", "a b|c", "a%20b%7Cc"},
		{"reserved untouched", "a/b?c=d&e", "a/b?c=d&e"},
		{"existing triplet preserved", "a%20b c", "a%20b%20c"},
		{"lone percent escaped", "50% off", "50%25%20off"},
		{"truncated triplet escaped", "a%2", "a%252"},
		{"utf8", "bücher", "b%C3%BCcher"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.EscapeIllegal(c.in); got != c.want {
				t.Errorf("grammar.EscapeIllegal(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestEscapeIllegal_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"a b", "a%20b", "bücher", "50% off", "a/b?c=d"}
	for _, in := range inputs {
		once := grammar.EscapeIllegal(in)
		if twice := grammar.EscapeIllegal(once); twice != once {
			t.Errorf("grammar.EscapeIllegal not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
