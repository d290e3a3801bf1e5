package urls

import (
	"bytes"
	"encoding/json"

	"braces.dev/errtrace"

	"github.com/wilsonrivera/anxiousant/internal/errorutil"
)

var jsonNull = []byte("null")

// MarshalJSON encodes the URL as its canonical string, or as JSON null for a
// nil URL.
func (u *URL) MarshalJSON() ([]byte, error) {
	if u == nil {
		return jsonNull, nil
	}
	return errtrace.Wrap2(json.Marshal(u.String()))
}

// UnmarshalJSON decodes a JSON string by re-parsing it. JSON null resets the
// receiver to the empty relative URL; any other token type is an error.
func (u *URL) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*u = URL{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("expected a JSON string: %v", err))
	}
	u2, err := Parse(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	*u = *u2
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URL) UnmarshalText(text []byte) error {
	u2, err := Parse(string(text))
	if err != nil {
		*u = URL{}
		return errtrace.Wrap(err)
	}
	*u = *u2
	return nil
}
